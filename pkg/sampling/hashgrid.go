package sampling

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// cellKey is the integer coordinate of a hash grid cell.
type cellKey struct{ x, z int }

// hashGrid maps occupied cells to the index of the single point inside them.
// A key is present iff an accepted point hashes into it.
type hashGrid struct {
	size  float64
	cells map[cellKey]int
}

// reach is how many cells away a conflicting point can sit when the cell
// size is minDistance/√2: ⌈√2⌉ = 2.
const reach = 2

func newHashGrid(minDistance float64) *hashGrid {
	return &hashGrid{
		size:  minDistance / math.Sqrt2,
		cells: make(map[cellKey]int),
	}
}

func (g *hashGrid) key(p r2.Vec) cellKey {
	return cellKey{
		x: int(math.Floor(p.X / g.size)),
		z: int(math.Floor(p.Y / g.size)),
	}
}

func (g *hashGrid) occupied(k cellKey) bool {
	_, ok := g.cells[k]
	return ok
}

func (g *hashGrid) insert(k cellKey, idx int) {
	g.cells[k] = idx
}

// conflicts reports whether any accepted point lies closer than
// sqrt(minDist2) to p. Only the (2*reach+1)² cells around p are visited.
func (g *hashGrid) conflicts(p r2.Vec, k cellKey, points []r2.Vec, minDist2 float64) bool {
	for dz := -reach; dz <= reach; dz++ {
		for dx := -reach; dx <= reach; dx++ {
			idx, ok := g.cells[cellKey{x: k.x + dx, z: k.z + dz}]
			if !ok {
				continue
			}
			if r2.Norm2(r2.Sub(p, points[idx])) < minDist2 {
				return true
			}
		}
	}
	return false
}

func (g *hashGrid) len() int { return len(g.cells) }
