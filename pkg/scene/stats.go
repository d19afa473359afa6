package scene

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// Spacing summarises nearest-neighbour distances of a point set.
// All fields are zero for fewer than two points.
type Spacing struct {
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Measure returns the nearest-neighbour spacing of points.
func Measure(points []r2.Vec) Spacing {
	nn := NearestDistances(points)
	if len(nn) == 0 {
		return Spacing{}
	}
	mean, std := stat.MeanStdDev(nn, nil)
	if math.IsNaN(std) {
		std = 0
	}
	return Spacing{Min: floats.Min(nn), Mean: mean, StdDev: std}
}

// NearestDistances returns, for each point in order, the distance to its
// closest other point. It returns nil for fewer than two points.
func NearestDistances(points []r2.Vec) []float64 {
	_, d2 := nearest(points)
	for i := range d2 {
		d2[i] = math.Sqrt(d2[i])
	}
	return d2
}

// NearestNeighbors returns, for each point in order, the index of its
// closest other point. Ties go to the lower index. It returns nil for fewer
// than two points.
func NearestNeighbors(points []r2.Vec) []int {
	idx, _ := nearest(points)
	return idx
}

// nearest finds every point's closest other point and the squared distance
// to it.
func nearest(points []r2.Vec) ([]int, []float64) {
	if len(points) < 2 {
		return nil, nil
	}
	pts := make(kdtree.Points, len(points))
	at := make(map[r2.Vec][]int, len(points))
	for i, p := range points {
		pts[i] = kdtree.Point{p.X, p.Y}
		at[p] = append(at[p], i)
	}
	// kdtree.New reorders its input.
	tree := kdtree.New(append(kdtree.Points(nil), pts...), false)

	idx := make([]int, len(points))
	d2 := make([]float64, len(points))
	for i, q := range pts {
		// The two closest entries are q itself and its nearest other point
		// (or a duplicate of q), so the larger of the two is the nearest
		// distance. A second query then collects every point that ties it.
		two := kdtree.NewNKeeper(2)
		tree.NearestSet(two, q)
		d := 0.0
		for _, c := range two.Heap {
			if c.Comparable != nil {
				d = math.Max(d, c.Dist)
			}
		}
		ties := kdtree.NewDistKeeper(d)
		tree.NearestSet(ties, q)

		best, bestD := -1, math.Inf(1)
		for _, c := range ties.Heap {
			if c.Comparable == nil {
				continue
			}
			p := c.Comparable.(kdtree.Point)
			for _, j := range at[r2.Vec{X: p[0], Y: p[1]}] {
				if j == i {
					continue
				}
				if c.Dist < bestD || (c.Dist == bestD && j < best) {
					best, bestD = j, c.Dist
				}
			}
		}
		idx[i], d2[i] = best, bestD
	}
	return idx, d2
}
