package placement

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min, Max r3.Vec
}

// Empty returns bounds that any point extends.
func Empty() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: r3.Vec{X: inf, Y: inf, Z: inf},
		Max: r3.Vec{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether b contains no point.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Extend grows b to contain p.
func (b Bounds) Extend(p r3.Vec) Bounds {
	return Bounds{
		Min: r3.Vec{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size returns Max-Min.
func (b Bounds) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

// CenterOffset returns the translation that moves the centre of b to the
// origin.
func (b Bounds) CenterOffset() r3.Vec {
	center := r3.Add(b.Min, r3.Scale(0.5, b.Size()))
	return r3.Scale(-1, center)
}

// Extents computes the bounds of a flat x,y,z vertex array.
func Extents(positions []float64) (Bounds, error) {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return Bounds{}, errors.New(errors.ErrCodeInvalidArgument,
			"positions must hold a non-empty multiple of 3 values, got %d", len(positions))
	}
	b := Empty()
	for i := 0; i < len(positions); i += 3 {
		b = b.Extend(r3.Vec{X: positions[i], Y: positions[i+1], Z: positions[i+2]})
	}
	return b, nil
}

// MergeExtents computes the bounds of several vertex arrays, typically the
// geometries of one model.
func MergeExtents(geometries ...[]float64) (Bounds, error) {
	b := Empty()
	for _, g := range geometries {
		e, err := Extents(g)
		if err != nil {
			return Bounds{}, err
		}
		b = b.Union(e)
	}
	return b, nil
}
