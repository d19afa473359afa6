package placement

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

// Line places n instances along the x axis, spacing apart and centred on
// the origin, then shifts them all by offset.
func Line(n int, spacing float64, offset r3.Vec) ([]Transform, error) {
	if err := errors.ValidateCount("count", n); err != nil {
		return nil, err
	}
	if err := errors.ValidateFinite("spacing", spacing); err != nil {
		return nil, err
	}

	out := make([]Transform, n)
	for i := range n {
		x := (float64(i) - float64(n-1)/2) * spacing
		out[i] = Transform{
			Translation: r3.Add(r3.Vec{X: x}, offset),
			Scale:       UnitScale,
		}
	}
	return out, nil
}

// RowOptions configures [Rows].
type RowOptions struct {
	Count       int     // instances requested
	PerRow      int     // slots per row, > 0
	Spacing     float64 // distance between slots along x
	RowSpacing  float64 // distance between rows along z
	MinDistance float64 // slots closer than this to an accepted one are skipped
}

// Rows lays instances out in rows of at most PerRow slots, row r at
// z = r*RowSpacing and slot i at x = i*Spacing. A slot whose XZ distance to
// an already accepted instance is below MinDistance is dropped, so the
// result may hold fewer than Count transforms.
func Rows(opts RowOptions) ([]Transform, error) {
	if err := errors.ValidateCount("count", opts.Count); err != nil {
		return nil, err
	}
	if opts.PerRow <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "per row must be positive, got %d", opts.PerRow)
	}
	if err := errors.ValidateFinite("spacing", opts.Spacing); err != nil {
		return nil, err
	}
	if err := errors.ValidateFinite("row spacing", opts.RowSpacing); err != nil {
		return nil, err
	}
	if err := errors.ValidateNonNegative("min distance", opts.MinDistance); err != nil {
		return nil, err
	}

	minDist2 := opts.MinDistance * opts.MinDistance
	out := make([]Transform, 0, opts.Count)
	rows := (opts.Count + opts.PerRow - 1) / opts.PerRow
	for row := range rows {
		slots := min(opts.PerRow, opts.Count-row*opts.PerRow)
		for i := range slots {
			pos := r3.Vec{X: float64(i) * opts.Spacing, Z: float64(row) * opts.RowSpacing}
			if tooClose(pos, out, minDist2) {
				continue
			}
			out = append(out, Transform{Translation: pos, Scale: UnitScale})
		}
	}
	return out, nil
}

func tooClose(p r3.Vec, ts []Transform, minDist2 float64) bool {
	for _, t := range ts {
		dx := p.X - t.Translation.X
		dz := p.Z - t.Translation.Z
		if dx*dx+dz*dz < minDist2 {
			return true
		}
	}
	return false
}
