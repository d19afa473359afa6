package sampling

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

// MaxPoints caps the number of points a single call may produce.
const MaxPoints = 1 << 22

// SamplePoint is one jittered grid sample.
// Cell is the unjittered grid anchor; Jittered is the position used for
// placement. X is the x axis and Y the ground-plane z axis.
type SamplePoint struct {
	Jittered r2.Vec
	Cell     r2.Vec
}

// GridOptions configures [JitterGrid].
type GridOptions struct {
	Width   int     // cells along x
	Height  int     // cells along z
	Spacing float64 // distance between cell centres, > 0
	Jitter  float64 // inner cell size; 0 disables jitter
	Center  r2.Vec  // centre of the whole grid
}

// Validate checks the options without drawing anything.
func (o GridOptions) Validate() error {
	if err := errors.ValidateCount("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateCount("height", o.Height); err != nil {
		return err
	}
	if err := errors.ValidatePositive("spacing", o.Spacing); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("jitter", o.Jitter); err != nil {
		return err
	}
	if err := errors.ValidateFinite("center.x", o.Center.X); err != nil {
		return err
	}
	if err := errors.ValidateFinite("center.z", o.Center.Y); err != nil {
		return err
	}
	if o.Height > 0 && o.Width > MaxPoints/o.Height {
		return errors.New(errors.ErrCodeInvalidArgument, "grid %dx%d exceeds %d points", o.Width, o.Height, MaxPoints)
	}
	if err := o.validateSpan("x", o.Width, o.Center.X); err != nil {
		return err
	}
	return o.validateSpan("z", o.Height, o.Center.Y)
}

// validateSpan rejects grids whose outermost jittered coordinates on one
// axis are not representable. The full span (n-1)*Spacing is checked too,
// since JitterGrid computes cell positions as offset + i*Spacing.
func (o GridOptions) validateSpan(axis string, n int, center float64) error {
	if n == 0 {
		return nil
	}
	span := float64(n-1) * o.Spacing
	reach := span/2 + o.Jitter/2
	if math.IsInf(span, 0) || math.IsInf(reach, 0) || math.IsInf(center-reach, 0) || math.IsInf(center+reach, 0) {
		return errors.New(errors.ErrCodeInvalidArgument,
			"grid extent along %s overflows (%d cells, spacing %g, jitter %g, center %g)", axis, n, o.Spacing, o.Jitter, center)
	}
	return nil
}

// JitterGrid samples a Width×Height grid centred on opts.Center.
//
// Points are returned with the x index as the outer loop, and each point
// consumes two draws from src (x, then z). A zero width or height yields an
// empty result without touching src.
func JitterGrid(opts GridOptions, src Source) ([]SamplePoint, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if src == nil {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "random source is required")
	}
	if opts.Width == 0 || opts.Height == 0 {
		return []SamplePoint{}, nil
	}

	offset := r2.Vec{
		X: opts.Center.X - float64(opts.Width-1)*opts.Spacing/2,
		Y: opts.Center.Y - float64(opts.Height-1)*opts.Spacing/2,
	}
	half := opts.Jitter / 2

	points := make([]SamplePoint, 0, opts.Width*opts.Height)
	for i := range opts.Width {
		for j := range opts.Height {
			cell := r2.Add(r2.Scale(opts.Spacing, r2.Vec{X: float64(i), Y: float64(j)}), offset)
			jittered := cell
			jittered.X += (src.Float64()*2 - 1) * half
			jittered.Y += (src.Float64()*2 - 1) * half
			points = append(points, SamplePoint{Jittered: jittered, Cell: cell})
		}
	}
	return points, nil
}
