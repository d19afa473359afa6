package sampling

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

// DefaultMaxTries is the per-point retry budget used when MaxTries is zero.
const DefaultMaxTries = 30

// PoissonOptions configures [Poisson].
type PoissonOptions struct {
	Count       int     // points requested
	Area        r2.Vec  // X: extent along x, Y: extent along z; both > 0
	MinDistance float64 // minimum pairwise distance, > 0
	MaxTries    int     // attempts per requested point; 0 means DefaultMaxTries
}

// PoissonStats describes how a Poisson run ended.
type PoissonStats struct {
	Requested int  `json:"requested"`
	Accepted  int  `json:"accepted"`
	Attempts  int  `json:"attempts"`
	Rejected  int  `json:"rejected"`
	Exhausted bool `json:"exhausted"` // retry budget ran out before Count was reached
}

// Partial reports whether fewer points than requested were accepted.
func (s PoissonStats) Partial() bool { return s.Accepted < s.Requested }

func (o PoissonOptions) maxTries() int {
	if o.MaxTries == 0 {
		return DefaultMaxTries
	}
	return o.MaxTries
}

// Budget returns the total number of candidate attempts allowed.
func (o PoissonOptions) Budget() int {
	return o.Count * o.maxTries()
}

// Validate checks the options without drawing anything.
func (o PoissonOptions) Validate() error {
	if err := errors.ValidateCount("count", o.Count); err != nil {
		return err
	}
	if err := errors.ValidateCount("max tries", o.MaxTries); err != nil {
		return err
	}
	if err := errors.ValidatePositive("area.x", o.Area.X); err != nil {
		return err
	}
	if err := errors.ValidatePositive("area.z", o.Area.Y); err != nil {
		return err
	}
	if err := errors.ValidatePositive("min distance", o.MinDistance); err != nil {
		return err
	}
	if o.Count > MaxPoints {
		return errors.New(errors.ErrCodeInvalidArgument, "count %d exceeds %d points", o.Count, MaxPoints)
	}
	if o.Count > 0 && o.maxTries() > (1<<31)/o.Count {
		return errors.New(errors.ErrCodeInvalidArgument, "retry budget %d×%d is too large", o.Count, o.maxTries())
	}
	return nil
}

// Poisson scatters up to opts.Count points over opts.Area so that no two
// are closer than opts.MinDistance. See [PoissonWithStats].
func Poisson(opts PoissonOptions, src Source) ([]r2.Vec, error) {
	points, _, err := PoissonWithStats(opts, src)
	return points, err
}

// PoissonWithStats is [Poisson] that also reports how the run ended.
//
// Each attempt draws x then z from src. The run stops once Count points are
// accepted or Count*MaxTries attempts have been made, so it draws at most
// 2*Count*MaxTries values. A short result is not an error; check
// PoissonStats.Partial.
func PoissonWithStats(opts PoissonOptions, src Source) ([]r2.Vec, PoissonStats, error) {
	if err := opts.Validate(); err != nil {
		return nil, PoissonStats{}, err
	}
	if src == nil {
		return nil, PoissonStats{}, errors.New(errors.ErrCodeInvalidArgument, "random source is required")
	}

	stats := PoissonStats{Requested: opts.Count}
	points := make([]r2.Vec, 0, opts.Count)
	if opts.Count == 0 {
		return points, stats, nil
	}

	grid := newHashGrid(opts.MinDistance)
	minDist2 := opts.MinDistance * opts.MinDistance
	budget := opts.Budget()

	for len(points) < opts.Count && stats.Attempts < budget {
		stats.Attempts++
		p := r2.Vec{
			X: src.Float64() * opts.Area.X,
			Y: src.Float64() * opts.Area.Y,
		}
		k := grid.key(p)
		if grid.occupied(k) || grid.conflicts(p, k, points, minDist2) {
			stats.Rejected++
			continue
		}
		grid.insert(k, len(points))
		points = append(points, p)
	}

	stats.Accepted = len(points)
	stats.Exhausted = stats.Accepted < opts.Count
	return points, stats, nil
}
