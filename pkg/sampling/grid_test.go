package sampling

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/scatterfield/pkg/errors"
)

func TestJitterGridCenteredRow(t *testing.T) {
	opts := GridOptions{Width: 3, Height: 1, Spacing: 10, Jitter: 0}
	points, err := JitterGrid(opts, Constant(0.5))
	if err != nil {
		t.Fatalf("JitterGrid() error: %v", err)
	}

	want := []SamplePoint{
		{Jittered: r2.Vec{X: -10}, Cell: r2.Vec{X: -10}},
		{Jittered: r2.Vec{X: 0}, Cell: r2.Vec{X: 0}},
		{Jittered: r2.Vec{X: 10}, Cell: r2.Vec{X: 10}},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("JitterGrid() mismatch (-want +got):\n%s", diff)
	}
}

func TestJitterGridCoverage(t *testing.T) {
	opts := GridOptions{
		Width:   4,
		Height:  3,
		Spacing: 2.5,
		Jitter:  1.2,
		Center:  r2.Vec{X: 7, Y: -3},
	}
	points, err := JitterGrid(opts, NewSource(7))
	if err != nil {
		t.Fatalf("JitterGrid() error: %v", err)
	}
	if len(points) != 12 {
		t.Fatalf("len(points) = %d, want 12", len(points))
	}

	var sum r2.Vec
	for k, p := range points {
		i, j := k/opts.Height, k%opts.Height
		wantCell := r2.Vec{
			X: opts.Center.X + (float64(i)-1.5)*opts.Spacing,
			Y: opts.Center.Y + (float64(j)-1)*opts.Spacing,
		}
		if math.Abs(p.Cell.X-wantCell.X) > 1e-9 || math.Abs(p.Cell.Y-wantCell.Y) > 1e-9 {
			t.Errorf("point %d cell = %v, want %v", k, p.Cell, wantCell)
		}
		d := r2.Sub(p.Jittered, p.Cell)
		if math.Abs(d.X) > opts.Jitter/2 || math.Abs(d.Y) > opts.Jitter/2 {
			t.Errorf("point %d jitter %v exceeds ±%g", k, d, opts.Jitter/2)
		}
		sum = r2.Add(sum, p.Cell)
	}

	mean := r2.Scale(1/float64(len(points)), sum)
	if math.Abs(mean.X-opts.Center.X) > 1e-9 || math.Abs(mean.Y-opts.Center.Y) > 1e-9 {
		t.Errorf("grid centre = %v, want %v", mean, opts.Center)
	}
}

func TestJitterGridTraversalOrder(t *testing.T) {
	opts := GridOptions{Width: 2, Height: 2, Spacing: 4, Jitter: 2}
	src := Sequence(0.25, 0.75, 0.5, 0.5, 1, 0, 0.5, 0.5)

	points, err := JitterGrid(opts, src)
	if err != nil {
		t.Fatalf("JitterGrid() error: %v", err)
	}

	want := []SamplePoint{
		{Cell: r2.Vec{X: -2, Y: -2}, Jittered: r2.Vec{X: -2.5, Y: -1.5}},
		{Cell: r2.Vec{X: -2, Y: 2}, Jittered: r2.Vec{X: -2, Y: 2}},
		{Cell: r2.Vec{X: 2, Y: -2}, Jittered: r2.Vec{X: 3, Y: -3}},
		{Cell: r2.Vec{X: 2, Y: 2}, Jittered: r2.Vec{X: 2, Y: 2}},
	}
	if diff := cmp.Diff(want, points); diff != "" {
		t.Errorf("JitterGrid() order mismatch (-want +got):\n%s", diff)
	}
}

func TestJitterGridDrawCount(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
	}{
		{"5x4", 5, 4, 40},
		{"1x1", 1, 1, 2},
		{"zero width", 0, 9, 0},
		{"zero height", 9, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &Counting{Source: NewSource(1)}
			points, err := JitterGrid(GridOptions{Width: tt.width, Height: tt.height, Spacing: 1, Jitter: 0.5}, src)
			if err != nil {
				t.Fatalf("JitterGrid() error: %v", err)
			}
			if src.Draws() != tt.want {
				t.Errorf("draws = %d, want %d", src.Draws(), tt.want)
			}
			if len(points) != tt.width*tt.height {
				t.Errorf("len(points) = %d, want %d", len(points), tt.width*tt.height)
			}
		})
	}
}

func TestJitterGridDeterministic(t *testing.T) {
	opts := GridOptions{Width: 10, Height: 10, Spacing: 15, Jitter: 10, Center: r2.Vec{X: 1, Y: 2}}

	a, err := JitterGrid(opts, NewSource(42))
	if err != nil {
		t.Fatalf("JitterGrid() error: %v", err)
	}
	b, err := JitterGrid(opts, NewSource(42))
	if err != nil {
		t.Fatalf("JitterGrid() error: %v", err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("same seed produced different grids (-a +b):\n%s", diff)
	}

	c, _ := JitterGrid(opts, NewSource(43))
	if cmp.Equal(a, c) {
		t.Error("different seeds produced identical grids")
	}
}

func TestJitterGridInvalid(t *testing.T) {
	valid := GridOptions{Width: 2, Height: 2, Spacing: 1, Jitter: 0.5}

	tests := []struct {
		name   string
		modify func(*GridOptions)
	}{
		{"negative width", func(o *GridOptions) { o.Width = -1 }},
		{"negative height", func(o *GridOptions) { o.Height = -3 }},
		{"zero spacing", func(o *GridOptions) { o.Spacing = 0 }},
		{"negative spacing", func(o *GridOptions) { o.Spacing = -2 }},
		{"NaN spacing", func(o *GridOptions) { o.Spacing = math.NaN() }},
		{"negative jitter", func(o *GridOptions) { o.Jitter = -0.1 }},
		{"infinite jitter", func(o *GridOptions) { o.Jitter = math.Inf(1) }},
		{"NaN center", func(o *GridOptions) { o.Center.X = math.NaN() }},
		{"infinite center", func(o *GridOptions) { o.Center.Y = math.Inf(-1) }},
		{"too many points", func(o *GridOptions) { o.Width, o.Height = MaxPoints, 2 }},
		{"spacing overflows", func(o *GridOptions) { o.Width, o.Height, o.Spacing = 3, 1, 1e308 }},
		{"height span overflows", func(o *GridOptions) { o.Height, o.Spacing = 5, math.MaxFloat64 / 2 }},
		{"center plus jitter overflows", func(o *GridOptions) { o.Center.X, o.Jitter = math.MaxFloat64, math.MaxFloat64 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.modify(&opts)
			src := &Counting{Source: NewSource(1)}
			_, err := JitterGrid(opts, src)
			if !errors.Is(err, errors.ErrCodeInvalidArgument) {
				t.Errorf("JitterGrid() error = %v, want INVALID_ARGUMENT", err)
			}
			if src.Draws() != 0 {
				t.Errorf("invalid call drew %d values", src.Draws())
			}
		})
	}

	t.Run("near the float limit", func(t *testing.T) {
		opts := GridOptions{Width: 3, Height: 3, Spacing: math.MaxFloat64 / 4, Jitter: 1}
		points, err := JitterGrid(opts, NewSource(1))
		if err != nil {
			t.Fatalf("JitterGrid() error = %v", err)
		}
		for i, p := range points {
			for _, v := range []float64{p.Jittered.X, p.Jittered.Y, p.Cell.X, p.Cell.Y} {
				if math.IsInf(v, 0) || math.IsNaN(v) {
					t.Fatalf("point %d = %+v is not finite", i, p)
				}
			}
		}
	})

	t.Run("nil source", func(t *testing.T) {
		if _, err := JitterGrid(valid, nil); !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("JitterGrid(nil source) error = %v, want INVALID_ARGUMENT", err)
		}
	})
}
