package scene

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/scatterfield/pkg/observability"
	"github.com/matzehuels/scatterfield/pkg/placement"
	"github.com/matzehuels/scatterfield/pkg/sampling"
)

// Result is a generated scene.
type Result struct {
	ID     uuid.UUID
	Plan   Plan
	Layers []LayerResult
}

// LayerResult holds the placement of one layer.
type LayerResult struct {
	Layer      Layer
	Points     []r2.Vec                // ground positions, jittered for grid layers
	Samples    []sampling.SamplePoint  // grid layers only
	Transforms []placement.Transform
	Poisson    *sampling.PoissonStats // poisson layers only
	Spacing    Spacing
}

// Partial reports whether a poisson layer ran out of attempts.
func (l LayerResult) Partial() bool {
	return l.Poisson != nil && l.Poisson.Partial()
}

// Instances returns the number of placed instances across all layers.
func (r *Result) Instances() int {
	n := 0
	for _, l := range r.Layers {
		n += len(l.Transforms)
	}
	return n
}

// Layer returns the layer result with the given name.
func (r *Result) Layer(name string) (LayerResult, bool) {
	for _, l := range r.Layers {
		if l.Layer.Name == name {
			return l, true
		}
	}
	return LayerResult{}, false
}

// GenerateOptions tunes [Generate].
type GenerateOptions struct {
	// Concurrency bounds how many layers are sampled at once.
	// Zero means GOMAXPROCS.
	Concurrency int
}

// Generate validates plan and samples every layer.
func Generate(ctx context.Context, plan Plan) (*Result, error) {
	return GenerateWithOptions(ctx, plan, GenerateOptions{})
}

// GenerateWithOptions is [Generate] with explicit options.
func GenerateWithOptions(ctx context.Context, plan Plan, opts GenerateOptions) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	layers := make([]LayerResult, len(plan.Layers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, l := range plan.Layers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lr, err := sampleLayer(gctx, plan, i, l)
			if err != nil {
				return err
			}
			layers[i] = lr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{ID: uuid.New(), Plan: plan, Layers: layers}, nil
}

func layerSource(plan Plan, i int, l Layer) sampling.Source {
	if l.Seed != 0 {
		return sampling.NewSource(l.Seed)
	}
	return sampling.Derive(plan.Seed, uint64(i))
}

func sampleLayer(ctx context.Context, plan Plan, i int, l Layer) (lr LayerResult, err error) {
	hooks := observability.Sampler()
	hooks.OnSampleStart(ctx, l.Sampler, l.Name, l.Requested())
	start := time.Now()
	defer func() {
		hooks.OnSampleComplete(ctx, l.Sampler, l.Name, l.Requested(), len(lr.Transforms), time.Since(start), err)
	}()

	src := layerSource(plan, i, l)
	lr.Layer = l
	switch l.Sampler {
	case SamplerGrid:
		samples, err := sampling.JitterGrid(l.GridOptions(), src)
		if err != nil {
			return LayerResult{}, err
		}
		lr.Samples = samples
		lr.Points = make([]r2.Vec, len(samples))
		for k, s := range samples {
			lr.Points[k] = s.Jittered
		}
		lr.Transforms = placement.FromSamples(samples, l.Placement())
	default:
		points, stats, err := sampling.PoissonWithStats(l.PoissonOptions(plan.Area), src)
		if err != nil {
			return LayerResult{}, err
		}
		lr.Points = points
		lr.Poisson = &stats
		lr.Transforms = placement.FromPoints(points, l.Placement())
	}
	lr.Spacing = Measure(lr.Points)
	return lr, nil
}
