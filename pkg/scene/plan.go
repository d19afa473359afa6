package scene

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/placement"
	"github.com/matzehuels/scatterfield/pkg/sampling"
)

// Sampler names accepted in Layer.Sampler.
const (
	SamplerPoisson = "poisson"
	SamplerGrid    = "grid"
)

// DefaultArea is the ground area of the demo scene.
var DefaultArea = Extent{X: 500, Z: 500}

// Extent is a size or position on the ground plane.
type Extent struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Z float64 `json:"z" toml:"z" yaml:"z"`
}

// Vec returns e as a gonum vector (Y holds z).
func (e Extent) Vec() r2.Vec { return r2.Vec{X: e.X, Y: e.Z} }

// Scale is a per-axis instance scale. The zero value means unit scale.
type Scale struct {
	X float64 `json:"x" toml:"x" yaml:"x"`
	Y float64 `json:"y" toml:"y" yaml:"y"`
	Z float64 `json:"z" toml:"z" yaml:"z"`
}

// Layer is one population of instances in a scene.
type Layer struct {
	Name    string `json:"name" toml:"name" yaml:"name"`
	Asset   string `json:"asset,omitempty" toml:"asset" yaml:"asset,omitempty"`
	Sampler string `json:"sampler" toml:"sampler" yaml:"sampler"`
	Seed    uint64 `json:"seed,omitempty" toml:"seed" yaml:"seed,omitempty"` // 0 derives from the plan seed

	// Poisson
	Count       int     `json:"count,omitempty" toml:"count" yaml:"count,omitempty"`
	MinDistance float64 `json:"min_distance,omitempty" toml:"min_distance" yaml:"min_distance,omitempty"`
	MaxTries    int     `json:"max_tries,omitempty" toml:"max_tries" yaml:"max_tries,omitempty"`

	// Grid
	Width   int     `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height  int     `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	Spacing float64 `json:"spacing,omitempty" toml:"spacing" yaml:"spacing,omitempty"`
	Jitter  float64 `json:"jitter,omitempty" toml:"jitter" yaml:"jitter,omitempty"`
	Center  Extent  `json:"center" toml:"center" yaml:"center"`

	Scale   Scale   `json:"scale" toml:"scale" yaml:"scale"`
	YOffset float64 `json:"y_offset,omitempty" toml:"y_offset" yaml:"y_offset,omitempty"`
}

// Plan is a complete scene description.
type Plan struct {
	Name   string  `json:"name" toml:"name" yaml:"name"`
	Seed   uint64  `json:"seed" toml:"seed" yaml:"seed"`
	Area   Extent  `json:"area" toml:"area" yaml:"area"`
	Layers []Layer `json:"layers" toml:"layers" yaml:"layers"`
}

// PoissonOptions returns the sampler options for a poisson layer over area.
func (l Layer) PoissonOptions(area Extent) sampling.PoissonOptions {
	return sampling.PoissonOptions{
		Count:       l.Count,
		Area:        area.Vec(),
		MinDistance: l.MinDistance,
		MaxTries:    l.MaxTries,
	}
}

// GridOptions returns the sampler options for a grid layer.
func (l Layer) GridOptions() sampling.GridOptions {
	return sampling.GridOptions{
		Width:   l.Width,
		Height:  l.Height,
		Spacing: l.Spacing,
		Jitter:  l.Jitter,
		Center:  l.Center.Vec(),
	}
}

// Placement returns the options used to lift the layer's points.
func (l Layer) Placement() placement.Options {
	return placement.Options{
		Scale:   r3.Vec{X: l.Scale.X, Y: l.Scale.Y, Z: l.Scale.Z},
		YOffset: l.YOffset,
	}
}

// Requested returns how many instances the layer asks for.
func (l Layer) Requested() int {
	if l.Sampler == SamplerGrid {
		return l.Width * l.Height
	}
	return l.Count
}

// Validate checks the layer against the plan area.
func (l Layer) Validate(area Extent) error {
	if err := errors.ValidateName(l.Name); err != nil {
		return err
	}
	switch l.Sampler {
	case SamplerPoisson:
		if err := l.PoissonOptions(area).Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "layer %q", l.Name)
		}
	case SamplerGrid:
		if err := l.GridOptions().Validate(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "layer %q", l.Name)
		}
	default:
		return errors.New(errors.ErrCodeInvalidSampler, "layer %q: unknown sampler %q (want %q or %q)",
			l.Name, l.Sampler, SamplerPoisson, SamplerGrid)
	}
	for _, v := range []float64{l.Scale.X, l.Scale.Y, l.Scale.Z, l.YOffset} {
		if err := errors.ValidateFinite("layer "+l.Name+" transform", v); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks the plan and every layer. Layer names must be unique.
func (p Plan) Validate() error {
	if err := errors.ValidateName(p.Name); err != nil {
		return err
	}
	if len(p.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "plan %q has no layers", p.Name)
	}
	seen := make(map[string]bool, len(p.Layers))
	for _, l := range p.Layers {
		if seen[l.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate layer name %q", l.Name)
		}
		seen[l.Name] = true
		if err := l.Validate(p.Area); err != nil {
			return err
		}
	}
	return nil
}

// Requested returns the total number of instances the plan asks for.
func (p Plan) Requested() int {
	n := 0
	for _, l := range p.Layers {
		n += l.Requested()
	}
	return n
}

// DefaultPlan returns the demo scene: windmills, two kinds of skeleton,
// trees, rocks and zombies scattered over a 500×500 field.
func DefaultPlan() Plan {
	poisson := func(name, asset string, count int, minDist float64) Layer {
		return Layer{Name: name, Asset: asset, Sampler: SamplerPoisson, Count: count, MinDistance: minDist}
	}
	return Plan{
		Name: "demo",
		Seed: 42,
		Area: DefaultArea,
		Layers: []Layer{
			poisson("windmills", "assets/windmill.obj", 10, 50),
			poisson("skeleton-arrow", "assets/Skeleton_Arrow.obj", 15, 20),
			poisson("skeleton-warrior", "assets/Skeleton_Warrior.obj", 15, 20),
			poisson("trees", "assets/tree08.obj", 40, 25),
			poisson("rocks", "assets/MountainRocks-0.obj", 8, 60),
			poisson("zombies", "assets/Zed_1.obj", 20, 15),
		},
	}
}

// SingleLayer wraps one layer in a plan so that standalone sampler runs go
// through the same generation and caching path as full scenes.
func SingleLayer(seed uint64, area Extent, l Layer) Plan {
	return Plan{Name: l.Name, Seed: seed, Area: area, Layers: []Layer{l}}
}
