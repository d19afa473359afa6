package placement

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/sampling"
)

// Transform places one mesh instance.
type Transform struct {
	Translation r3.Vec
	Scale       r3.Vec
}

// UnitScale is the default instance scale.
var UnitScale = r3.Vec{X: 1, Y: 1, Z: 1}

// Options controls how points are lifted to transforms.
type Options struct {
	Scale   r3.Vec  // zero value means UnitScale
	YOffset float64 // height of every instance
}

func (o Options) scale() r3.Vec {
	if o.Scale == (r3.Vec{}) {
		return UnitScale
	}
	return o.Scale
}

// Lift converts a ground-plane point to a transform.
func (o Options) Lift(p r2.Vec) Transform {
	return Transform{
		Translation: r3.Vec{X: p.X, Y: o.YOffset, Z: p.Y},
		Scale:       o.scale(),
	}
}

// FromPoints maps points to transforms, one per point, in order.
func FromPoints(points []r2.Vec, opts Options) []Transform {
	out := make([]Transform, len(points))
	for i, p := range points {
		out[i] = opts.Lift(p)
	}
	return out
}

// FromSamples maps grid samples to transforms using their jittered
// positions.
func FromSamples(samples []sampling.SamplePoint, opts Options) []Transform {
	out := make([]Transform, len(samples))
	for i, s := range samples {
		out[i] = opts.Lift(s.Jittered)
	}
	return out
}

// Offset returns a copy of ts with every translation moved by d.
func Offset(ts []Transform, d r3.Vec) []Transform {
	out := make([]Transform, len(ts))
	for i, t := range ts {
		t.Translation = r3.Add(t.Translation, d)
		out[i] = t
	}
	return out
}
