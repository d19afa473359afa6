package sampling

import "math/rand/v2"

// Source yields uniformly distributed values in [0, 1).
type Source interface {
	Float64() float64
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc func() float64

// Float64 calls f.
func (f SourceFunc) Float64() float64 { return f() }

// NewSource returns the seeded PCG generator used for all placement.
// The same seed always yields the same sequence.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Derive returns an independent generator for stream n of seed.
// Scene layers use it so that adding a layer never shifts the draws of the
// layers before it.
func Derive(seed, n uint64) *rand.Rand {
	stream := seed ^ (n+1)*0x9e3779b97f4a7c15
	return rand.New(rand.NewPCG(seed, stream))
}

// Constant returns a Source that always yields v.
func Constant(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

// Sequence returns a Source that cycles through vs.
// An empty sequence behaves like Constant(0).
func Sequence(vs ...float64) Source {
	if len(vs) == 0 {
		return Constant(0)
	}
	vals := append([]float64(nil), vs...)
	i := 0
	return SourceFunc(func() float64 {
		v := vals[i%len(vals)]
		i++
		return v
	})
}

// Counting wraps a Source and counts the values drawn from it.
type Counting struct {
	Source Source
	n      int
}

// Float64 draws from the wrapped source.
func (c *Counting) Float64() float64 {
	c.n++
	return c.Source.Float64()
}

// Draws reports how many values have been drawn.
func (c *Counting) Draws() int { return c.n }
