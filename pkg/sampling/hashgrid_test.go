package sampling

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestHashGridKey(t *testing.T) {
	g := newHashGrid(math.Sqrt2) // cell size 1

	tests := []struct {
		p    r2.Vec
		want cellKey
	}{
		{r2.Vec{X: 0, Y: 0}, cellKey{0, 0}},
		{r2.Vec{X: 0.99, Y: 0.5}, cellKey{0, 0}},
		{r2.Vec{X: 1, Y: 2.5}, cellKey{1, 2}},
		{r2.Vec{X: -0.1, Y: -1.5}, cellKey{-1, -2}},
	}

	for _, tt := range tests {
		if got := g.key(tt.p); got != tt.want {
			t.Errorf("key(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestHashGridOccupancy(t *testing.T) {
	g := newHashGrid(10)
	points := []r2.Vec{{X: 3, Y: 3}}
	k := g.key(points[0])

	if g.occupied(k) {
		t.Fatal("empty grid reports occupied cell")
	}
	g.insert(k, 0)
	if !g.occupied(k) {
		t.Error("inserted cell not occupied")
	}
	if g.len() != 1 {
		t.Errorf("len() = %d, want 1", g.len())
	}
}

func TestHashGridConflicts(t *testing.T) {
	const minDistance = 10
	g := newHashGrid(minDistance)
	points := []r2.Vec{{X: 50, Y: 50}}
	g.insert(g.key(points[0]), 0)

	tests := []struct {
		name string
		p    r2.Vec
		want bool
	}{
		{"just inside along x", r2.Vec{X: 59.9, Y: 50}, true},
		{"exactly min distance", r2.Vec{X: 60, Y: 50}, false},
		{"diagonal inside", r2.Vec{X: 56, Y: 56}, true},
		{"diagonal outside", r2.Vec{X: 58, Y: 58}, false},
		{"two cells away inside", r2.Vec{X: 40.5, Y: 50}, true},
		{"far away", r2.Vec{X: 100, Y: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.conflicts(tt.p, g.key(tt.p), points, minDistance*minDistance)
			if got != tt.want {
				t.Errorf("conflicts(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
