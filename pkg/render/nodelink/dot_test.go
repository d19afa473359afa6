package nodelink

import (
	"context"
	"strings"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/scatterfield/pkg/scene"
)

func lineScene() *scene.Result {
	return &scene.Result{
		Plan: scene.Plan{Name: "line"},
		Layers: []scene.LayerResult{
			{
				Layer:  scene.Layer{Name: "trees"},
				Points: []r2.Vec{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 5, Y: 0}},
			},
			{
				Layer:  scene.Layer{Name: "rocks"},
				Points: []r2.Vec{{X: 4, Y: 0}},
			},
		},
	}
}

func TestToDOTNodes(t *testing.T) {
	dot := ToDOT(lineScene(), Options{Scale: 10})

	for _, want := range []string{
		"graph scene {",
		`"trees#0" [pos="0.00,0.00!"`,
		`"trees#2" [pos="50.00,0.00!"`,
		`"rocks#0" [pos="40.00,0.00!"`,
		"shape=point",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "label=") {
		t.Error("labels drawn without Options.Labels")
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(lineScene(), Options{Labels: true})
	if !strings.Contains(dot, `label="trees#1"`) {
		t.Errorf("DOT missing label:\n%s", dot)
	}
}

func TestToDOTEdges(t *testing.T) {
	tests := []struct {
		name       string
		crossLayer bool
		want       []string
		notWant    []string
	}{
		{
			name:    "within layer",
			want:    []string{`"trees#0" -- "trees#1"`, `"trees#1" -- "trees#2"`},
			notWant: []string{"rocks#0\" --", "-- \"rocks#0\""},
		},
		{
			name:       "across layers",
			crossLayer: true,
			want:       []string{`"trees#0" -- "trees#1"`, `"trees#2" -- "rocks#0"`},
			notWant:    []string{`"trees#1" -- "trees#2"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(lineScene(), Options{CrossLayer: tt.crossLayer})
			for _, w := range tt.want {
				if !strings.Contains(dot, w) {
					t.Errorf("DOT missing edge %s:\n%s", w, dot)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(dot, w) {
					t.Errorf("DOT has unexpected %s:\n%s", w, dot)
				}
			}
		})
	}
}

func TestToDOTEdgesAreUnique(t *testing.T) {
	dot := ToDOT(lineScene(), Options{})
	// trees#0 and trees#1 are each other's nearest neighbour.
	if n := strings.Count(dot, `"trees#0" -- "trees#1"`); n != 1 {
		t.Errorf("mutual neighbours linked %d times", n)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="62pt" height="44pt" viewBox="0.00 0.00 62.00 44.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 62.00 44.00" width="62" height="44">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestSceneSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz wasm runtime is slow to start")
	}
	res, err := scene.Generate(context.Background(), scene.DefaultPlan())
	if err != nil {
		t.Fatal(err)
	}
	svg, err := Scene(context.Background(), res, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svg), "<svg") || !strings.Contains(string(svg), "windmills#0") {
		t.Errorf("unexpected graph svg: %.200s", svg)
	}
}
