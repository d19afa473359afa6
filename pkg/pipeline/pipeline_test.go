package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"dot", false},
		{"graph", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidArgument) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"json", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestResolvePlanDefault(t *testing.T) {
	opts := Options{}
	p, err := opts.ResolvePlan()
	if err != nil {
		t.Fatalf("ResolvePlan: %v", err)
	}
	if p.Name != "demo" || len(p.Layers) != 6 {
		t.Errorf("default plan = %s with %d layers", p.Name, len(p.Layers))
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestResolvePlanSeed(t *testing.T) {
	plan := scene.DefaultPlan()
	plan.Seed = 0

	opts := Options{Plan: &plan}
	p, err := opts.ResolvePlan()
	if err != nil {
		t.Fatal(err)
	}
	if p.Seed != DefaultSeed {
		t.Errorf("unseeded plan should get DefaultSeed, got %d", p.Seed)
	}

	opts = Options{Plan: &plan, Seed: 7}
	if p, _ = opts.ResolvePlan(); p.Seed != 7 {
		t.Errorf("Seed option should override, got %d", p.Seed)
	}
	if plan.Seed != 0 {
		t.Error("ResolvePlan must not modify the caller's plan")
	}
}

func TestResolvePlanFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.yaml")
	content := "name: meadow\narea: {x: 100, z: 100}\nlayers:\n  - name: flowers\n    sampler: poisson\n    count: 10\n    min_distance: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	opts := Options{PlanFile: path}
	p, err := opts.ResolvePlan()
	if err != nil {
		t.Fatalf("ResolvePlan: %v", err)
	}
	if p.Name != "meadow" || p.Layers[0].Name != "flowers" {
		t.Errorf("unexpected plan %+v", p)
	}

	opts = Options{PlanFile: filepath.Join(t.TempDir(), "missing.toml")}
	if _, err := opts.ResolvePlan(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing plan file error = %v", err)
	}
}

func TestResolvePlanInvalid(t *testing.T) {
	opts := Options{Plan: &scene.Plan{Name: "bad"}}
	if _, err := opts.ResolvePlan(); !errors.IsInvalid(err) {
		t.Errorf("invalid plan error = %v", err)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}
	formats := opts.Formats
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}
	if len(opts.Formats) != len(formats) {
		t.Error("Formats changed on second call")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats should be [json], got %v", opts.Formats)
	}
	if opts.Width != DefaultWidth || opts.Height != DefaultHeight {
		t.Errorf("size should be %gx%g, got %gx%g", DefaultWidth, DefaultHeight, opts.Width, opts.Height)
	}
}

func TestValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"gif"}}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("unknown format should fail")
	}
	opts = Options{Width: -5}
	if err := opts.ValidateForRender(); err == nil {
		t.Error("negative width should fail")
	}
}

func TestPlotFormats(t *testing.T) {
	opts := Options{Formats: []string{"json", "svg", "dot", "png", "graph"}}
	got := opts.PlotFormats()
	if len(got) != 3 || got[0] != "svg" || got[1] != "png" || got[2] != "graph" {
		t.Errorf("PlotFormats() = %v", got)
	}
}

func TestExtension(t *testing.T) {
	for format, want := range map[string]string{"json": "json", "svg": "svg", "dot": "dot", "graph": "graph.svg"} {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestPlotKeyOptsCarriesGraphSettings(t *testing.T) {
	opts := Options{Labels: true, CrossLayer: true}
	opts.SetRenderDefaults()
	k := opts.PlotKeyOpts(FormatGraph)
	if !k.Labels || !k.CrossLayer || k.Format != FormatGraph {
		t.Errorf("PlotKeyOpts = %+v", k)
	}
	if g := opts.GraphOptions(); !g.Labels || !g.CrossLayer {
		t.Errorf("GraphOptions = %+v", g)
	}
}
