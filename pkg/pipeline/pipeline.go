// Package pipeline provides the placement pipeline shared by the CLI and
// the HTTP server.
//
// This package implements the complete plan → scene → render pipeline. By
// centralizing this logic, the CLI and the API resolve plans, apply
// defaults, cache results and log progress the same way.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Plan: Resolve the scene plan (inline, from a TOML/YAML/JSON file, or
//     the built-in demo plan) and apply the seed override
//  2. Scene: Sample every layer and lift the points to transforms
//  3. Render: Encode the scene as JSON and/or draw it as PNG, SVG or PDF
//
// Scenes are cached by a hash of the resolved plan, and rendered artifacts
// by the scene key plus the plot options, so repeating a run with the same
// seed costs a cache lookup.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    PlanFile: "village.toml",
//	    Formats:  []string{"json", "svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	res, err := runner.Scene(ctx, opts)
//	artifacts, err := runner.Render(ctx, res, sceneKey, opts)
//
// Besides JSON and plots, a scene can be exported as its nearest-neighbour
// graph: "dot" returns the Graphviz source and "graph" the laid-out SVG.
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterfield/pkg/cache"
	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/render/nodelink"
	"github.com/matzehuels/scatterfield/pkg/render/plot"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is used when neither the plan nor the options set a seed.
	DefaultSeed = uint64(42)

	// DefaultWidth is the default plot width in points.
	DefaultWidth = plot.DefaultWidth

	// DefaultHeight is the default plot height in points.
	DefaultHeight = plot.DefaultHeight
)

// Format constants for output formats.
const (
	FormatJSON  = "json"
	FormatSVG   = plot.FormatSVG
	FormatPNG   = plot.FormatPNG
	FormatPDF   = plot.FormatPDF
	FormatDOT   = "dot"   // nearest-neighbour graph as Graphviz source
	FormatGraph = "graph" // nearest-neighbour graph laid out as SVG
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:  true,
	FormatSVG:   true,
	FormatPNG:   true,
	FormatPDF:   true,
	FormatDOT:   true,
	FormatGraph: true,
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Plan options. Plan wins over PlanFile; with neither, the demo plan is
	// used.
	Plan        *scene.Plan `json:"plan,omitempty"`
	PlanFile    string      `json:"-"`
	Seed        uint64      `json:"seed,omitempty"` // overrides the plan seed when non-zero
	Concurrency int         `json:"-"`
	Refresh     bool        `json:"refresh,omitempty"` // bypass cache reads

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Title     string   `json:"title,omitempty"`
	ShowCells bool     `json:"show_cells,omitempty"`

	// Graph options
	Labels     bool `json:"labels,omitempty"`      // name every node
	CrossLayer bool `json:"cross_layer,omitempty"` // link nearest neighbours across layers

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// resolved is the plan after ResolvePlan.
	resolved *scene.Plan
	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the generated scene.
	Scene *scene.Result

	// SceneKey is the cache key of the scene; plot keys derive from it.
	SceneKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Layers        int
	Requested     int
	Instances     int
	PartialLayers int
	SceneTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid format: %q (must be one of: json, svg, png, pdf, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the plan and applies defaults for the
// full pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if _, err := o.ResolvePlan(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ResolvePlan returns the plan this run samples, loading PlanFile on first
// use, and validates it.
func (o *Options) ResolvePlan() (scene.Plan, error) {
	if o.resolved != nil {
		return *o.resolved, nil
	}

	var p scene.Plan
	switch {
	case o.Plan != nil:
		p = *o.Plan
		p.Layers = append([]scene.Layer(nil), o.Plan.Layers...)
	case o.PlanFile != "":
		loaded, err := scene.Load(o.PlanFile)
		if err != nil {
			return scene.Plan{}, err
		}
		p = loaded
	default:
		p = scene.DefaultPlan()
	}

	if o.Seed != 0 {
		p.Seed = o.Seed
	}
	if p.Seed == 0 {
		p.Seed = DefaultSeed
	}
	if err := p.Validate(); err != nil {
		return scene.Plan{}, err
	}

	o.setLoggerDefault()
	o.resolved = &p
	return p, nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	o.setLoggerDefault()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return o.PlotOptions(FormatSVG).Validate()
}

// PlotFormats returns the requested formats that are drawn as images.
func (o *Options) PlotFormats() []string {
	var out []string
	for _, f := range o.Formats {
		if f != FormatJSON && f != FormatDOT {
			out = append(out, f)
		}
	}
	return out
}

// GraphOptions returns the neighbour-graph settings.
func (o *Options) GraphOptions() nodelink.Options {
	return nodelink.Options{Labels: o.Labels, CrossLayer: o.CrossLayer}
}

// PlotOptions returns the plot settings for one format.
func (o *Options) PlotOptions(format string) plot.Options {
	return plot.Options{
		Format:    format,
		Width:     o.Width,
		Height:    o.Height,
		Title:     o.Title,
		ShowCells: o.ShowCells,
	}
}

// PlotKeyOpts returns cache key options for one rendered format.
func (o *Options) PlotKeyOpts(format string) cache.PlotKeyOpts {
	return cache.PlotKeyOpts{
		Format:     format,
		Width:      o.Width,
		Height:     o.Height,
		Title:      o.Title,
		ShowCells:  o.ShowCells,
		Labels:     o.Labels,
		CrossLayer: o.CrossLayer,
	}
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
