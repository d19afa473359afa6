package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterfield/pkg/cache"
	sfio "github.com/matzehuels/scatterfield/pkg/io"
	"github.com/matzehuels/scatterfield/pkg/observability"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete plan → scene → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1+2: Plan and scene
	sceneStart := time.Now()
	res, key, sceneHit, err := r.sceneWithKey(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	result.Scene = res
	result.SceneKey = key
	result.CacheInfo.SceneHit = sceneHit
	result.Stats = sceneStats(res)
	result.Stats.SceneTime = time.Since(sceneStart)

	r.Logger.Info("generated scene",
		"plan", res.Plan.Name,
		"layers", result.Stats.Layers,
		"instances", result.Stats.Instances,
		"cached", sceneHit,
		"duration", result.Stats.SceneTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, res, key, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func sceneStats(res *scene.Result) Stats {
	s := Stats{Layers: len(res.Layers), Requested: res.Plan.Requested(), Instances: res.Instances()}
	for _, lr := range res.Layers {
		if lr.Partial() {
			s.PartialLayers++
		}
	}
	return s
}

// SceneWithCacheInfo generates the scene with caching and returns cache hit info.
func (r *Runner) SceneWithCacheInfo(ctx context.Context, opts Options) (*scene.Result, bool, error) {
	r.applyLogger(&opts)
	res, _, hit, err := r.sceneWithKey(ctx, opts)
	return res, hit, err
}

// Scene is a convenience wrapper that calls SceneWithCacheInfo and discards the cache hit info.
func (r *Runner) Scene(ctx context.Context, opts Options) (*scene.Result, error) {
	res, _, err := r.SceneWithCacheInfo(ctx, opts)
	return res, err
}

// SceneKey returns the cache key for the plan opts resolves to.
func (r *Runner) SceneKey(opts Options) (string, error) {
	plan, err := opts.ResolvePlan()
	if err != nil {
		return "", err
	}
	return r.Keyer.SceneKey(plan), nil
}

func (r *Runner) sceneWithKey(ctx context.Context, opts Options) (*scene.Result, string, bool, error) {
	plan, err := opts.ResolvePlan()
	if err != nil {
		return nil, "", false, err
	}
	cacheKey := r.Keyer.SceneKey(plan)

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			res, err := sfio.UnmarshalScene(data)
			if err == nil {
				return res, cacheKey, true, nil
			}
			opts.Logger.Warn("discarding unreadable cached scene", "key", cacheKey, "error", err)
		}
	}

	hooks := observability.Pipeline()
	hooks.OnSceneStart(ctx, plan.Name, len(plan.Layers))
	start := time.Now()
	res, err := scene.GenerateWithOptions(ctx, plan, scene.GenerateOptions{Concurrency: opts.Concurrency})
	instances := 0
	if res != nil {
		instances = res.Instances()
	}
	hooks.OnSceneComplete(ctx, plan.Name, instances, time.Since(start), err)
	if err != nil {
		return nil, "", false, err
	}

	for _, lr := range res.Layers {
		if lr.Partial() {
			opts.Logger.Warn("layer placed fewer instances than requested",
				"layer", lr.Layer.Name,
				"placed", lr.Poisson.Accepted,
				"requested", lr.Poisson.Requested,
				"attempts", lr.Poisson.Attempts)
		} else {
			opts.Logger.Debug("sampled layer",
				"layer", lr.Layer.Name,
				"sampler", lr.Layer.Sampler,
				"instances", len(lr.Transforms),
				"min_spacing", lr.Spacing.Min)
		}
	}

	if data, err := sfio.MarshalScene(res); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err != nil {
			opts.Logger.Debug("cache write failed", "key", cacheKey, "error", err)
		}
	}

	return res, cacheKey, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// sceneKey identifies res in the cache; pass the key returned with the scene.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res *scene.Result, sceneKey string, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.PlotKey(sceneKey, opts.PlotKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			return artifacts, true, nil
		}
	}

	plotFormats := opts.PlotFormats()
	hooks := observability.Pipeline()
	if len(plotFormats) > 0 {
		hooks.OnPlotStart(ctx, plotFormats)
	}
	start := time.Now()
	rendered, err := Render(ctx, res, opts)
	if len(plotFormats) > 0 {
		hooks.OnPlotComplete(ctx, plotFormats, time.Since(start), err)
	}
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		_ = r.Cache.Set(ctx, r.Keyer.PlotKey(sceneKey, opts.PlotKeyOpts(format)), data, cache.TTLPlot)
	}
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, res *scene.Result, sceneKey string, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, res, sceneKey, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
