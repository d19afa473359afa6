// Package pkg provides the libraries behind scatterfield, a procedural
// object scatterer for 3D scenes.
//
// # Overview
//
// scatterfield places instances of assets (trees, rocks, windmills, ...) on
// a ground plane. A scene plan lists layers; each layer picks a sampler, the
// sampler produces 2D ground positions, and the positions are lifted into
// per-instance transforms that a renderer can consume directly.
//
// # Architecture
//
// The data flow for a scene:
//
//	scene plan (TOML / YAML / JSON)
//	         ↓
//	    [scene] package (validate, derive per-layer seeds)
//	         ↓
//	    [sampling] package (jittered grid, Poisson-disk)
//	         ↓
//	    [placement] package (ground points → transforms)
//	         ↓
//	    [io] (scene JSON) and [render] (SVG/PNG/PDF plots, DOT graphs)
//
// # Quick Start
//
//	import (
//	    "context"
//	    "os"
//
//	    sfio "github.com/matzehuels/scatterfield/pkg/io"
//	    "github.com/matzehuels/scatterfield/pkg/scene"
//	)
//
//	res, err := scene.Generate(context.Background(), scene.DefaultPlan())
//	if err != nil {
//	    return err
//	}
//	return sfio.WriteScene(res, os.Stdout)
//
// # Main Packages
//
// [sampling] - Point samplers driven by an explicit random source: the
// jittered grid and the dart-throwing Poisson-disk sampler with its spatial
// hash grid.
//
// [placement] - Transforms (translation, scale), row layouts and bounding
// box extents of vertex buffers.
//
// [scene] - Plans, layers and the generator that runs them with per-layer
// seeds derived from the scene seed.
//
// [io] - The JSON interchange format for generated scenes.
//
// [render] - Top-down plots (gonum/plot) and nearest-neighbour graphs
// (graphviz).
//
// [pipeline] - Orchestration of generate → render with caching.
//
// [cache] - File, Redis and MongoDB backends plus content-addressed keys.
//
// [server] - The HTTP API served by "scatterfield serve".
//
// [errors], [observability], [buildinfo] - Coded errors, hooks and version
// information shared by the rest.
//
// [sampling]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/sampling
// [placement]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/placement
// [scene]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/scene
// [io]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/scatterfield/pkg/buildinfo
package pkg
