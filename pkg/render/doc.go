// Package render groups the visualizations of a generated scene.
//
// # Plots
//
// The [plot] subpackage draws a top-down scatter plot with one colour and
// glyph per layer, optionally with the grid cell centres behind the jittered
// points. It writes SVG, PNG and PDF through gonum/plot.
//
//	svg, err := plot.Scene(res, plot.Options{Format: plot.FormatSVG})
//
// # Neighbour Graphs
//
// The [nodelink] subpackage links every instance to its nearest neighbour
// and lays the result out with Graphviz, keeping each node pinned at its
// ground position. It is handy for spotting clumps and holes in a sampler's
// output.
//
//	dot := nodelink.ToDOT(res, nodelink.Options{CrossLayer: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [plot]: github.com/matzehuels/scatterfield/pkg/render/plot
// [nodelink]: github.com/matzehuels/scatterfield/pkg/render/nodelink
package render
