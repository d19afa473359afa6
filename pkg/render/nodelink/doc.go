// Package nodelink renders a scene as a node-link diagram of its
// nearest-neighbour graph.
//
// Every instance becomes a node pinned at its ground position (x, z) and is
// linked to the closest other instance, either within its layer or across
// the whole scene. The graph is laid out by Graphviz's neato engine, which
// keeps pinned nodes in place, so clusters and gaps in a placement are easy
// to spot.
//
// # Usage
//
//	dot := nodelink.ToDOT(res, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] is pure Go; [RenderSVG] runs the Graphviz WebAssembly build that
// ships with github.com/goccy/go-graphviz and needs no system install.
package nodelink
