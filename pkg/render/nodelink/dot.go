package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot/plotutil"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// DefaultScale maps scene units to graphviz points.
const DefaultScale = 1.0

// Options configures neighbour-graph rendering.
type Options struct {
	// Scale multiplies every coordinate; 0 means DefaultScale.
	Scale float64

	// Labels draws "layer#index" inside every node instead of a bare dot.
	Labels bool

	// CrossLayer links each instance to its nearest neighbour in the whole
	// scene rather than within its own layer.
	CrossLayer bool
}

type node struct {
	layer, index int
	x, z         float64
}

// ToDOT converts a scene to a Graphviz graph in which every instance is a
// node pinned at its ground position and linked to its nearest neighbour.
// Nodes are coloured per layer with the same palette as package plot.
func ToDOT(res *scene.Result, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = DefaultScale
	}

	var buf bytes.Buffer
	buf.WriteString("graph scene {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	if opts.Labels {
		buf.WriteString("  node [shape=circle, style=filled, fontsize=8, width=0.3, fixedsize=true];\n")
	} else {
		buf.WriteString("  node [shape=point, width=0.08];\n")
	}
	buf.WriteString("  edge [color=\"#999999\"];\n\n")

	var all []node
	for li, lr := range res.Layers {
		c := hex(plotutil.Color(li))
		fmt.Fprintf(&buf, "  // %s\n", lr.Layer.Name)
		for i, p := range lr.Points {
			id := nodeID(lr.Layer.Name, i)
			label := ""
			if opts.Labels {
				label = fmt.Sprintf(", label=%q", id)
			}
			fmt.Fprintf(&buf, "  %q [pos=\"%s,%s!\", color=%q, fillcolor=%q%s];\n",
				id, num(p.X*scale), num(p.Y*scale), c, c, label)
			all = append(all, node{layer: li, index: i, x: p.X, z: p.Y})
		}
	}
	buf.WriteString("\n")

	for _, e := range neighbourEdges(res, all, opts.CrossLayer) {
		a, b := all[e[0]], all[e[1]]
		fmt.Fprintf(&buf, "  %q -- %q;\n",
			nodeID(res.Layers[a.layer].Layer.Name, a.index),
			nodeID(res.Layers[b.layer].Layer.Name, b.index))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// neighbourEdges returns each undirected nearest-neighbour link once, as
// indices into all, in a deterministic order.
func neighbourEdges(res *scene.Result, all []node, crossLayer bool) [][2]int {
	var edges [][2]int
	seen := make(map[[2]int]bool)
	add := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		if k := [2]int{a, b}; !seen[k] {
			seen[k] = true
			edges = append(edges, k)
		}
	}

	if crossLayer {
		points := make([]r2.Vec, len(all))
		for i, n := range all {
			points[i] = r2.Vec{X: n.x, Y: n.z}
		}
		for i, j := range scene.NearestNeighbors(points) {
			add(i, j)
		}
		return edges
	}

	offset := 0
	for _, lr := range res.Layers {
		for i, j := range scene.NearestNeighbors(lr.Points) {
			add(offset+i, offset+j)
		}
		offset += len(lr.Points)
	}
	return edges
}

func nodeID(layer string, i int) string {
	return layer + "#" + strconv.Itoa(i)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// RenderSVG lays out a DOT graph with neato, honouring pinned positions, and
// returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render graph")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Scene renders res as a neighbour graph in SVG.
func Scene(ctx context.Context, res *scene.Result, opts Options) ([]byte, error) {
	return RenderSVG(ctx, ToDOT(res, opts))
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces graphviz's pt-sized root element with a plain
// viewBox so the graph scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
