package plot

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	gonumplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// Output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

// Default canvas size in points.
const (
	DefaultWidth  = 600.0
	DefaultHeight = 600.0
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatPDF: true,
}

// Options controls plot rendering.
type Options struct {
	Format    string  // png, svg or pdf; empty means svg
	Width     float64 // points; 0 means DefaultWidth
	Height    float64 // points; 0 means DefaultHeight
	Title     string  // empty means the plan name
	ShowCells bool    // also draw unjittered grid cells
}

func (o Options) withDefaults() Options {
	if o.Format == "" {
		o.Format = FormatSVG
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	return o
}

// Validate checks the format and canvas size.
func (o Options) Validate() error {
	o = o.withDefaults()
	if !ValidFormats[o.Format] {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid plot format %q (must be one of: png, svg, pdf)", o.Format)
	}
	if err := errors.ValidatePositive("plot width", o.Width); err != nil {
		return err
	}
	return errors.ValidatePositive("plot height", o.Height)
}

// Scene renders res and returns the encoded image.
func Scene(res *scene.Result, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, res, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders res to w.
func Write(w io.Writer, res *scene.Result, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	opts = opts.withDefaults()

	p, err := build(res, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Points(opts.Width), vg.Points(opts.Height), opts.Format)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "render %s", opts.Format)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", opts.Format, err)
	}
	return nil
}

func build(res *scene.Result, opts Options) (*gonumplot.Plot, error) {
	p := gonumplot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = res.Plan.Name
	}
	p.X.Label.Text = "x"
	p.Y.Label.Text = "z"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	b := newBounds()
	if res.Plan.Area.X > 0 && res.Plan.Area.Z > 0 {
		b.add(0, 0)
		b.add(res.Plan.Area.X, res.Plan.Area.Z)
	}

	for i, lr := range res.Layers {
		if len(lr.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(lr.Points))
		for k, pt := range lr.Points {
			xys[k] = plotter.XY{X: pt.X, Y: pt.Y}
			b.add(pt.X, pt.Y)
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "layer %s", lr.Layer.Name)
		}
		s.GlyphStyle = draw.GlyphStyle{
			Color:  plotutil.Color(i),
			Shape:  plotutil.Shape(i),
			Radius: vg.Points(3),
		}
		p.Add(s)
		p.Legend.Add(fmt.Sprintf("%s (%d)", lr.Layer.Name, len(lr.Points)), s)

		if opts.ShowCells && len(lr.Samples) > 0 {
			cells := make(plotter.XYs, len(lr.Samples))
			for k, sp := range lr.Samples {
				cells[k] = plotter.XY{X: sp.Cell.X, Y: sp.Cell.Y}
			}
			cs, err := plotter.NewScatter(cells)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInternal, err, "layer %s cells", lr.Layer.Name)
			}
			cs.GlyphStyle = draw.GlyphStyle{
				Color:  color.Gray{Y: 160},
				Shape:  draw.CrossGlyph{},
				Radius: vg.Points(2),
			}
			p.Add(cs)
		}
	}

	if !b.empty() {
		b.apply(p)
	}
	return p, nil
}

type bounds struct {
	minX, maxX, minZ, maxZ float64
}

func newBounds() *bounds {
	return &bounds{minX: math.Inf(1), maxX: math.Inf(-1), minZ: math.Inf(1), maxZ: math.Inf(-1)}
}

func (b *bounds) add(x, z float64) {
	b.minX = math.Min(b.minX, x)
	b.maxX = math.Max(b.maxX, x)
	b.minZ = math.Min(b.minZ, z)
	b.maxZ = math.Max(b.maxZ, z)
}

func (b *bounds) empty() bool { return b.minX > b.maxX }

// apply sets the axis ranges with a 5% margin; degenerate ranges get one
// unit either side.
func (b *bounds) apply(p *gonumplot.Plot) {
	pad := func(lo, hi float64) (float64, float64) {
		m := (hi - lo) * 0.05
		if m == 0 {
			m = 1
		}
		return lo - m, hi + m
	}
	p.X.Min, p.X.Max = pad(b.minX, b.maxX)
	p.Y.Min, p.Y.Max = pad(b.minZ, b.maxZ)
}
