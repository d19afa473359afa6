package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// layerFlags holds the flags shared by the single-sampler commands.
type layerFlags struct {
	name    string
	asset   string
	seed    uint64
	scale   string
	yOffset float64
}

func (f *layerFlags) register(cmd *cobra.Command, name string) {
	cmd.Flags().StringVar(&f.name, "name", name, "layer name")
	cmd.Flags().StringVar(&f.asset, "asset", "", "asset path recorded with the layer")
	cmd.Flags().Uint64Var(&f.seed, "seed", pipeline.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&f.scale, "scale", "1,1,1", "instance scale as x,y,z")
	cmd.Flags().Float64Var(&f.yOffset, "y-offset", 0, "height of every instance")
}

// layer builds the common layer fields.
func (f *layerFlags) layer(sampler string) (scene.Layer, error) {
	scale, err := parseFloats("scale", f.scale, 3)
	if err != nil {
		return scene.Layer{}, err
	}
	return scene.Layer{
		Name:    f.name,
		Asset:   f.asset,
		Sampler: sampler,
		Scale:   scene.Scale{X: scale[0], Y: scale[1], Z: scale[2]},
		YOffset: f.yOffset,
	}, nil
}

// gridCommand creates the jittered grid command.
func (c *CLI) gridCommand() *cobra.Command {
	var (
		lf      layerFlags
		of      outputFlags
		width   int
		height  int
		spacing float64
		jitter  float64
		center  string
	)

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Place instances on a jittered grid",
		Long: `Place width×height instances on a regular grid centred on --center, each
displaced inside its cell by up to ±jitter/2 on both axes.`,
		Example: `  scatterfield grid --width 8 --height 8 --spacing 40 --jitter 20
  scatterfield grid -f svg --cells -o fence.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lf.layer(scene.SamplerGrid)
			if err != nil {
				return err
			}
			ctr, err := parseExtent("center", center)
			if err != nil {
				return err
			}
			l.Width, l.Height = width, height
			l.Spacing, l.Jitter = spacing, jitter
			l.Center = ctr

			plan := scene.SingleLayer(lf.seed, scene.DefaultArea, l)
			return c.runPipeline(cmd, pipeline.Options{Plan: &plan}, &of)
		},
	}

	lf.register(cmd, scene.SamplerGrid)
	of.register(cmd, pipeline.FormatJSON)
	cmd.Flags().IntVar(&width, "width", 10, "grid columns (x)")
	cmd.Flags().IntVar(&height, "height", 10, "grid rows (z)")
	cmd.Flags().Float64Var(&spacing, "spacing", 50, "distance between cell centres")
	cmd.Flags().Float64Var(&jitter, "jitter", 25, "jitter cell size; 0 places instances on cell centres")
	cmd.Flags().StringVar(&center, "center", "0,0", "grid centre as x,z")

	return cmd
}

// poissonCommand creates the Poisson-disk command.
func (c *CLI) poissonCommand() *cobra.Command {
	var (
		lf          layerFlags
		of          outputFlags
		count       int
		area        string
		minDistance float64
		maxTries    int
	)

	cmd := &cobra.Command{
		Use:   "poisson",
		Short: "Place instances at least a minimum distance apart",
		Long: `Place up to --count instances uniformly inside the area, rejecting any
candidate closer than --min-distance to an accepted one. The search gives
up after count×max-tries candidates; a partial result is reported, not an
error.`,
		Example: `  scatterfield poisson --count 40 --min-distance 25 --asset assets/tree08.obj
  scatterfield poisson --count 500 --area 200,200 -f png -o crowded.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := lf.layer(scene.SamplerPoisson)
			if err != nil {
				return err
			}
			a, err := parseExtent("area", area)
			if err != nil {
				return err
			}
			l.Count, l.MinDistance, l.MaxTries = count, minDistance, maxTries

			plan := scene.SingleLayer(lf.seed, a, l)
			return c.runPipeline(cmd, pipeline.Options{Plan: &plan}, &of)
		},
	}

	lf.register(cmd, scene.SamplerPoisson)
	of.register(cmd, pipeline.FormatJSON)
	cmd.Flags().IntVarP(&count, "count", "n", 50, "instances to place")
	cmd.Flags().StringVar(&area, "area", "500,500", "sampling area as x,z extents")
	cmd.Flags().Float64Var(&minDistance, "min-distance", 20, "minimum distance between instances")
	cmd.Flags().IntVar(&maxTries, "max-tries", 30, "candidate attempts per requested instance")

	return cmd
}

// parseExtent parses "x,z".
func parseExtent(flag, s string) (scene.Extent, error) {
	v, err := parseFloats(flag, s, 2)
	if err != nil {
		return scene.Extent{}, err
	}
	return scene.Extent{X: v[0], Z: v[1]}, nil
}

// parseFloats parses exactly n comma-separated numbers.
func parseFloats(flag, s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, errors.New(errors.ErrCodeInvalidArgument, "--%s: want %d comma-separated numbers, got %q", flag, n, s)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidArgument, err, "--%s: invalid number %q", flag, p)
		}
		out[i] = v
	}
	return out, nil
}
