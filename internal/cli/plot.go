package cli

import (
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/errors"
	sfio "github.com/matzehuels/scatterfield/pkg/io"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
)

// plotCommand creates the command that draws an exported scene.
func (c *CLI) plotCommand() *cobra.Command {
	var of outputFlags

	cmd := &cobra.Command{
		Use:   "plot <scene.json>",
		Short: "Draw a previously exported scene as SVG, PNG or PDF",
		Long: `Draw a scene written by "scatterfield scene -f json" as a top-down scatter
plot, one colour per layer. The scene is not resampled.`,
		Example: `  scatterfield plot demo.json
  scatterfield plot demo.json -f png,pdf --plot-width 1200 --plot-height 1200`,
		Args: requireArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlot(cmd, args[0], &of)
		},
	}

	of.register(cmd, pipeline.FormatSVG)
	for _, name := range []string{"no-cache", "refresh", "concurrency"} {
		_ = cmd.Flags().MarkHidden(name)
	}

	return cmd
}

func (c *CLI) runPlot(cmd *cobra.Command, input string, of *outputFlags) error {
	prog := newProgress(c.Logger)

	res, err := sfio.ImportScene(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded scene", "file", input, "id", res.ID, "layers", len(res.Layers))

	var opts pipeline.Options
	of.apply(&opts)
	opts.Logger = c.Logger
	if err := opts.ValidateForRender(); err != nil {
		return err
	}
	artifacts, err := pipeline.Render(cmd.Context(), res, opts)
	if err != nil {
		return err
	}
	prog.done("rendered scene", "formats", opts.Formats)

	out := cmd.OutOrStdout()
	if of.output == stdoutPath {
		if len(opts.Formats) != 1 {
			return errors.New(errors.ErrCodeInvalidArgument, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
		}
		_, err := out.Write(artifacts[opts.Formats[0]])
		return err
	}

	name := strings.TrimSuffix(input, filepath.Ext(input))
	paths := outputPaths(of.output, name, opts.Formats)
	for _, format := range opts.Formats {
		if filepath.Clean(paths[format]) == filepath.Clean(input) {
			return errors.New(errors.ErrCodeInvalidArgument, "refusing to overwrite input %s; pass --output", input)
		}
	}
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], artifacts[format]); err != nil {
			return err
		}
	}
	printSuccess(out, "Plotted %s", res.Plan.Name)
	printDetail(out, "%d layers · %d instances", len(res.Layers), res.Instances())
	for _, format := range opts.Formats {
		printFile(out, paths[format])
	}
	return nil
}
