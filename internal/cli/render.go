package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
)

// stdoutPath selects standard output instead of a file.
const stdoutPath = "-"

// outputFlags are the flags shared by every command that runs the pipeline.
type outputFlags struct {
	output      string
	formats     string
	width       float64
	height      float64
	title       string
	showCells   bool
	noCache     bool
	refresh     bool
	concurrency int
	labels      bool
	crossLayer  bool
}

func (f *outputFlags) register(cmd *cobra.Command, defaultFormat string) {
	f.formats = defaultFormat
	cmd.Flags().StringVarP(&f.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	cmd.Flags().StringVarP(&f.formats, "format", "f", f.formats, "output format(s): "+formatList()+" (comma-separated)")
	cmd.Flags().Float64Var(&f.width, "plot-width", pipeline.DefaultWidth, "plot width in points")
	cmd.Flags().Float64Var(&f.height, "plot-height", pipeline.DefaultHeight, "plot height in points")
	cmd.Flags().StringVar(&f.title, "title", "", "plot title (default: plan name)")
	cmd.Flags().BoolVar(&f.showCells, "cells", false, "mark grid cell centres in plots")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the scene cache")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "resample even if the scene is cached")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "layers sampled in parallel (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.labels, "labels", false, "name every node in neighbour graphs")
	cmd.Flags().BoolVar(&f.crossLayer, "cross-layer", false, "link nearest neighbours across layers in neighbour graphs")
}

// apply copies the render flags into opts.
func (f *outputFlags) apply(opts *pipeline.Options) {
	opts.Formats = parseFormats(f.formats, pipeline.FormatJSON)
	opts.Width = f.width
	opts.Height = f.height
	opts.Title = f.title
	opts.ShowCells = f.showCells
	opts.Refresh = f.refresh
	opts.Concurrency = f.concurrency
	opts.Labels = f.labels
	opts.CrossLayer = f.crossLayer
}

// basePath derives the path outputs are written under, without extension.
// A known format extension on output is stripped.
func basePath(output, name string) string {
	if output == "" {
		return name
	}
	for _, format := range formatOrder {
		if ext := "." + pipeline.Extension(format); strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPaths maps each format to the file it is written to. A single
// format with an explicit file name keeps that name.
func outputPaths(output, name string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && filepath.Ext(output) != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, name)
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "create output directory")
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// runPipeline executes opts and writes every artifact, then prints a
// summary. With output "-" the single artifact goes to stdout instead.
func (c *CLI) runPipeline(cmd *cobra.Command, opts pipeline.Options, f *outputFlags) error {
	f.apply(&opts)
	if f.output == stdoutPath && len(opts.Formats) != 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "writing to stdout needs exactly one format, got %d", len(opts.Formats))
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "Placing instances...")
	spinner.Start()
	result, err := runner.Execute(cmd.Context(), opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if f.output == stdoutPath {
		_, err := out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	paths := outputPaths(f.output, result.Scene.Plan.Name, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess(out, "Placed %s", result.Scene.Plan.Name)
	printStats(out, result.Stats, result.CacheInfo.SceneHit)
	for _, format := range opts.Formats {
		printFile(out, paths[format])
	}
	for _, lr := range result.Scene.Layers {
		if lr.Partial() {
			printWarning(out, "%s: placed %d of %d after %d attempts",
				lr.Layer.Name, lr.Poisson.Accepted, lr.Poisson.Requested, lr.Poisson.Attempts)
		}
	}
	return nil
}

// formatOrder lists the output formats; "graph" precedes "svg" so that
// basePath strips the longer extension.
var formatOrder = []string{
	pipeline.FormatJSON, pipeline.FormatGraph, pipeline.FormatSVG,
	pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatDOT,
}

// formatList renders formats for help text.
func formatList() string {
	return strings.Join(formatOrder, ", ")
}
