package pipeline

import (
	"context"
	"fmt"

	sfio "github.com/matzehuels/scatterfield/pkg/io"
	"github.com/matzehuels/scatterfield/pkg/render/nodelink"
	"github.com/matzehuels/scatterfield/pkg/render/plot"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, res *scene.Result, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(ctx, res, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, res *scene.Result, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		return sfio.MarshalScene(res)
	case FormatDOT:
		return []byte(nodelink.ToDOT(res, opts.GraphOptions())), nil
	case FormatGraph:
		return nodelink.Scene(ctx, res, opts.GraphOptions())
	}
	return plot.Scene(res, opts.PlotOptions(format))
}
