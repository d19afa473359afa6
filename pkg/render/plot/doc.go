// Package plot draws a top-down scatter plot of a generated scene.
//
// Each layer is drawn with its own colour and glyph shape and listed in the
// legend together with how many instances it placed. The plot axes cover
// the plan's ground area (x across, z up) and grow to include any grid
// layer that lies outside it.
//
//	data, err := plot.Scene(result, plot.Options{Format: plot.FormatSVG})
//
// Rendering uses gonum.org/v1/plot, so PNG, SVG and PDF output need no
// external tools.
package plot
