package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/placement"
	"github.com/matzehuels/scatterfield/pkg/sampling"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

type document struct {
	ID     string       `json:"id"`
	Plan   scene.Plan   `json:"plan"`
	Layers []layerEntry `json:"layers"`
}

type layerEntry struct {
	Name       string                 `json:"name"`
	Asset      string                 `json:"asset,omitempty"`
	Sampler    string                 `json:"sampler"`
	Requested  int                    `json:"requested"`
	Points     [][2]float64           `json:"points"`
	Cells      [][2]float64           `json:"cells,omitempty"`
	Transforms []transform            `json:"transforms"`
	Poisson    *sampling.PoissonStats `json:"poisson,omitempty"`
	Spacing    scene.Spacing          `json:"spacing"`
}

type transform struct {
	Translation [3]float64 `json:"translation"`
	Scale       [3]float64 `json:"scale"`
}

func vec2(v r2.Vec) [2]float64 { return [2]float64{v.X, v.Y} }
func vec3(v r3.Vec) [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func toTransforms(ts []placement.Transform) []transform {
	out := make([]transform, len(ts))
	for i, t := range ts {
		out[i] = transform{Translation: vec3(t.Translation), Scale: vec3(t.Scale)}
	}
	return out
}

func toDocument(res *scene.Result) document {
	doc := document{
		ID:     res.ID.String(),
		Plan:   res.Plan,
		Layers: make([]layerEntry, len(res.Layers)),
	}
	for i, lr := range res.Layers {
		e := layerEntry{
			Name:       lr.Layer.Name,
			Asset:      lr.Layer.Asset,
			Sampler:    lr.Layer.Sampler,
			Requested:  lr.Layer.Requested(),
			Points:     make([][2]float64, len(lr.Points)),
			Transforms: toTransforms(lr.Transforms),
			Poisson:    lr.Poisson,
			Spacing:    lr.Spacing,
		}
		for k, p := range lr.Points {
			e.Points[k] = vec2(p)
		}
		if len(lr.Samples) > 0 {
			e.Cells = make([][2]float64, len(lr.Samples))
			for k, s := range lr.Samples {
				e.Cells[k] = vec2(s.Cell)
			}
		}
		doc.Layers[i] = e
	}
	return doc
}

// WriteScene encodes a scene result as indented JSON and writes it to w.
// The output can be re-imported with [ReadScene].
func WriteScene(res *scene.Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(res)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// MarshalScene returns the JSON encoding of res.
func MarshalScene(res *scene.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteScene(res, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportScene writes a scene result to a JSON file at path.
func ExportScene(res *scene.Result, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteScene(res, f)
}

// MarshalTransforms encodes bare transforms, for renderers that only need
// instance matrices.
func MarshalTransforms(ts []placement.Transform) ([]byte, error) {
	return json.Marshal(toTransforms(ts))
}
