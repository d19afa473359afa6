package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/placement"
	"github.com/matzehuels/scatterfield/pkg/sampling"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// ReadScene decodes a scene result written by [WriteScene].
//
// ReadScene returns an INVALID_FORMAT error if:
//   - The JSON is malformed or the id is not a UUID
//   - The layers do not match the embedded plan's layers, in order
//   - A layer has a different number of points and transforms
//   - A grid layer's cells do not pair up with its points
//
// ReadScene does not close r.
func ReadScene(r io.Reader) (*scene.Result, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "scene id %q", doc.ID)
	}
	if len(doc.Layers) != len(doc.Plan.Layers) {
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"scene has %d layers but its plan has %d", len(doc.Layers), len(doc.Plan.Layers))
	}

	res := &scene.Result{ID: id, Plan: doc.Plan, Layers: make([]scene.LayerResult, len(doc.Layers))}
	for i, e := range doc.Layers {
		l := doc.Plan.Layers[i]
		if e.Name != l.Name {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "layer %d: name %q does not match plan layer %q", i, e.Name, l.Name)
		}
		if len(e.Transforms) != len(e.Points) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"layer %s: %d transforms for %d points", e.Name, len(e.Transforms), len(e.Points))
		}
		if e.Cells != nil && len(e.Cells) != len(e.Points) {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"layer %s: %d cells for %d points", e.Name, len(e.Cells), len(e.Points))
		}

		lr := scene.LayerResult{
			Layer:      l,
			Points:     make([]r2.Vec, len(e.Points)),
			Transforms: make([]placement.Transform, len(e.Transforms)),
			Poisson:    e.Poisson,
			Spacing:    e.Spacing,
		}
		for k, p := range e.Points {
			lr.Points[k] = r2.Vec{X: p[0], Y: p[1]}
		}
		for k, t := range e.Transforms {
			lr.Transforms[k] = placement.Transform{
				Translation: r3.Vec{X: t.Translation[0], Y: t.Translation[1], Z: t.Translation[2]},
				Scale:       r3.Vec{X: t.Scale[0], Y: t.Scale[1], Z: t.Scale[2]},
			}
		}
		if e.Cells != nil {
			lr.Samples = make([]sampling.SamplePoint, len(e.Cells))
			for k, c := range e.Cells {
				lr.Samples[k] = sampling.SamplePoint{Jittered: lr.Points[k], Cell: r2.Vec{X: c[0], Y: c[1]}}
			}
		}
		res.Layers[i] = lr
	}
	return res, nil
}

// UnmarshalScene decodes a scene result from data.
func UnmarshalScene(data []byte) (*scene.Result, error) {
	return ReadScene(bytes.NewReader(data))
}

// ImportScene reads a scene result from a JSON file at path.
func ImportScene(path string) (*scene.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}
