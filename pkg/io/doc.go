// Package io provides JSON import and export for generated scenes.
//
// # Overview
//
// A scene result is written as a single JSON document that a renderer can
// read without knowing anything about the samplers that produced it. The
// same document is what the pipeline caches and what the HTTP API returns,
// so a result can be exported, cached and re-imported identically.
//
// # JSON Format
//
//	{
//	  "id": "1b4e28ba-2fa1-11d2-883f-0016d3cca427",
//	  "plan": { "name": "demo", "seed": 42, "area": {"x": 500, "z": 500}, "layers": [...] },
//	  "layers": [
//	    {
//	      "name": "trees",
//	      "asset": "assets/tree08.obj",
//	      "sampler": "poisson",
//	      "requested": 40,
//	      "points": [[12.5, 301.2], ...],
//	      "transforms": [{"translation": [12.5, 0, 301.2], "scale": [1, 1, 1]}, ...],
//	      "poisson": {"requested": 40, "accepted": 40, "attempts": 57, "rejected": 17, "exhausted": false},
//	      "spacing": {"min": 25.3, "mean": 41.0, "stddev": 9.7}
//	    }
//	  ]
//	}
//
// Points are [x, z] pairs on the ground plane. Grid layers also carry
// "cells", the unjittered cell centres in the same order as "points".
// Vectors are fixed-size arrays so the output is compact and stable.
//
// # Import
//
// Use [ImportScene] to read a scene from a file path, or [ReadScene] to
// read from any io.Reader. Both check that the layers agree with the
// embedded plan and that every layer has one transform per point.
//
// # Export
//
// Use [ExportScene] to write a scene to a file, or [WriteScene] to write to
// any io.Writer. [MarshalScene] and [UnmarshalScene] work on byte slices for
// caching.
package io
