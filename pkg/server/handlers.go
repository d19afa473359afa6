package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/matzehuels/scatterfield/pkg/buildinfo"
	"github.com/matzehuels/scatterfield/pkg/errors"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

// sceneRequest is the body of POST /v1/scene. Without a plan the demo plan
// is generated.
type sceneRequest struct {
	Plan    *scene.Plan `json:"plan,omitempty"`
	Seed    uint64      `json:"seed,omitempty"`
	Refresh bool        `json:"refresh,omitempty"`
}

// layerRequest is the body of POST /v1/grid and POST /v1/poisson: one
// layer plus the seed and area it is sampled with.
type layerRequest struct {
	scene.Layer
	Seed    uint64        `json:"seed,omitempty"`
	Area    *scene.Extent `json:"area,omitempty"`
	Refresh bool          `json:"refresh,omitempty"`
}

// plotRequest is the body of POST /v1/plot.
type plotRequest struct {
	sceneRequest
	Format     string  `json:"format,omitempty"`
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Title      string  `json:"title,omitempty"`
	ShowCells  bool    `json:"show_cells,omitempty"`
	Labels     bool    `json:"labels,omitempty"`
	CrossLayer bool    `json:"cross_layer,omitempty"`
}

var contentTypes = map[string]string{
	pipeline.FormatJSON:  "application/json",
	pipeline.FormatSVG:   "image/svg+xml",
	pipeline.FormatPNG:   "image/png",
	pipeline.FormatPDF:   "application/pdf",
	pipeline.FormatDOT:   "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatGraph: "image/svg+xml",
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid request body: %v", err))
		return false
	}
	return true
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) version(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) defaultPlan(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, scene.DefaultPlan())
}

func (s *Server) scene(w http.ResponseWriter, r *http.Request) {
	var req sceneRequest
	if !s.decode(w, r, &req) {
		return
	}
	s.execute(w, r, pipeline.Options{
		Plan:    req.Plan,
		Seed:    req.Seed,
		Refresh: req.Refresh,
		Formats: []string{pipeline.FormatJSON},
	}, pipeline.FormatJSON)
}

func (s *Server) grid(w http.ResponseWriter, r *http.Request) {
	s.layer(w, r, scene.SamplerGrid)
}

func (s *Server) poisson(w http.ResponseWriter, r *http.Request) {
	s.layer(w, r, scene.SamplerPoisson)
}

func (s *Server) layer(w http.ResponseWriter, r *http.Request, sampler string) {
	var req layerRequest
	if !s.decode(w, r, &req) {
		return
	}
	l := req.Layer
	if l.Sampler != "" && l.Sampler != sampler {
		s.writeError(w, errors.New(errors.ErrCodeInvalidSampler, "sampler %q not allowed on the %s endpoint", l.Sampler, sampler))
		return
	}
	l.Sampler = sampler
	if l.Name == "" {
		l.Name = sampler
	}
	area := scene.DefaultArea
	if req.Area != nil {
		area = *req.Area
	}
	plan := scene.SingleLayer(req.Seed, area, l)
	s.execute(w, r, pipeline.Options{
		Plan:    &plan,
		Refresh: req.Refresh,
		Formats: []string{pipeline.FormatJSON},
	}, pipeline.FormatJSON)
}

func (s *Server) plot(w http.ResponseWriter, r *http.Request) {
	var req plotRequest
	if !s.decode(w, r, &req) {
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	s.execute(w, r, pipeline.Options{
		Plan:       req.Plan,
		Seed:       req.Seed,
		Refresh:    req.Refresh,
		Formats:    []string{format},
		Width:      req.Width,
		Height:     req.Height,
		Title:      req.Title,
		ShowCells:  req.ShowCells,
		Labels:     req.Labels,
		CrossLayer: req.CrossLayer,
	}, format)
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request, opts pipeline.Options, format string) {
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheState := "miss"
	if res.CacheInfo.SceneHit && res.CacheInfo.RenderHit {
		cacheState = "hit"
	}
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Cache", cacheState)
	h.Set("X-Scene-Key", res.SceneKey)
	h.Set("X-Instances", fmt.Sprint(res.Stats.Instances))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}
