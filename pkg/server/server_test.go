package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdlog "log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/scatterfield/pkg/cache"
	sfio "github.com/matzehuels/scatterfield/pkg/io"
	"github.com/matzehuels/scatterfield/pkg/observability"
	"github.com/matzehuels/scatterfield/pkg/pipeline"
	"github.com/matzehuels/scatterfield/pkg/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(fc, nil, logger), logger, Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readAll(t *testing.T, resp *http.Response) []byte {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHealthAndVersion(t *testing.T) {
	ts := newTestServer(t)
	for _, path := range []string{"/healthz", "/v1/version"} {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", path, resp.StatusCode)
		}
	}
}

func TestDefaultPlan(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/v1/scene/default")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var p scene.Plan
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatal(err)
	}
	if p.Name != "demo" || len(p.Layers) != 6 {
		t.Errorf("default plan = %s with %d layers", p.Name, len(p.Layers))
	}
}

func TestScene(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts, "/v1/scene", `{"seed": 9}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if resp.Header.Get("X-Cache") != "miss" {
		t.Errorf("first request X-Cache = %q", resp.Header.Get("X-Cache"))
	}
	res, err := sfio.ReadScene(resp.Body)
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}
	if res.Plan.Seed != 9 || len(res.Layers) != 6 {
		t.Errorf("scene seed %d with %d layers", res.Plan.Seed, len(res.Layers))
	}

	again := post(t, ts, "/v1/scene", `{"seed": 9}`)
	if again.Header.Get("X-Cache") != "hit" {
		t.Errorf("second request X-Cache = %q", again.Header.Get("X-Cache"))
	}
	if again.Header.Get("X-Scene-Key") != resp.Header.Get("X-Scene-Key") {
		t.Error("same request should resolve to the same scene key")
	}
}

func TestGridEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/grid", `{"width": 3, "height": 1, "spacing": 10, "jitter": 0, "seed": 1}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	res, err := sfio.ReadScene(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	lr := res.Layers[0]
	if lr.Layer.Name != "grid" || len(lr.Transforms) != 3 {
		t.Fatalf("layer %s with %d transforms", lr.Layer.Name, len(lr.Transforms))
	}
	for i, want := range []float64{-10, 0, 10} {
		if got := lr.Transforms[i].Translation.X; got != want {
			t.Errorf("transform %d x = %g, want %g", i, got, want)
		}
	}
}

func TestPoissonEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/poisson", `{"name": "trees", "count": 20, "min_distance": 10, "area": {"x": 100, "z": 100}}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	res, err := sfio.ReadScene(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	lr := res.Layers[0]
	if lr.Poisson == nil || lr.Poisson.Requested != 20 {
		t.Fatalf("poisson stats = %+v", lr.Poisson)
	}
	if resp.Header.Get("X-Instances") == "" {
		t.Error("X-Instances header missing")
	}
}

func TestPlotEndpoint(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/plot", `{"format": "png", "width": 200, "height": 200}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	if data := readAll(t, resp); !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}

	svg := post(t, ts, "/v1/plot", `{}`)
	if ct := svg.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("default Content-Type = %q", ct)
	}
}

func TestPlotEndpointDOT(t *testing.T) {
	ts := newTestServer(t)
	resp := post(t, ts, "/v1/plot", `{"format": "dot", "labels": true}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, readAll(t, resp))
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := string(readAll(t, resp))
	if !strings.HasPrefix(body, "graph scene {") || !strings.Contains(body, `label="windmills#0"`) {
		t.Errorf("unexpected DOT body: %.200s", body)
	}
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		code   string
	}{
		{"malformed", "/v1/scene", `{`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"unknown field", "/v1/scene", `{"colour": "red"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad spacing", "/v1/grid", `{"width": 2, "height": 2, "spacing": -1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"negative count", "/v1/poisson", `{"count": -1, "min_distance": 1}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"wrong sampler", "/v1/grid", `{"sampler": "poisson"}`, http.StatusBadRequest, "INVALID_SAMPLER"},
		{"bad format", "/v1/plot", `{"format": "gif"}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"empty plan", "/v1/scene", `{"plan": {"name": "x", "layers": []}}`, http.StatusBadRequest, "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts, tt.path, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			var body errorBody
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatal(err)
			}
			if string(body.Code) != tt.code {
				t.Errorf("code = %s, want %s (%s)", body.Code, tt.code, body.Message)
			}
			if body.Message == "" {
				t.Error("message should not be empty")
			}
		})
	}
}

type recordingHTTPHooks struct {
	mu       sync.Mutex
	statuses map[string]int
}

func (h *recordingHTTPHooks) OnRequest(context.Context, string, string) {}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.statuses[path] = status
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHTTPHooks{statuses: map[string]int{}}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	post(t, ts, "/v1/scene", `{`)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.statuses["/healthz"] != http.StatusOK || h.statuses["/v1/scene"] != http.StatusBadRequest {
		t.Errorf("statuses = %v", h.statuses)
	}
}

// panicCache fails every lookup by panicking.
type panicCache struct{ cache.NullCache }

func (panicCache) Get(context.Context, string) ([]byte, bool, error) { panic("cache exploded") }

func TestHTTPHooksSeePanics(t *testing.T) {
	h := &recordingHTTPHooks{statuses: map[string]int{}}
	observability.SetHTTPHooks(h)
	t.Cleanup(observability.Reset)

	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(panicCache{}, nil, logger), logger, Options{})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	resp := post(t, ts, "/v1/scene", `{}`)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", resp.StatusCode)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if got := h.statuses["/v1/scene"]; got != http.StatusInternalServerError {
		t.Errorf("hook saw status %d for a panicking request, want 500", got)
	}
}

func TestDeadlineWritesSingleResponse(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(fc, nil, logger), logger, Options{Timeout: time.Nanosecond})

	var serverLog syncBuffer
	ts := httptest.NewUnstartedServer(srv.Router())
	ts.Config.ErrorLog = stdlog.New(&serverLog, "", 0)
	ts.Start()
	t.Cleanup(ts.Close)

	resp := post(t, ts, "/v1/scene", `{}`)
	if resp.StatusCode != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want 504", resp.StatusCode)
	}
	var body errorBody
	if err := json.Unmarshal(readAll(t, resp), &body); err != nil {
		t.Fatalf("504 body is not JSON: %v", err)
	}
	if strings.Contains(serverLog.String(), "superfluous") {
		t.Errorf("response header written twice:\n%s", serverLog.String())
	}
}

// headerCounter counts WriteHeader calls that reach the client writer.
type headerCounter struct {
	*httptest.ResponseRecorder
	calls int
}

func (h *headerCounter) WriteHeader(code int) {
	h.calls++
	h.ResponseRecorder.WriteHeader(code)
}

func TestDeadlineLeavesResponseToHandler(t *testing.T) {
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), logger, Options{Timeout: time.Millisecond})
	h := srv.deadline(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
		srv.writeError(w, r.Context().Err())
	}))

	rec := &headerCounter{ResponseRecorder: httptest.NewRecorder()}
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/scene", nil))
	if rec.Code != http.StatusGatewayTimeout {
		t.Errorf("status = %d, want 504", rec.Code)
	}
	if rec.calls != 1 {
		t.Errorf("WriteHeader called %d times, want 1", rec.calls)
	}
}

// syncBuffer is a bytes.Buffer safe for the server's error logger.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	srv := New(pipeline.NewRunner(nil, nil, logger), nil, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
