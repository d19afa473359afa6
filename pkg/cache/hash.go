package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Keyer derives cache keys.
type Keyer interface {
	// SceneKey keys a generated scene by its plan. The plan must encode to
	// JSON deterministically; struct values do.
	SceneKey(plan any) string
	// PlotKey keys a rendered plot by the key of the scene it shows.
	PlotKey(sceneKey string, opts PlotKeyOpts) string
}

// PlotKeyOpts are the plot settings that change the rendered bytes.
type PlotKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Title      string  `json:"title,omitempty"`
	ShowCells  bool    `json:"show_cells,omitempty"`
	Labels     bool    `json:"labels,omitempty"`      // graph formats only
	CrossLayer bool    `json:"cross_layer,omitempty"` // graph formats only
}

// DefaultKeyer hashes inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SceneKey returns "scene:<sha256>".
func (DefaultKeyer) SceneKey(plan any) string {
	return hashKey("scene", plan)
}

// PlotKey returns "plot:<sha256>".
func (DefaultKeyer) PlotKey(sceneKey string, opts PlotKeyOpts) string {
	return hashKey("plot", sceneKey, opts)
}

var _ Keyer = DefaultKeyer{}
