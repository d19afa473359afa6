package cache

// ScopedKeyer wraps a Keyer with a namespace prefix so that several
// deployments can share one Redis instance.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "scatterfield:v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SceneKey generates a prefixed scene key.
func (k *ScopedKeyer) SceneKey(plan any) string {
	return k.prefix + k.inner.SceneKey(plan)
}

// PlotKey generates a prefixed plot key. sceneKey is passed through
// unchanged, so it may already carry the prefix.
func (k *ScopedKeyer) PlotKey(sceneKey string, opts PlotKeyOpts) string {
	return k.prefix + k.inner.PlotKey(sceneKey, opts)
}
