package cache

// ScopedKeyer wraps a Keyer with a prefix so that several deployments can
// share one backend (typically Redis) without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "gallery-a:")
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

// PackKey generates a prefixed key for packing results.
func (k *ScopedKeyer) PackKey(photosHash string, opts PackKeyOpts) string {
	return k.prefix + k.inner.PackKey(photosHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(resultHash, format string) string {
	return k.prefix + k.inner.ArtifactKey(resultHash, format)
}
