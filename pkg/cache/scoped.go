package cache

// ScopedKeyer wraps a Keyer with a prefix, so several projects or service
// tenants can share one backend without key collisions.
//
//	keys := NewScopedKeyer(NewDefaultKeyer(), "europe:")
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

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}

// SummaryKey generates a prefixed summary key.
func (k *ScopedKeyer) SummaryKey(graphHash string) string {
	return k.prefix + k.inner.SummaryKey(graphHash)
}
