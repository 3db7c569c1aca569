package cache

// ScopedKeyer wraps a Keyer with a prefix so separate projects can share
// one cache backend without key collisions.
//
// Example usage:
//
//	projectKeyer := NewScopedKeyer(NewDefaultKeyer(), "project:demo:")
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

// AnalysisKey generates a prefixed key for analysis results.
func (k *ScopedKeyer) AnalysisKey(scriptHash string, opts AnalysisKeyOpts) string {
	return k.prefix + k.inner.AnalysisKey(scriptHash, opts)
}

// LayoutKey generates a prefixed key for layout positions.
func (k *ScopedKeyer) LayoutKey(resultHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(resultHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
