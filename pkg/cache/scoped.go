package cache

// ScopedKeyer wraps a Keyer with a prefix so separate contexts (for
// example different asset packs converted with the same cache directory)
// get isolated key namespaces.
//
// Example usage:
//
//	packKeyer := NewScopedKeyer(NewDefaultKeyer(), "pack:dink:")
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

// ConvertKey generates a prefixed key for conversion result caching.
func (k *ScopedKeyer) ConvertKey(inputHash string, opts ConvertKeyOpts) string {
	return k.prefix + k.inner.ConvertKey(inputHash, opts)
}
