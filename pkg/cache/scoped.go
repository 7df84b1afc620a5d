package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation, e.g. to
// keep several deployments apart on one Redis instance.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// ElementsKey generates a prefixed key for element list caching.
func (k *ScopedKeyer) ElementsKey(graphHash string, opts ElementsKeyOpts) string {
	return k.prefix + k.inner.ElementsKey(graphHash, opts)
}

// GraphKey generates a prefixed key for graph caching.
func (k *ScopedKeyer) GraphKey(elementsHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(elementsHash, opts)
}
