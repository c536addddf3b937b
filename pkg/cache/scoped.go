package cache

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis or Mongo backend without seeing each other's entries.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer scopes inner under prefix, e.g. "staging:". A nil inner
// means the DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) LayoutKey(htmlHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(htmlHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
