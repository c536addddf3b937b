package cache

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	LayoutKey(htmlHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	Theme   string `json:"theme,omitempty"`
	Version string `json:"version,omitempty"` // layout engine version
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Theme    string  `json:"theme,omitempty"`
	Title    string  `json:"title,omitempty"`
	PNGScale float64 `json:"png_scale,omitempty"`
}

// DefaultKeyer builds "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey generates a key for layout caching.
func (DefaultKeyer) LayoutKey(htmlHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", htmlHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
