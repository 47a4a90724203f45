package cache

import "fmt"

// Keyer derives cache keys for every kind of cached entry.
type Keyer interface {
	// HTTPKey scopes a raw HTTP response by client namespace.
	HTTPKey(namespace, key string) string

	// ArtifactKey identifies a rendered card for a layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts are the render options that change the produced bytes.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Width   int    `json:"width"`
	Backend string `json:"backend,omitempty"`
	Family  string `json:"family,omitempty"`
}

// DefaultKeyer is the standard [Keyer].
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// HTTPKey returns "http:<namespace>:<key>".
func (DefaultKeyer) HTTPKey(namespace, key string) string {
	return fmt.Sprintf("http:%s:%s", namespace, key)
}

// ArtifactKey hashes the options so that any change produces a new key.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
