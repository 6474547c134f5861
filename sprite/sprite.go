// Package sprite implements the Compass-style asset-helper collaborator
// declared but not fully specified by spec.md §1 ("function bindings for
// image-url/sprite-map/gradient helpers are declared by name and arity but
// their internals are not specified here"): a pluggable interface the
// built-in function library calls through, with a no-op default so a
// compilation that never configures an asset root still produces
// deterministic output instead of failing.
package sprite

import "fmt"

// Helper resolves asset-pipeline built-ins (image-url, sprite-map,
// font-url) against a concrete static asset root; gradients are not
// handled here. Implementations are expected to be supplied by the embedding
// application; Default returns a passthrough stub.
type Helper interface {
	// ImageURL rewrites a bare asset-relative path into the served URL for
	// an `image-url(...)`/`font-url(...)` call.
	ImageURL(path string) string
	// SpriteMap resolves a sprite-map directory argument to a synthetic
	// sprite sheet reference usable as a background-position/image pair.
	SpriteMap(dir string) (string, error)
}

// noop is the zero-configuration Helper: image-url echoes `url(path)`
// unchanged and sprite-map always errors, since no asset root is known.
type noop struct{ staticRoot string }

// Default returns a Helper with no configured asset root.
func Default() Helper { return noop{} }

// New returns a Helper serving assets relative to staticRoot.
func New(staticRoot string) Helper { return noop{staticRoot: staticRoot} }

func (n noop) ImageURL(path string) string {
	if n.staticRoot == "" {
		return fmt.Sprintf("url(%q)", path)
	}
	return fmt.Sprintf("url(%q)", n.staticRoot+"/"+path)
}

func (n noop) SpriteMap(dir string) (string, error) {
	return "", fmt.Errorf("sprite map %q: no asset root configured", dir)
}
