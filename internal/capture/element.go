package capture

import (
	"context"
	"errors"
)

// Locator is a CSS-selector-like address for elements in a document.
type Locator string

// Kind classifies an element for semantic value extraction.
type Kind int

const (
	// KindInput marks input-like elements; their semantic value is the
	// current input value.
	KindInput Kind = iota

	// KindInteractive marks buttons, links, and other controls; their
	// semantic value is text plus enabled/selected state and identity
	// metadata.
	KindInteractive

	// KindOther marks everything else; text plus geometry and metadata.
	KindOther
)

// Rect is an element's position and size in document coordinates.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Element is one resolved node of a document.
type Element interface {
	Kind() Kind
	Text() string
	Value() string
	Enabled() bool
	Selected() bool

	// Attr returns the named attribute, or "" when absent.
	Attr(name string) string

	Bounds() Rect
}

// ErrNotFound is returned by Document implementations when a locator
// resolves to nothing. The capturer treats it as "keep polling".
var ErrNotFound = errors.New("element not found")

// Document resolves locators against a live document. Implementations
// bridge to the concrete UI technology under test.
type Document interface {
	// Find resolves a locator to a single element, or ErrNotFound.
	Find(ctx context.Context, loc Locator) (Element, error)

	// FindAll resolves a locator to all matching elements in document
	// order. An empty slice is a valid result.
	FindAll(ctx context.Context, loc Locator) ([]Element, error)
}
