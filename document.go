package pageloader

import (
	"io"
	"net/url"
)

// Document is a parsed, mutable markup tree.
// A Document is owned by a single caller and is not safe for concurrent use.
type Document interface {
	// Rewrite scans the document in order for elements of the given kinds,
	// points every local reference at assetsDir/<asset name> in place and
	// returns the assets still to be downloaded.
	Rewrite(page *url.URL, assetsDir string, kinds []ElementKind) (*Manifest, error)

	// Render serializes the (possibly rewritten) document as pretty-printed HTML.
	Render() ([]byte, error)
}

// Parser parses markup into a Document.
type Parser interface {
	Parse(r io.Reader) (Document, error)
}
