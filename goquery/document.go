// Package goquery implements pageloader.Parser and pageloader.Document on
// top of goquery and golang.org/x/net/html.
package goquery

import (
	"bytes"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pageloader"
	"github.com/yosssi/gohtml"
	"golang.org/x/net/html"
)

// Ensure Parser implements pageloader.Parser at compile time.
var _ pageloader.Parser = (*Parser)(nil)

// Parser parses HTML into goquery documents.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads HTML from r and returns a mutable document.
func (p *Parser) Parse(r io.Reader) (pageloader.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, pageloader.WrapError(pageloader.EINTERNAL, err, "failed to parse HTML")
	}
	return &Document{doc: doc}, nil
}

// Ensure Document implements pageloader.Document at compile time.
var _ pageloader.Document = (*Document)(nil)

// Document wraps a parsed goquery document.
type Document struct {
	doc *goquery.Document
}

// NewDocument wraps an already parsed goquery document.
func NewDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// Render serializes the document tree and pretty-prints it.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return nil, pageloader.WrapError(pageloader.EINTERNAL, err, "failed to render HTML")
		}
	}
	return gohtml.FormatBytes(buf.Bytes()), nil
}
