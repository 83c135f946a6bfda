package mock

import (
	"io"
	"net/url"

	"github.com/fwojciec/pageloader"
)

var _ pageloader.Parser = (*Parser)(nil)

// Parser is a mock implementation of pageloader.Parser.
type Parser struct {
	ParseFn func(r io.Reader) (pageloader.Document, error)
}

func (p *Parser) Parse(r io.Reader) (pageloader.Document, error) {
	return p.ParseFn(r)
}

var _ pageloader.Document = (*Document)(nil)

// Document is a mock implementation of pageloader.Document.
type Document struct {
	RewriteFn func(page *url.URL, assetsDir string, kinds []pageloader.ElementKind) (*pageloader.Manifest, error)
	RenderFn  func() ([]byte, error)
}

func (d *Document) Rewrite(page *url.URL, assetsDir string, kinds []pageloader.ElementKind) (*pageloader.Manifest, error) {
	return d.RewriteFn(page, assetsDir, kinds)
}

func (d *Document) Render() ([]byte, error) {
	return d.RenderFn()
}
