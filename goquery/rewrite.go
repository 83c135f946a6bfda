package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/pageloader"
)

// Rewrite points every local reference of the given element kinds at its
// local copy under assetsDir and returns the assets to download.
//
// Elements are visited in document order. External, empty and
// non-fetchable references are left untouched. The document is modified
// in place.
func (d *Document) Rewrite(page *url.URL, assetsDir string, kinds []pageloader.ElementKind) (*pageloader.Manifest, error) {
	if len(kinds) == 0 {
		kinds = pageloader.DefaultElementKinds()
	}

	selector, err := referenceSelector(kinds)
	if err != nil {
		return nil, err
	}

	manifest := pageloader.NewManifest()

	var rewriteErr error
	d.doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		kind, ok := pageloader.ElementKindForTag(goquery.NodeName(sel))
		if !ok {
			return true
		}
		attr := kind.Attr()

		ref, exists := sel.Attr(attr)
		if !exists || !pageloader.IsLocal(page, ref) {
			return true
		}

		resolved, err := pageloader.Resolve(page, ref)
		if err != nil {
			return true
		}
		remoteURL := resolved.String()

		localName, err := pageloader.AssetPath(assetsDir, remoteURL)
		if err != nil {
			rewriteErr = err
			return false
		}

		sel.SetAttr(attr, localName)
		manifest.Set(localName, remoteURL)
		return true
	})
	if rewriteErr != nil {
		return nil, rewriteErr
	}

	return manifest, nil
}

// referenceSelector builds one selector group so that matches come back
// in document order regardless of kind.
func referenceSelector(kinds []pageloader.ElementKind) (string, error) {
	parts := make([]string, 0, len(kinds))
	seen := make(map[pageloader.ElementKind]bool, len(kinds))
	for _, k := range kinds {
		if !k.Valid() {
			return "", pageloader.Errorf(pageloader.EINVALID, "unknown element kind %q", string(k))
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		parts = append(parts, k.Tag()+"["+k.Attr()+"]")
	}
	return strings.Join(parts, ", "), nil
}
