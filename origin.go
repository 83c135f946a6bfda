package pageloader

import (
	"net/url"
	"strings"
)

// nonFetchableSchemes lists reference schemes that never point at a
// downloadable resource.
var nonFetchableSchemes = []string{"data:", "javascript:", "mailto:", "tel:"}

// IsLocal reports whether ref, found on page, points at a same-origin
// resource that should be downloaded.
//
// Empty and same-document ("#section") references are never local.
// A reference is local when it resolves to the page's authority, or when
// it carries neither a scheme nor an authority (path-relative and
// root-relative references).
func IsLocal(page *url.URL, ref string) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") || isNonFetchable(ref) {
		return false
	}

	r, err := url.Parse(ref)
	if err != nil {
		return false
	}

	if page.ResolveReference(r).Host == page.Host {
		return true
	}
	return r.Scheme == "" && r.Host == ""
}

// Resolve resolves ref against page and strips the fragment.
func Resolve(page *url.URL, ref string) (*url.URL, error) {
	r, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return nil, WrapError(EINVALID, err, "invalid reference %q", ref)
	}
	resolved := page.ResolveReference(r)
	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved, nil
}

func isNonFetchable(ref string) bool {
	ref = strings.ToLower(ref)
	for _, scheme := range nonFetchableSchemes {
		if strings.HasPrefix(ref, scheme) {
			return true
		}
	}
	return false
}
