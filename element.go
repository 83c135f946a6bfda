package pageloader

// ElementKind identifies a markup element that carries a single
// reference attribute.
type ElementKind string

// Recognized element kinds.
const (
	ElementImage      ElementKind = "image"
	ElementStylesheet ElementKind = "stylesheet"
	ElementScript     ElementKind = "script"
	ElementAnchor     ElementKind = "anchor"
)

type elementRef struct {
	tag  string
	attr string
}

var elementRefs = map[ElementKind]elementRef{
	ElementImage:      {tag: "img", attr: "src"},
	ElementStylesheet: {tag: "link", attr: "href"},
	ElementScript:     {tag: "script", attr: "src"},
	ElementAnchor:     {tag: "a", attr: "href"},
}

// Tag returns the element's tag name, or "" for an unknown kind.
func (k ElementKind) Tag() string {
	return elementRefs[k].tag
}

// Attr returns the name of the attribute holding the reference,
// or "" for an unknown kind.
func (k ElementKind) Attr() string {
	return elementRefs[k].attr
}

// Valid reports whether k is a recognized element kind.
func (k ElementKind) Valid() bool {
	_, ok := elementRefs[k]
	return ok
}

// ElementKindForTag returns the kind whose tag name is tag.
func ElementKindForTag(tag string) (ElementKind, bool) {
	for k, ref := range elementRefs {
		if ref.tag == tag {
			return k, true
		}
	}
	return "", false
}

// DefaultElementKinds returns the kinds localized when none are configured:
// images, stylesheet links and scripts.
func DefaultElementKinds() []ElementKind {
	return []ElementKind{ElementImage, ElementStylesheet, ElementScript}
}
