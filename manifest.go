package pageloader

// ManifestEntry pairs a local asset path with the remote URL to fetch.
type ManifestEntry struct {
	// LocalName is the path relative to the output directory,
	// always prefixed with the assets directory name.
	LocalName string

	// RemoteURL is the absolute URL of the asset.
	RemoteURL string
}

// Manifest maps local asset names to remote URLs in first-insertion order.
// The zero value is an empty manifest ready to use.
//
// Distinct remote URLs may normalize to the same local name. Set then
// silently replaces the URL (last write wins) while the entry keeps its
// original position.
type Manifest struct {
	index   map[string]int
	entries []ManifestEntry
}

// NewManifest returns an empty manifest.
func NewManifest() *Manifest {
	return &Manifest{}
}

// Set records remoteURL under localName.
func (m *Manifest) Set(localName, remoteURL string) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[localName]; ok {
		m.entries[i].RemoteURL = remoteURL
		return
	}
	m.index[localName] = len(m.entries)
	m.entries = append(m.entries, ManifestEntry{LocalName: localName, RemoteURL: remoteURL})
}

// Get returns the remote URL recorded under localName.
func (m *Manifest) Get(localName string) (string, bool) {
	i, ok := m.index[localName]
	if !ok {
		return "", false
	}
	return m.entries[i].RemoteURL, true
}

// Len returns the number of entries.
func (m *Manifest) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Entries returns a copy of the entries in iteration order.
func (m *Manifest) Entries() []ManifestEntry {
	if m == nil {
		return nil
	}
	return append([]ManifestEntry(nil), m.entries...)
}
