package pageloader

import "context"

// Store persists a downloaded page and its assets under an output directory.
// Failures are returned as EFILESYSTEM errors.
type Store interface {
	// WritePage writes the page file and returns its absolute path.
	WritePage(ctx context.Context, name string, content []byte) (string, error)

	// CreateAssetsDir creates the assets directory.
	// An existing directory is not an error.
	CreateAssetsDir(ctx context.Context, name string) error

	// WriteAsset writes an asset at the manifest-relative name and returns
	// its absolute path. Content is written byte for byte.
	WriteAsset(ctx context.Context, name string, content []byte) (string, error)
}
