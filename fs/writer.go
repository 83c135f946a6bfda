// Package fs stores downloaded pages and assets on the local file system.
package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/pageloader"
)

// Ensure Store implements pageloader.Store at compile time.
var _ pageloader.Store = (*Store)(nil)

// Store writes pages and assets below a base directory.
// The base directory itself is not created.
type Store struct {
	baseDir string
}

// NewStore creates a new Store that writes to the given base directory.
func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// WritePage writes the page file, replacing any existing file.
func (s *Store) WritePage(ctx context.Context, name string, content []byte) (string, error) {
	return s.write(name, content)
}

// CreateAssetsDir creates the assets directory. An existing directory is
// left as is.
func (s *Store) CreateAssetsDir(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}

	if err := os.Mkdir(path, 0755); err != nil {
		if errors.Is(err, os.ErrExist) {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				return nil
			}
		}
		return pageloader.WrapError(pageloader.EFILESYSTEM, err, "failed to create directory %s", path)
	}
	return nil
}

// WriteAsset writes the asset bytes unchanged, replacing any existing file.
func (s *Store) WriteAsset(ctx context.Context, name string, content []byte) (string, error) {
	return s.write(name, content)
}

func (s *Store) write(name string, content []byte) (_ string, err error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", pageloader.WrapError(pageloader.EFILESYSTEM, err, "failed to open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = pageloader.WrapError(pageloader.EFILESYSTEM, cerr, "failed to close %s", path)
		}
	}()

	if _, err := f.Write(content); err != nil {
		return "", pageloader.WrapError(pageloader.EFILESYSTEM, err, "failed to write %s", path)
	}

	return path, nil
}

// path returns the absolute path of a slash-separated name below baseDir.
func (s *Store) path(name string) (string, error) {
	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", pageloader.Errorf(pageloader.EINVALID, "name %q escapes the output directory", name)
	}

	path, err := filepath.Abs(filepath.Join(s.baseDir, rel))
	if err != nil {
		return "", pageloader.WrapError(pageloader.EFILESYSTEM, err, "failed to resolve %s", name)
	}
	return path, nil
}
