package mock

import (
	"context"

	"github.com/fwojciec/pageloader"
)

var _ pageloader.Store = (*Store)(nil)

// Store is a mock implementation of pageloader.Store.
type Store struct {
	WritePageFn       func(ctx context.Context, name string, content []byte) (string, error)
	CreateAssetsDirFn func(ctx context.Context, name string) error
	WriteAssetFn      func(ctx context.Context, name string, content []byte) (string, error)
}

func (s *Store) WritePage(ctx context.Context, name string, content []byte) (string, error) {
	return s.WritePageFn(ctx, name, content)
}

func (s *Store) CreateAssetsDir(ctx context.Context, name string) error {
	return s.CreateAssetsDirFn(ctx, name)
}

func (s *Store) WriteAsset(ctx context.Context, name string, content []byte) (string, error) {
	return s.WriteAssetFn(ctx, name, content)
}
