package slog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/pageloader"
)

// Ensure LoggingStore implements pageloader.Store.
var _ pageloader.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with debug logging. Every write is logged
// with an xxhash checksum of its content so repeated runs can be compared.
type LoggingStore struct {
	next   pageloader.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next pageloader.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// WritePage delegates to the wrapped store and logs the write.
func (s *LoggingStore) WritePage(ctx context.Context, name string, content []byte) (path string, err error) {
	defer func(begin time.Time) {
		s.logWrite("write page", name, path, content, begin, err)
	}(time.Now())
	return s.next.WritePage(ctx, name, content)
}

// CreateAssetsDir delegates to the wrapped store and logs the operation.
func (s *LoggingStore) CreateAssetsDir(ctx context.Context, name string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("mkdir",
			"name", name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateAssetsDir(ctx, name)
}

// WriteAsset delegates to the wrapped store and logs the write.
func (s *LoggingStore) WriteAsset(ctx context.Context, name string, content []byte) (path string, err error) {
	defer func(begin time.Time) {
		s.logWrite("write asset", name, path, content, begin, err)
	}(time.Now())
	return s.next.WriteAsset(ctx, name, content)
}

func (s *LoggingStore) logWrite(msg, name, path string, content []byte, begin time.Time, err error) {
	s.logger.Info(msg,
		"name", name,
		"path", path,
		"bytes", len(content),
		"checksum", Checksum(content),
		"duration", time.Since(begin),
		"err", err,
	)
}

// Checksum returns the xxhash64 of content as 16 hex digits.
func Checksum(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}
