package main_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"testing"

	"github.com/fwojciec/pageloader"
	main "github.com/fwojciec/pageloader/cmd/pageloader"
	"github.com/fwojciec/pageloader/download"
	"github.com/fwojciec/pageloader/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newDeps returns dependencies whose downloader saves a page with one asset
// unless fetchErr is set.
func newDeps(fetchErr error, quiet bool) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) ([]byte, error) {
			if fetchErr != nil {
				return nil, fetchErr
			}
			return []byte("<html></html>"), nil
		},
	}
	doc := &mock.Document{
		RewriteFn: func(_ *url.URL, assetsDir string, _ []pageloader.ElementKind) (*pageloader.Manifest, error) {
			m := pageloader.NewManifest()
			m.Set(assetsDir+"/example-com-a.png", "https://example.com/a.png")
			return m, nil
		},
		RenderFn: func() ([]byte, error) { return []byte("<html></html>"), nil },
	}
	store := &mock.Store{
		WritePageFn: func(_ context.Context, name string, _ []byte) (string, error) {
			return "/out/" + name, nil
		},
		CreateAssetsDirFn: func(_ context.Context, _ string) error { return nil },
		WriteAssetFn: func(_ context.Context, name string, _ []byte) (string, error) {
			return "/out/" + name, nil
		},
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Downloader: &download.Downloader{
			AssetFetcher: fetcher,
			Parser: &mock.Parser{
				ParseFn: func(_ io.Reader) (pageloader.Document, error) { return doc, nil },
			},
			Store: store,
		},
		Quiet: quiet,
	}
	return deps, stdout, stderr
}

func TestDownloadCmd_PrintsPagePath(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := newDeps(nil, false)
	cmd := &main.DownloadCmd{URL: "https://example.com/courses"}

	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "/out/example-com-courses.html\n", stdout.String())
	assert.Contains(t, stderr.String(), "[1/1] example-com-a.png")
}

func TestDownloadCmd_ReportsFailedAsset(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := newDeps(nil, false)
	deps.Downloader.AssetFetcher = &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) ([]byte, error) {
			if url == "https://example.com/a.png" {
				return nil, pageloader.Errorf(pageloader.ENETWORK, "GET %s failed", url)
			}
			return []byte("<html></html>"), nil
		},
	}
	cmd := &main.DownloadCmd{URL: "https://example.com/courses"}

	err := cmd.Run(deps)

	require.Error(t, err)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "[0/1] failed /a.png\n")
	assert.Contains(t, stderr.String(), "error: network failure: GET https://example.com/a.png failed\n")
}

func TestDownloadCmd_QuietSuppressesProgress(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := newDeps(nil, true)
	cmd := &main.DownloadCmd{URL: "https://example.com/courses"}

	err := cmd.Run(deps)

	require.NoError(t, err)
	assert.Equal(t, "/out/example-com-courses.html\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestDownloadCmd_LabelsErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		label string
	}{
		{"network", pageloader.Errorf(pageloader.ENETWORK, "GET x failed"), "error: network failure: GET x failed"},
		{"http status", &pageloader.Error{Code: pageloader.EHTTPSTATUS, Message: "HTTP 404 for x", StatusCode: 404}, "error: http status failure: HTTP 404 for x"},
		{"timeout", pageloader.Errorf(pageloader.ETIMEOUT, "GET x timed out"), "error: timeout: GET x timed out"},
		{"file system", pageloader.Errorf(pageloader.EFILESYSTEM, "writing x"), "error: file system failure: writing x"},
		{"unexpected", errors.New("kaboom"), "error: unexpected error: kaboom"},
		{"interrupted", context.Canceled, "error: interrupted: context canceled"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, stdout, stderr := newDeps(tt.err, true)
			cmd := &main.DownloadCmd{URL: "https://example.com/courses"}

			err := cmd.Run(deps)

			require.Error(t, err)
			assert.Empty(t, stdout.String())
			assert.Contains(t, stderr.String(), tt.label+"\n")
		})
	}
}
