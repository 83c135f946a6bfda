package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"

	"github.com/fwojciec/pageloader"
)

// Run executes the download command and prints the saved page path.
func (c *DownloadCmd) Run(deps *Dependencies) error {
	var progress pageloader.DownloadProgressFunc
	if !deps.Quiet {
		progress = progressPrinter(deps.Stderr)
	}

	path, err := deps.Downloader.Download(deps.Ctx, c.URL, progress)
	if progress != nil {
		// Clear progress line
		fmt.Fprintf(deps.Stderr, "\r%80s\r", "")
	}
	if err != nil {
		reportError(deps.Stderr, err)
		return err
	}

	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// progressPrinter renders download progress as a single rewritten line.
func progressPrinter(w io.Writer) pageloader.DownloadProgressFunc {
	return func(p pageloader.DownloadProgress) {
		switch p.Type {
		case pageloader.ProgressPageFetched:
			fmt.Fprintf(w, "\rfetched %s (%d bytes)", truncateURL(p.URL, 40), p.Bytes)
		case pageloader.ProgressPageSaved:
			fmt.Fprintf(w, "\r%80s\r[0/%d] %s", "", p.Total, truncateURL(p.URL, 40))
		case pageloader.ProgressAssetSaved:
			fmt.Fprintf(w, "\r%80s\r[%d/%d] %s", "", p.Completed, p.Total, filepath.Base(p.Path))
		case pageloader.ProgressAssetFailed:
			fmt.Fprintf(w, "\r%80s\r[%d/%d] failed %s\n", "", p.Completed, p.Total, truncateURL(p.URL, 40))
		}
	}
}

// reportError prints one line describing err, labelled by its kind.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %s: %v\n", errorLabel(err), err)
}

func errorLabel(err error) string {
	if errors.Is(err, context.Canceled) {
		return "interrupted"
	}
	switch pageloader.ErrorCode(err) {
	case pageloader.ENETWORK:
		return "network failure"
	case pageloader.EHTTPSTATUS:
		return "http status failure"
	case pageloader.ETIMEOUT:
		return "timeout"
	case pageloader.EFILESYSTEM:
		return "file system failure"
	case pageloader.EINVALID:
		return "invalid input"
	default:
		return "unexpected error"
	}
}

// truncateURL shortens a URL for display by showing only the path.
// Asset URLs usually share the page's host, so the path is the useful part.
func truncateURL(rawURL string, maxLen int) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		if len(rawURL) <= maxLen {
			return rawURL
		}
		return rawURL[:maxLen-3] + "..."
	}

	path := parsed.Path
	if path == "" {
		path = "/"
	}

	if len(path) <= maxLen {
		return path
	}

	// Truncate from the left to show the unique suffix
	return "..." + path[len(path)-maxLen+3:]
}
