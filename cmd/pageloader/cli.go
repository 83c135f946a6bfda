package main

import (
	"context"
	"io"

	"github.com/fwojciec/pageloader/download"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer

	Downloader *download.Downloader

	// Quiet suppresses progress output.
	Quiet bool
}

// DownloadCmd handles the download of one page.
type DownloadCmd struct {
	URL string
}
