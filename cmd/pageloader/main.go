package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pageloader"
	"github.com/fwojciec/pageloader/download"
	"github.com/fwojciec/pageloader/fs"
	"github.com/fwojciec/pageloader/goquery"
	lochttp "github.com/fwojciec/pageloader/http"
	"github.com/fwojciec/pageloader/rod"
	locslog "github.com/fwojciec/pageloader/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments. Every error it returns
// has already been reported on stderr.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pageloader"),
		kong.Description("Download a web page and its same-origin assets for offline viewing"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := pageloader.Errorf(pageloader.EINVALID, "no arguments provided")
		reportError(stderr, err)
		return err
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		err = pageloader.WrapError(pageloader.EINVALID, err, "invalid arguments")
		reportError(stderr, err)
		return err
	}

	deps, cleanup, err := m.wire(ctx, cli, stdout, stderr)
	if err != nil {
		reportError(stderr, err)
		return err
	}
	defer cleanup()

	cmd := &DownloadCmd{URL: cli.URL}
	return cmd.Run(deps)
}

// wire builds the services selected by the flags. The returned cleanup
// releases fetchers.
func (m *Main) wire(ctx context.Context, cli *CLI, stdout, stderr io.Writer) (*Dependencies, func(), error) {
	timeout := cli.Timeout
	if timeout <= 0 {
		timeout = lochttp.DefaultFetchTimeout
	}

	opts := []lochttp.Option{lochttp.WithTimeout(timeout)}
	if cli.UserAgent != "" {
		opts = append(opts, lochttp.WithUserAgent(cli.UserAgent))
	}
	if cli.Rate > 0 {
		opts = append(opts, lochttp.WithLimiter(lochttp.NewHostLimiter(cli.Rate)))
	}

	var assetFetcher pageloader.Fetcher = lochttp.NewFetcher(opts...)
	pageFetcher := assetFetcher
	closers := []pageloader.Fetcher{assetFetcher}

	if cli.Render {
		rodFetcher, err := rod.NewFetcher(rod.WithTimeout(timeout))
		if err != nil {
			_ = assetFetcher.Close()
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, err
		}
		pageFetcher = rodFetcher
		closers = append(closers, rodFetcher)
	}

	var store pageloader.Store = fs.NewStore(cli.Output)

	if cli.Debug {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		assetFetcher = locslog.NewLoggingFetcher(assetFetcher, logger)
		if cli.Render {
			pageFetcher = locslog.NewLoggingFetcher(pageFetcher, logger)
		} else {
			pageFetcher = assetFetcher
		}
		store = locslog.NewLoggingStore(store, logger)
	}

	kinds := pageloader.DefaultElementKinds()
	if cli.Links {
		kinds = append(kinds, pageloader.ElementAnchor)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Downloader: &download.Downloader{
			PageFetcher:  pageFetcher,
			AssetFetcher: assetFetcher,
			Parser:       goquery.NewParser(),
			Store:        store,
			Kinds:        kinds,
		},
		Quiet: cli.Quiet,
	}

	cleanup := func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}
	return deps, cleanup, nil
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output    string        `short:"o" default:"." env:"PAGELOADER_OUTPUT" help:"Directory to save the page into"`
	Timeout   time.Duration `short:"t" default:"10s" env:"PAGELOADER_TIMEOUT" help:"Timeout per request"`
	Rate      float64       `default:"0" help:"Requests per second per host (0 = unlimited)"`
	Links     bool          `help:"Also localize same-origin <a href> pages"`
	Render    bool          `help:"Render the page in headless Chrome before saving"`
	UserAgent string        `name:"user-agent" env:"PAGELOADER_USER_AGENT" help:"User-Agent header for requests"`
	Quiet     bool          `short:"q" help:"Do not print progress"`
	Debug     bool          `help:"Log every fetch and write to stderr"`
	URL       string        `arg:"" required:"" help:"Absolute http(s) URL of the page"`
}
