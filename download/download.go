// Package download orchestrates fetching a page, localizing its assets
// and writing everything to a Store.
package download

import (
	"bytes"
	"context"
	"net/url"

	"github.com/fwojciec/pageloader"
)

// Downloader downloads one page and its same-origin assets.
// Work is strictly sequential: the page first, then each asset in
// manifest order. The first failure aborts the download; files already
// written stay on disk.
type Downloader struct {
	// PageFetcher fetches the page itself. Defaults to AssetFetcher.
	PageFetcher pageloader.Fetcher

	// AssetFetcher fetches every manifest entry.
	AssetFetcher pageloader.Fetcher

	Parser pageloader.Parser
	Store  pageloader.Store

	// Kinds lists the elements whose references are localized.
	// Defaults to pageloader.DefaultElementKinds().
	Kinds []pageloader.ElementKind
}

// Download saves pageURL and its assets and returns the absolute path of
// the written page. The progress callback, if provided, receives events
// as the download proceeds.
func (d *Downloader) Download(ctx context.Context, pageURL string, progress pageloader.DownloadProgressFunc) (string, error) {
	page, err := parsePageURL(pageURL)
	if err != nil {
		return "", err
	}

	pageFetcher := d.PageFetcher
	if pageFetcher == nil {
		pageFetcher = d.AssetFetcher
	}

	body, err := pageFetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}
	notify(progress, pageloader.DownloadProgress{
		Type:  pageloader.ProgressPageFetched,
		URL:   pageURL,
		Bytes: len(body),
	})

	doc, err := d.Parser.Parse(bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	pageName, err := pageloader.NameFor(pageURL, pageloader.RolePage)
	if err != nil {
		return "", err
	}
	assetsDir, err := pageloader.NameFor(pageURL, pageloader.RoleAssetsDir)
	if err != nil {
		return "", err
	}

	kinds := d.Kinds
	if len(kinds) == 0 {
		kinds = pageloader.DefaultElementKinds()
	}

	manifest, err := doc.Rewrite(page, assetsDir, kinds)
	if err != nil {
		return "", err
	}

	content, err := doc.Render()
	if err != nil {
		return "", err
	}

	pagePath, err := d.Store.WritePage(ctx, pageName, content)
	if err != nil {
		return "", err
	}
	notify(progress, pageloader.DownloadProgress{
		Type:  pageloader.ProgressPageSaved,
		URL:   pageURL,
		Path:  pagePath,
		Bytes: len(content),
		Total: manifest.Len(),
	})

	if manifest.Len() == 0 {
		return pagePath, nil
	}

	if err := d.Store.CreateAssetsDir(ctx, assetsDir); err != nil {
		return "", err
	}

	entries := manifest.Entries()
	for i, entry := range entries {
		data, err := d.AssetFetcher.Fetch(ctx, entry.RemoteURL)
		if err != nil {
			notify(progress, assetFailed(entry, i, len(entries), err))
			return "", err
		}

		path, err := d.Store.WriteAsset(ctx, entry.LocalName, data)
		if err != nil {
			notify(progress, assetFailed(entry, i, len(entries), err))
			return "", err
		}

		notify(progress, pageloader.DownloadProgress{
			Type:      pageloader.ProgressAssetSaved,
			URL:       entry.RemoteURL,
			Path:      path,
			Bytes:     len(data),
			Completed: i + 1,
			Total:     len(entries),
		})
	}

	return pagePath, nil
}

// parsePageURL validates that rawURL is an absolute http(s) URL.
func parsePageURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, pageloader.WrapError(pageloader.EINVALID, err, "invalid page URL %q", rawURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, pageloader.Errorf(pageloader.EINVALID, "page URL %q must use http or https", rawURL)
	}
	if u.Host == "" {
		return nil, pageloader.Errorf(pageloader.EINVALID, "page URL %q has no host", rawURL)
	}
	return u, nil
}

func assetFailed(entry pageloader.ManifestEntry, completed, total int, err error) pageloader.DownloadProgress {
	return pageloader.DownloadProgress{
		Type:      pageloader.ProgressAssetFailed,
		URL:       entry.RemoteURL,
		Completed: completed,
		Total:     total,
		Error:     err,
	}
}

func notify(progress pageloader.DownloadProgressFunc, p pageloader.DownloadProgress) {
	if progress != nil {
		progress(p)
	}
}
