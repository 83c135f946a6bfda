package pageloader

// DownloadProgressType indicates which step a DownloadProgress reports.
type DownloadProgressType int

// Download progress steps.
const (
	ProgressPageFetched DownloadProgressType = iota
	ProgressPageSaved
	ProgressAssetSaved
	ProgressAssetFailed
)

// DownloadProgress reports progress during a page download.
type DownloadProgress struct {
	Type      DownloadProgressType
	URL       string
	Path      string
	Bytes     int
	Completed int
	Total     int

	// Error is set for ProgressAssetFailed. The download stops after it.
	Error error
}

// DownloadProgressFunc is called as the download proceeds.
type DownloadProgressFunc func(DownloadProgress)
