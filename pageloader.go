// Package pageloader downloads a single web page together with its
// same-origin assets so that it can be viewed offline.
// It fetches the page, rewrites references to images, stylesheets, scripts
// (and optionally linked pages) so they point at local copies, and saves
// those copies in a sibling assets directory.
//
// This package contains domain types, interfaces and the naming and origin
// rules shared by every implementation. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// http/, rod/).
package pageloader
