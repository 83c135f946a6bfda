package pageloader

import (
	"net/url"
	"strings"
	"unicode"
)

// Role selects which kind of local name NameFor derives from a URL.
type Role int

// Naming roles.
const (
	RolePage Role = iota
	RoleAssetsDir
	RoleAsset
)

// String returns the role name used in logs.
func (r Role) String() string {
	switch r {
	case RolePage:
		return "page"
	case RoleAssetsDir:
		return "assets-dir"
	case RoleAsset:
		return "asset"
	default:
		return "unknown"
	}
}

// Suffixes appended by NameFor.
const (
	PageSuffix      = ".html"
	AssetsDirSuffix = "_files"
)

// NameFor derives a file-system-safe name from the authority and path of
// rawURL. Query and fragment are ignored, trailing slashes are stripped and
// every rune that is not a letter, digit or underscore becomes one '-'.
//
// Examples for https://ru.hexlet.io/courses:
//
//	RolePage      → ru-hexlet-io-courses.html
//	RoleAssetsDir → ru-hexlet-io-courses_files
//
// For RoleAsset the extension of the last path segment is kept verbatim,
// so https://ru.hexlet.io/assets/app.css → ru-hexlet-io-assets-app.css.
// Assets without an extension get ".html".
func NameFor(rawURL string, role Role) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", WrapError(EINVALID, err, "invalid URL %q", rawURL)
	}

	// Decoded path, so a percent-encoded letter is judged as one rune.
	path := strings.TrimRight(u.Path, "/")

	switch role {
	case RolePage:
		return sanitizeName(u.Host+path) + PageSuffix, nil
	case RoleAssetsDir:
		return sanitizeName(u.Host+path) + AssetsDirSuffix, nil
	case RoleAsset:
		base, ext := splitExt(path)
		if ext == "" {
			ext = PageSuffix
		}
		return sanitizeName(u.Host+base) + ext, nil
	default:
		return "", Errorf(EINVALID, "unknown name role %d", int(role))
	}
}

// AssetPath returns the manifest key for an asset: the assets directory
// name joined with the asset name by a forward slash.
func AssetPath(assetsDir, assetURL string) (string, error) {
	name, err := NameFor(assetURL, RoleAsset)
	if err != nil {
		return "", err
	}
	return assetsDir + "/" + name, nil
}

// splitExt splits the extension off the last segment of path.
// A segment that starts with its only dot (".htaccess") has no extension.
func splitExt(path string) (base, ext string) {
	slash := strings.LastIndexByte(path, '/')
	dot := strings.LastIndexByte(path, '.')
	if dot <= slash+1 {
		return path, ""
	}
	// Leading dots of the segment do not start an extension.
	if strings.TrimLeft(path[slash+1:dot], ".") == "" {
		return path, ""
	}
	return path[:dot], path[dot:]
}

// sanitizeName replaces each rune outside [letters, digits, _] with '-'.
// Runs are not collapsed.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '-'
	}, s)
}
