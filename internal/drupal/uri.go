// internal/drupal/uri.go
//
// Drupal storage-URI helpers.
//
// Context
// -------
// Drupal records managed-file locations as scheme URIs such as
// "public://2025-06/IMG_4377.jpeg", while the rendered site serves the same
// files under /sites/default/files/.  Every component that needs the mapping
// (fragment rendering, asset manifests, avatar exports) goes through this
// package so the prefix pair lives in exactly one place.
//
// Notes
// -----
// • Only the public:// scheme maps to a served path.  private:// and
//   temporary:// files are not web-reachable and yield no path.
// • Oxford commas, two spaces after periods.
package drupal

import (
	"strconv"
	"strings"
)

const (
	// PublicScheme is the managed-file scheme for world-readable uploads.
	PublicScheme = "public://"

	// PublicFilesPath is the URL prefix the webserver maps PublicScheme to.
	PublicFilesPath = "/sites/default/files/"
)

// URIToPath converts a public:// URI to the path the site serves it under.
// Any other scheme, or a bare path, yields ("", false).
func URIToPath(uri string) (string, bool) {
	rest, ok := strings.CutPrefix(uri, PublicScheme)
	if !ok {
		return "", false
	}
	return PublicFilesPath + rest, true
}

// NodePath returns the internal Drupal path for a node ID, the form used as
// the source side of path_alias rows.
func NodePath(nid uint64) string {
	return "/node/" + strconv.FormatUint(nid, 10)
}
