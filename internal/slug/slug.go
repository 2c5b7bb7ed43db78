// internal/slug/slug.go
//
// Slug and path helpers for exported microsites.
//
// • Make(title) ─ converts a club or page title into a URL-safe slug
//   restricted to ASCII a-z, 0-9 and “-”.
// • JoinPath(parent, slug) ─ joins a club slug and a page slug with a single
//   “/” and guarantees exactly one leading slash.
//
// Rules (Make)
// ------------
// 1. Lower-case everything.
// 2. Convert any run of non-[a-z0-9] characters to one “-”.  That strips
//    spaces, punctuation, and non-ASCII.
// 3. Collapse consecutive “-” to a single “-”.
// 4. Trim leading / trailing “-”.
// 5. If the result is empty, return "page".
//
// Notes
// -----
// • Used only when a homepage carries no path_alias row; aliased clubs keep
//   the alias the CMS already serves.
// • Slugs are max 100 runes.

package slug

import (
	"strings"
)

// Make converts title → lower-kebab ASCII.
func Make(title string) string {
	var b strings.Builder
	b.Grow(len(title))

	lastWasDash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastWasDash = false
		default:
			// any non-ASCII or punctuation becomes a single dash
			if !lastWasDash {
				b.WriteRune('-')
				lastWasDash = true
			}
		}
	}

	s := strings.Trim(b.String(), "-")
	if s == "" {
		return "page"
	}
	if len(s) > 100 {
		s = s[:100]
		s = strings.TrimRightFunc(s, func(r rune) bool { return r == '-' })
	}
	return s
}

// JoinPath joins parent + slug ensuring exactly one leading slash and no
// duplicate separators.
func JoinPath(parent, slug string) string {
	parent = strings.Trim(parent, "/")
	slug = strings.Trim(slug, "/")

	switch {
	case parent == "" && slug == "":
		return "/"
	case parent == "":
		return "/" + slug
	case slug == "":
		return "/" + parent
	default:
		return "/" + parent + "/" + slug
	}
}
