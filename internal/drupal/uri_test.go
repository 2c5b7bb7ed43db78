// internal/drupal/uri_test.go
//
// Unit-tests for the storage-URI helpers.

package drupal

import "testing"

func TestURIToPath(t *testing.T) {
	got, ok := URIToPath("public://2025-06/IMG_4377.jpeg")
	if !ok {
		t.Fatalf("public URI not recognised")
	}
	if want := "/sites/default/files/2025-06/IMG_4377.jpeg"; got != want {
		t.Fatalf("path = %q, want %q", got, want)
	}
}

func TestURIToPath_OtherSchemes(t *testing.T) {
	for _, uri := range []string{"private://secret.pdf", "temporary://x.tmp", "not-a-uri", ""} {
		if got, ok := URIToPath(uri); ok {
			t.Fatalf("URIToPath(%q) = %q, want absent", uri, got)
		}
	}
}

func TestNodePath(t *testing.T) {
	if got := NodePath(55629); got != "/node/55629" {
		t.Fatalf("NodePath = %q", got)
	}
}
