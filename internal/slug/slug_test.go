// internal/slug/slug_test.go

package slug

import "testing"

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Vintage Airstream Club (VAC)": "vintage-airstream-club-vac",
		"Région Québec":                "r-gion-qu-bec",
		"---":                          "page",
		"About Us":                     "about-us",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Errorf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestJoinPath(t *testing.T) {
	if got := JoinPath("boondockers", "rally-schedule"); got != "/boondockers/rally-schedule" {
		t.Fatalf("JoinPath = %q", got)
	}
	if got := JoinPath("", ""); got != "/" {
		t.Fatalf("JoinPath empty = %q", got)
	}
	if got := JoinPath("/boondockers/", ""); got != "/boondockers" {
		t.Fatalf("JoinPath trim = %q", got)
	}
}
