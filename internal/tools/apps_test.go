package tools

import "testing"

func TestResolveApp(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Chrome", "google-chrome"},
		{"visual studio code", "code"},
		{"  Spotify ", "spotify"},
		{"file explorer", "nautilus"},
		{"blender", "blender"}, // unknown names pass through
	}
	for _, tc := range cases {
		if got := ResolveApp(tc.name); got != tc.want {
			t.Fatalf("ResolveApp(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"github.com", "https://github.com"},
		{"https://github.com", "https://github.com"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeURL(tc.raw); got != tc.want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestSearchURLEscapesQuery(t *testing.T) {
	got := SearchURL("go 1.25 release notes")
	want := "https://www.google.com/search?q=go+1.25+release+notes"
	if got != want {
		t.Fatalf("SearchURL = %q, want %q", got, want)
	}
}
