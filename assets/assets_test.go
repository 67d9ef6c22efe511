package assets

import (
	"bytes"
	"testing"
)

func TestRender(t *testing.T) {
	page, err := Render([]string{"catering", "office"})
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, want := range []string{"What's Nearby?", "Displaying catering and office near you", "/api/pois", "leaflet"} {
		if !bytes.Contains(page.Index, []byte(want)) {
			t.Errorf("index missing %q", want)
		}
	}
	if bytes.Contains(page.Index, []byte("{{")) {
		t.Error("index contains unexecuted template actions")
	}
	if !bytes.HasPrefix(page.Favicon, []byte("<svg")) {
		t.Errorf("favicon = %q", page.Favicon)
	}
}

func TestJoinCategories(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{in: nil, want: "places"},
		{in: []string{"catering"}, want: "catering"},
		{in: []string{"catering", "office"}, want: "catering and office"},
		{in: []string{"catering", "office", "leisure"}, want: "catering, office and leisure"},
	}

	for _, tt := range tests {
		if got := joinCategories(tt.in); got != tt.want {
			t.Errorf("joinCategories(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
