package places

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/woozymasta/nearby/internal/config"
	"github.com/woozymasta/nearby/internal/geo"
)

type rewriteRoundTripper struct{ base *url.URL }

func (r rewriteRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c := req.Clone(req.Context())
	c.URL.Scheme = r.base.Scheme
	c.URL.Host = r.base.Host
	c.Host = r.base.Host
	return http.DefaultTransport.RoundTrip(c)
}

func testConfig(baseURL string) config.Places {
	cfg := config.Default().Places
	cfg.BaseURL = baseURL
	cfg.APIKey = "test-key"
	cfg.UserAgent = "test-agent"
	return cfg
}

func TestClient_Search_Query(t *testing.T) {
	var got url.Values
	var gotPath, gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"type":"FeatureCollection","features":[]}`)
	}))
	defer server.Close()

	// Keep the production host in the config and redirect it to the test server.
	u, _ := url.Parse(server.URL)
	httpClient := &http.Client{Transport: rewriteRoundTripper{base: u}}
	client := NewClient(httpClient, testConfig("https://api.geoapify.com"))

	features, err := client.Search(context.Background(), geo.Coordinate{Latitude: 38.6426, Longitude: -76.3871})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(features) != 0 {
		t.Errorf("features = %v, want none", features)
	}

	want := map[string]string{
		"categories": "catering,office",
		"conditions": "named",
		"filter":     "circle:-76.3871,38.6426,5000",
		"limit":      "20",
		"apiKey":     "test-key",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Errorf("query %s = %q, want %q", k, got.Get(k), v)
		}
	}
	if gotPath != "/v2/places" {
		t.Errorf("path = %q", gotPath)
	}
	if gotUA != "test-agent" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestClient_Search_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		wantOp string
		wantIs error
	}{
		{name: "non json body", status: http.StatusOK, body: "<html>oops</html>", wantOp: "decode"},
		{name: "missing features", status: http.StatusOK, body: `{"type":"FeatureCollection"}`, wantOp: "decode", wantIs: ErrNoFeatures},
		{name: "null features", status: http.StatusOK, body: `{"features":null}`, wantOp: "decode", wantIs: ErrNoFeatures},
		{name: "features not an array", status: http.StatusOK, body: `{"features":{"a":1}}`, wantOp: "decode"},
		{name: "top level array", status: http.StatusOK, body: `[]`, wantOp: "decode"},
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"statusCode":401,"error":"Unauthorized"}`, wantOp: "status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.Client(), testConfig(server.URL))
			_, err := client.Search(context.Background(), geo.Coordinate{})

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("err = %v, want *FetchError", err)
			}
			if fetchErr.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", fetchErr.Op, tt.wantOp)
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("err = %v, want wrapping %v", err, tt.wantIs)
			}
		})
	}
}

func TestClient_Search_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	_, err := NewClient(nil, testConfig(baseURL)).Search(context.Background(), geo.Coordinate{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Op != "request" {
		t.Errorf("err = %v, want request FetchError", err)
	}
}

func TestClient_Search_SkipsMalformedFeatures(t *testing.T) {
	body := `{"features":[
		{"type":"Feature","geometry":{"type":"Point","coordinates":[1,2]},"properties":{"name":"A"}},
		{"type":"Feature","geometry":"POINT(1 2)","properties":{"name":"bad"}},
		{"type":"Feature","geometry":{"type":"Point","coordinates":[3,4]},"properties":{"name":"B"}}
	]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, body)
	}))
	defer server.Close()

	features, err := NewClient(server.Client(), testConfig(server.URL)).Search(context.Background(), geo.Coordinate{})
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(features) != 2 {
		t.Fatalf("len = %d, want 2", len(features))
	}
	for i, want := range []string{"A", "B"} {
		if name, _ := features[i].StringProperty("name"); name != want {
			t.Errorf("feature %d name = %q, want %q", i, name, want)
		}
	}
}
