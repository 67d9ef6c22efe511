package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/woozymasta/nearby/internal/geo"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Places.BaseURL != "https://api.geoapify.com" {
		t.Errorf("BaseURL = %q", cfg.Places.BaseURL)
	}
	if !reflect.DeepEqual(cfg.Places.Categories, []string{"catering", "office"}) {
		t.Errorf("Categories = %v", cfg.Places.Categories)
	}
	if !reflect.DeepEqual(cfg.Places.Conditions, []string{"named"}) {
		t.Errorf("Conditions = %v", cfg.Places.Conditions)
	}
	if cfg.Places.RadiusMeters != 5000 || cfg.Places.Limit != 20 {
		t.Errorf("RadiusMeters = %d, Limit = %d", cfg.Places.RadiusMeters, cfg.Places.Limit)
	}
	if *cfg.Location.Fallback != FallbackCoordinate {
		t.Errorf("Fallback = %v", *cfg.Location.Fallback)
	}
	if cfg.Location.RegionDelta != 0.2 {
		t.Errorf("RegionDelta = %v", cfg.Location.RegionDelta)
	}
	if cfg.Location.FetchOnPermissionError {
		t.Error("FetchOnPermissionError enabled by default")
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	t.Setenv(APIKeyEnv, "from-env")

	path := writeConfig(t, `
http_timeout: 3s
places:
  base_url: http://localhost:9000/
  api_key: from-file
  limit: 5
location:
  platform: static
  permission: denied
  device:
    latitude: 51.5
    longitude: -0.12
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Places.APIKey != "from-env" {
		t.Errorf("APIKey = %q, want env value", cfg.Places.APIKey)
	}
	if cfg.Places.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q, want trailing slash trimmed", cfg.Places.BaseURL)
	}
	if cfg.Places.Limit != 5 || cfg.Places.RadiusMeters != 5000 {
		t.Errorf("Limit = %d, RadiusMeters = %d", cfg.Places.Limit, cfg.Places.RadiusMeters)
	}
	if cfg.Location.Permission != "denied" {
		t.Errorf("Permission = %q", cfg.Location.Permission)
	}
	want := geo.Coordinate{Latitude: 51.5, Longitude: -0.12}
	if cfg.Location.Device == nil || *cfg.Location.Device != want {
		t.Errorf("Device = %v, want %v", cfg.Location.Device, want)
	}
	if cfg.HTTPTimeout != 3*time.Second {
		t.Errorf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(APIKeyEnv, "")

	tests := []struct {
		name string
		body string
	}{
		{name: "bad yaml", body: "places: ["},
		{name: "unknown platform", body: "location:\n  platform: gps\n"},
		{name: "unknown permission", body: "location:\n  permission: maybe\n"},
		{name: "fallback out of range", body: "location:\n  fallback:\n    latitude: 100\n    longitude: 0\n"},
		{name: "device out of range", body: "location:\n  device:\n    latitude: 0\n    longitude: 200\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); err == nil {
				t.Error("Load() succeeded, want error")
			}
		})
	}
}
