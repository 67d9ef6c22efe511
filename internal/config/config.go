// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/woozymasta/nearby/internal/geo"

	"gopkg.in/yaml.v3"
)

// APIKeyEnv is the environment variable that overrides places.api_key.
const APIKeyEnv = "GEOAPIFY_API_KEY"

// FallbackCoordinate is used when the device position cannot be determined.
var FallbackCoordinate = geo.Coordinate{Latitude: 38.6426, Longitude: -76.3871}

// Config represents the root configuration file structure.
type Config struct {
	Places      Places        `yaml:"places"`
	Location    Location      `yaml:"location"`
	HTTPTimeout time.Duration `yaml:"http_timeout,omitempty"`
}

// Places configures the places search endpoint and its fixed query.
type Places struct {
	BaseURL      string   `yaml:"base_url,omitempty"`
	APIKey       string   `yaml:"api_key,omitempty"`
	UserAgent    string   `yaml:"user_agent,omitempty"`
	Categories   []string `yaml:"categories,omitempty"`
	Conditions   []string `yaml:"conditions,omitempty"`
	RadiusMeters int      `yaml:"radius_meters,omitempty"`
	Limit        int      `yaml:"limit,omitempty"`
}

// Location configures the platform the resolver asks for a position.
type Location struct {
	// Platform is "static" or "ipapi".
	Platform string `yaml:"platform,omitempty"`
	// Permission is "granted", "denied" or "prompt".
	Permission string `yaml:"permission,omitempty"`
	// Device is the position reported by the static platform, nil means the read fails.
	Device   *geo.Coordinate `yaml:"device,omitempty"`
	Fallback *geo.Coordinate `yaml:"fallback,omitempty"`
	IPAPIURL string          `yaml:"ipapi_url,omitempty"`

	RegionDelta float64 `yaml:"region_delta,omitempty"`

	// FetchOnPermissionError makes a failed permission request fetch around the
	// fallback coordinate like a denial does. Off by default.
	FetchOnPermissionError bool `yaml:"fetch_on_permission_error,omitempty"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads and parses the YAML configuration file from the specified path.
// A missing file is not an error, defaults are returned instead.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if key := os.Getenv(APIKeyEnv); key != "" {
		cfg.Places.APIKey = key
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Location.Platform {
	case "static", "ipapi":
	default:
		return fmt.Errorf("unknown location platform %q", c.Location.Platform)
	}

	switch c.Location.Permission {
	case "granted", "denied", "prompt":
	default:
		return fmt.Errorf("unknown location permission %q", c.Location.Permission)
	}

	if !c.Location.Fallback.Valid() {
		return fmt.Errorf("fallback coordinate %s out of range", c.Location.Fallback)
	}
	if c.Location.Device != nil && !c.Location.Device.Valid() {
		return fmt.Errorf("device coordinate %s out of range", c.Location.Device)
	}

	return nil
}

func (c *Config) applyDefaults() {
	p := &c.Places
	if p.BaseURL == "" {
		p.BaseURL = "https://api.geoapify.com"
	}
	p.BaseURL = strings.TrimRight(p.BaseURL, "/")
	if p.UserAgent == "" {
		p.UserAgent = "nearby/1.0"
	}
	if len(p.Categories) == 0 {
		p.Categories = []string{"catering", "office"}
	}
	if len(p.Conditions) == 0 {
		p.Conditions = []string{"named"}
	}
	if p.RadiusMeters <= 0 {
		p.RadiusMeters = 5000
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}

	l := &c.Location
	if l.Platform == "" {
		l.Platform = "static"
	}
	if l.Permission == "" {
		l.Permission = "granted"
	}
	if l.Fallback == nil {
		fallback := FallbackCoordinate
		l.Fallback = &fallback
	}
	if l.IPAPIURL == "" {
		l.IPAPIURL = "http://ip-api.com/json/"
	}
	if l.RegionDelta <= 0 {
		l.RegionDelta = geo.DefaultRegionDelta
	}

	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
}
