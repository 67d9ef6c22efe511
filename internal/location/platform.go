package location

import (
	"fmt"
	"io"
	"net/http"

	"github.com/woozymasta/nearby/internal/config"
)

// NewPlatform builds the Platform described by cfg.
// in and out are the terminal used by the "prompt" permission policy.
func NewPlatform(cfg config.Location, client *http.Client, userAgent string, in io.Reader, out io.Writer) (Platform, error) {
	var host Host

	switch cfg.Permission {
	case "granted":
		host.PermissionRequester = FixedPermission(PermissionGranted)
	case "denied":
		host.PermissionRequester = FixedPermission(PermissionDenied)
	case "prompt":
		host.PermissionRequester = NewPrompt(in, out)
	default:
		return nil, fmt.Errorf("unknown location permission %q", cfg.Permission)
	}

	switch cfg.Platform {
	case "static":
		host.PositionReader = StaticPosition{Coordinate: cfg.Device}
	case "ipapi":
		host.PositionReader = NewIPAPIPosition(client, cfg.IPAPIURL, userAgent)
	default:
		return nil, fmt.Errorf("unknown location platform %q", cfg.Platform)
	}

	return host, nil
}

// OptionsFrom maps the configuration onto resolver options.
func OptionsFrom(cfg config.Location) Options {
	opts := Options{
		Fallback:               config.FallbackCoordinate,
		RegionDelta:            cfg.RegionDelta,
		FetchOnPermissionError: cfg.FetchOnPermissionError,
	}
	if cfg.Fallback != nil {
		opts.Fallback = *cfg.Fallback
	}
	return opts
}
