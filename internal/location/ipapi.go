package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/woozymasta/nearby/internal/geo"

	"github.com/rs/zerolog/log"
)

// ipAPIResponse is shaped for the ip-api.com JSON endpoint.
type ipAPIResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPAPIPosition reads an approximate position from an IP geolocation service.
type IPAPIPosition struct {
	client    *http.Client
	endpoint  string
	userAgent string
}

// NewIPAPIPosition returns a reader for endpoint, e.g. "http://ip-api.com/json/".
func NewIPAPIPosition(client *http.Client, endpoint, userAgent string) *IPAPIPosition {
	if client == nil {
		client = http.DefaultClient
	}
	return &IPAPIPosition{client: client, endpoint: endpoint, userAgent: userAgent}
}

// CurrentPosition implements PositionReader.
// IP lookups are coarse whatever accuracy is asked for.
func (p *IPAPIPosition) CurrentPosition(ctx context.Context, accuracy Accuracy) (geo.Coordinate, error) {
	params := url.Values{}
	params.Set("fields", "status,message,lat,lon")
	reqURL := fmt.Sprintf("%s?%s", p.endpoint, params.Encode())

	log.Debug().
		Str("endpoint", p.endpoint).
		Stringer("accuracy", accuracy).
		Msg("Requesting IP based position")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	if p.userAgent != "" {
		req.Header.Set("User-Agent", p.userAgent)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return geo.Coordinate{}, fmt.Errorf("%w: unexpected status: %s", ErrLocationUnavailable, resp.Status)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: decode: %w", ErrLocationUnavailable, err)
	}
	if body.Status != "success" {
		return geo.Coordinate{}, fmt.Errorf("%w: lookup %s: %s", ErrLocationUnavailable, body.Status, body.Message)
	}

	return geo.Coordinate{Latitude: body.Lat, Longitude: body.Lon}, nil
}
