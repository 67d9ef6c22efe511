// Package places queries the Geoapify places search API for points of interest.
package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/woozymasta/nearby/internal/config"
	"github.com/woozymasta/nearby/internal/geo"

	"github.com/rs/zerolog/log"
)

// ErrNoFeatures is returned when the response lacks a features array.
var ErrNoFeatures = errors.New("response has no features")

// FetchError describes a failed places query. Op is "request", "status" or "decode".
type FetchError struct {
	Err error
	Op  string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("places %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// searchResponse keeps features raw so one malformed record cannot fail the rest.
type searchResponse struct {
	Features json.RawMessage `json:"features"`
}

// Client is a places search API client.
type Client struct {
	httpClient *http.Client
	cfg        config.Places
}

// NewClient returns a client for cfg. A nil httpClient uses http.DefaultClient.
func NewClient(httpClient *http.Client, cfg config.Places) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

// SearchURL builds the circle search query around c.
func (c *Client) SearchURL(center geo.Coordinate) string {
	params := url.Values{}
	params.Set("categories", strings.Join(c.cfg.Categories, ","))
	if len(c.cfg.Conditions) > 0 {
		params.Set("conditions", strings.Join(c.cfg.Conditions, ","))
	}
	params.Set("filter", fmt.Sprintf("circle:%s,%s,%d",
		strconv.FormatFloat(center.Longitude, 'f', -1, 64),
		strconv.FormatFloat(center.Latitude, 'f', -1, 64),
		c.cfg.RadiusMeters))
	params.Set("limit", strconv.Itoa(c.cfg.Limit))
	params.Set("apiKey", c.cfg.APIKey)

	return fmt.Sprintf("%s/v2/places?%s", c.cfg.BaseURL, params.Encode())
}

// Search issues one request and returns the decodable features in response order.
func (c *Client) Search(ctx context.Context, center geo.Coordinate) ([]geo.Feature, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(center), nil)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Op: "request", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Op: "status", Err: fmt.Errorf("unexpected status: %s", resp.Status)}
	}

	return decodeFeatures(body)
}

func decodeFeatures(body []byte) ([]geo.Feature, error) {
	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, &FetchError{Op: "decode", Err: err}
	}

	raw := bytes.TrimSpace(sr.Features)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, &FetchError{Op: "decode", Err: ErrNoFeatures}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &FetchError{Op: "decode", Err: fmt.Errorf("features: %w", err)}
	}

	features := make([]geo.Feature, 0, len(items))
	for i, item := range items {
		var f geo.Feature
		if err := json.Unmarshal(item, &f); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("Skipping malformed feature")
			continue
		}
		features = append(features, f)
	}

	return features, nil
}
