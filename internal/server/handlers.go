// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/woozymasta/nearby/internal/places"
)

// StatusResponse summarizes the launch sequence for the page header.
type StatusResponse struct {
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Message   string     `json:"message"`
	State     string     `json:"state"`
	Count     int        `json:"count"`
	Resolved  bool       `json:"resolved"`
}

// HandlePOIs serves the current points of interest as GeoJSON markers.
func (s *ServerContext) HandlePOIs(w http.ResponseWriter, r *http.Request) {
	snap := s.State.Snapshot()

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set("Cache-Control", "no-store")
	// Ignoring error as we cannot handle client disconnects
	_ = json.NewEncoder(w).Encode(places.Collection(snap.POIs))
}

// HandleRegion serves the map region the page should frame.
func (s *ServerContext) HandleRegion(w http.ResponseWriter, r *http.Request) {
	snap := s.State.Snapshot()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(snap.Region)
}

// HandleStatus serves the header status line.
func (s *ServerContext) HandleStatus(w http.ResponseWriter, r *http.Request) {
	snap := s.State.Snapshot()

	resp := StatusResponse{
		Count:    len(snap.POIs),
		State:    snap.State.String(),
		Resolved: snap.Resolved,
	}
	if resp.Count > 0 {
		resp.Message = fmt.Sprintf("Found %d places nearby", resp.Count)
	}
	if !snap.UpdatedAt.IsZero() {
		resp.UpdatedAt = &snap.UpdatedAt
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(resp)
}

// HandleFavicon serves the site favicon.
func (s *ServerContext) HandleFavicon(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/favicon.ico" {
		http.NotFound(w, r)
		return
	}

	serveCached(w, r, s.Favicon, s.FaviconETag, "image/svg+xml", "public, max-age=86400")
}

// HandleIndex serves the main HTML application.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && strings.Contains(r.URL.Path, ".") {
		http.NotFound(w, r)
		return
	}

	serveCached(w, r, s.IndexHTML, s.IndexETag, "text/html; charset=utf-8", "public, no-cache")
}

// serveCached writes body with its ETag or answers 304 when the client already holds it.
func serveCached(w http.ResponseWriter, r *http.Request, body []byte, etag, contentType, cacheControl string) {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheControl)

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(body)
}

// Routes registers the handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/pois", s.HandlePOIs)
	mux.HandleFunc("GET /api/region", s.HandleRegion)
	mux.HandleFunc("GET /api/status", s.HandleStatus)
	mux.HandleFunc("GET /favicon.ico", s.HandleFavicon)
	mux.HandleFunc("GET /", s.HandleIndex)
	return mux
}
