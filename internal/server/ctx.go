package server

import (
	"fmt"
	"hash/fnv"

	"github.com/woozymasta/nearby/assets"
	"github.com/woozymasta/nearby/internal/app"
	"github.com/woozymasta/nearby/internal/config"

	"github.com/rs/zerolog/log"
)

// StateSource provides the map state served to the web page.
type StateSource interface {
	Snapshot() app.Snapshot
}

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	State     StateSource
	Config    *config.Config
	IndexHTML []byte
	Favicon   []byte

	IndexETag   string
	FaviconETag string
}

// NewServerContext renders the embedded page and wires the state source.
func NewServerContext(cfg *config.Config, state StateSource) (*ServerContext, error) {
	page, err := assets.Render(cfg.Places.Categories)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("index_bytes", len(page.Index)).
		Strs("categories", cfg.Places.Categories).
		Msg("Server context initialized successfully")

	return &ServerContext{
		State:       state,
		Config:      cfg,
		IndexHTML:   page.Index,
		Favicon:     page.Favicon,
		IndexETag:   contentETag(page.Index),
		FaviconETag: contentETag(page.Favicon),
	}, nil
}

// contentETag returns a strong ETag derived from the bytes served.
func contentETag(b []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(b)
	return fmt.Sprintf(`"%016x"`, h.Sum64())
}
