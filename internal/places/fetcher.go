package places

import (
	"context"

	"github.com/woozymasta/nearby/internal/geo"

	"github.com/rs/zerolog/log"
)

// Searcher returns raw features around a coordinate.
type Searcher interface {
	Search(ctx context.Context, center geo.Coordinate) ([]geo.Feature, error)
}

// Fetcher turns searches into point of interest lists, absorbing failures.
type Fetcher struct {
	searcher Searcher
}

// NewFetcher returns a fetcher backed by s.
func NewFetcher(s Searcher) *Fetcher {
	return &Fetcher{searcher: s}
}

// FetchPOIs returns the points of interest around c.
// Any failure is logged and yields an empty list, never a partial one.
func (f *Fetcher) FetchPOIs(ctx context.Context, c geo.Coordinate) []PointOfInterest {
	features, err := f.searcher.Search(ctx, c)
	if err != nil {
		log.Error().Err(err).Stringer("center", c).Msg("Error fetching points of interest")
		return []PointOfInterest{}
	}

	pois := ParseFeatures(features)

	log.Info().
		Stringer("center", c).
		Int("features", len(features)).
		Int("pois", len(pois)).
		Msg("Fetched points of interest")

	return pois
}
