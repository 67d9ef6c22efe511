// Package app owns the map state and runs the launch sequence that fills it.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/woozymasta/nearby/internal/geo"
	"github.com/woozymasta/nearby/internal/location"
	"github.com/woozymasta/nearby/internal/places"

	"github.com/rs/zerolog/log"
)

// POIFetcher returns the points of interest around a coordinate.
type POIFetcher interface {
	FetchPOIs(ctx context.Context, c geo.Coordinate) []places.PointOfInterest
}

// Resolver produces the launch coordinate.
type Resolver interface {
	Resolve(ctx context.Context) location.Result
}

// Snapshot is a consistent copy of the state for readers.
type Snapshot struct {
	UpdatedAt time.Time                `json:"updated_at"`
	POIs      []places.PointOfInterest `json:"pois"`
	Region    geo.Region               `json:"region"`
	State     location.State           `json:"-"`
	Fetches   int                      `json:"fetches"`
	Resolved  bool                     `json:"resolved"`
}

// App is the state container shared with the presentation layer.
// The launch sequence is its only writer.
type App struct {
	updatedAt time.Time
	fetcher   POIFetcher
	resolver  Resolver
	pois      []places.PointOfInterest
	result    location.Result
	region    geo.Region
	once      sync.Once
	mu        sync.RWMutex
	fetches   int
	resolved  bool
}

// New returns an App showing initial until the first recenter.
func New(fetcher POIFetcher, initial geo.Region) *App {
	return &App{
		fetcher: fetcher,
		region:  initial,
		pois:    []places.PointOfInterest{},
	}
}

// SetResolver attaches the launch resolver. It must be called before Start.
// The resolver usually needs the App itself as dispatcher and viewport.
func (a *App) SetResolver(r Resolver) {
	a.resolver = r
}

// Start runs the launch sequence once. Later calls return the first result.
func (a *App) Start(ctx context.Context) location.Result {
	a.once.Do(func() {
		start := time.Now()
		res := a.resolver.Resolve(ctx)

		a.mu.Lock()
		a.result = res
		a.resolved = true
		a.mu.Unlock()

		log.Info().
			Stringer("state", res.State).
			Stringer("coordinate", res.Coordinate).
			Bool("fallback", res.Fallback()).
			Bool("dispatched", res.Dispatched).
			Dur("duration", time.Since(start)).
			Msg("Launch sequence finished")
	})

	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result
}

// Dispatch implements location.Dispatcher. The list is replaced wholesale,
// a failed fetch leaves it empty.
func (a *App) Dispatch(ctx context.Context, c geo.Coordinate) {
	pois := a.fetcher.FetchPOIs(ctx, c)
	if pois == nil {
		pois = []places.PointOfInterest{}
	}

	a.mu.Lock()
	a.pois = pois
	a.fetches++
	a.updatedAt = time.Now()
	a.mu.Unlock()
}

// Recenter implements location.Viewport.
func (a *App) Recenter(r geo.Region) {
	a.mu.Lock()
	a.region = r
	a.mu.Unlock()

	log.Debug().
		Float64("lat", r.Latitude).
		Float64("lon", r.Longitude).
		Float64("delta", r.LongitudeDelta).
		Msg("Map recentered")
}

// Snapshot returns a copy of the current state.
func (a *App) Snapshot() Snapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()

	pois := make([]places.PointOfInterest, len(a.pois))
	copy(pois, a.pois)

	return Snapshot{
		POIs:      pois,
		Region:    a.region,
		State:     a.result.State,
		Fetches:   a.fetches,
		Resolved:  a.resolved,
		UpdatedAt: a.updatedAt,
	}
}
