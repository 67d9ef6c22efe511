package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/woozymasta/nearby/internal/geo"

	"github.com/rs/zerolog/log"
)

// State is the step the resolver finished in.
type State int

// Resolver states.
const (
	StateIdle State = iota
	StatePermissionFailed
	StatePermissionDenied
	StateLocationFailed
	StateLocationResolved
)

func (s State) String() string {
	switch s {
	case StatePermissionFailed:
		return "permission_failed"
	case StatePermissionDenied:
		return "permission_denied"
	case StateLocationFailed:
		return "location_failed"
	case StateLocationResolved:
		return "location_resolved"
	default:
		return "idle"
	}
}

// Dispatcher receives the coordinate points of interest should be fetched for.
type Dispatcher interface {
	Dispatch(ctx context.Context, c geo.Coordinate)
}

// Viewport is the map view the resolver recenters on a resolved position.
type Viewport interface {
	Recenter(r geo.Region)
}

// Options tune the fallback policy.
type Options struct {
	Fallback    geo.Coordinate
	RegionDelta float64

	// FetchOnPermissionError dispatches the fallback coordinate when the
	// permission request fails. Disabled, a failed request only gets logged.
	FetchOnPermissionError bool
}

// Result describes one resolution.
type Result struct {
	Err        error
	Coordinate geo.Coordinate
	State      State
	Dispatched bool
	Recentered bool
}

// Fallback reports whether Coordinate is the fallback rather than a reading.
func (r Result) Fallback() bool {
	return r.State != StateLocationResolved
}

// Resolver runs the permission, position and fallback sequence.
type Resolver struct {
	platform   Platform
	dispatcher Dispatcher
	viewport   Viewport
	opts       Options
}

// NewResolver returns a resolver. viewport may be nil.
func NewResolver(platform Platform, dispatcher Dispatcher, viewport Viewport, opts Options) *Resolver {
	if opts.RegionDelta <= 0 {
		opts.RegionDelta = geo.DefaultRegionDelta
	}
	return &Resolver{
		platform:   platform,
		dispatcher: dispatcher,
		viewport:   viewport,
		opts:       opts,
	}
}

// Resolve determines the coordinate to show and dispatches it at most once.
// It never fails: errors end up in Result.Err.
func (r *Resolver) Resolve(ctx context.Context) Result {
	permission, err := r.platform.RequestForegroundPermission(ctx)
	if err != nil {
		res := Result{
			Coordinate: r.opts.Fallback,
			State:      StatePermissionFailed,
			Err:        &PermissionError{Err: err},
		}
		log.Error().Err(res.Err).Msg("Error while requesting permission")

		// TODO: drop the switch once the product decides whether a failed
		// request should behave like a denial.
		if r.opts.FetchOnPermissionError {
			r.dispatch(ctx, &res)
		}
		return res
	}

	if permission != PermissionGranted {
		log.Info().Stringer("permission", permission).Msg("Permission denied")
		res := Result{Coordinate: r.opts.Fallback, State: StatePermissionDenied}
		r.dispatch(ctx, &res)
		return res
	}

	log.Info().Msg("Permission granted")

	c, err := r.platform.CurrentPosition(ctx, AccuracyHighest)
	if err == nil && !c.Valid() {
		err = fmt.Errorf("%w: position %s out of range", ErrLocationUnavailable, c)
	}
	if err != nil {
		if !errors.Is(err, ErrLocationUnavailable) {
			err = fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
		}
		log.Warn().Err(err).Msg("Error while fetching current location")
		res := Result{Coordinate: r.opts.Fallback, State: StateLocationFailed, Err: err}
		r.dispatch(ctx, &res)
		return res
	}

	log.Info().Stringer("coordinate", c).Msg("Current location")

	res := Result{Coordinate: c, State: StateLocationResolved}
	if r.viewport != nil {
		r.viewport.Recenter(geo.NewRegion(c, r.opts.RegionDelta))
		res.Recentered = true
	}
	r.dispatch(ctx, &res)
	return res
}

func (r *Resolver) dispatch(ctx context.Context, res *Result) {
	log.Debug().
		Stringer("coordinate", res.Coordinate).
		Stringer("state", res.State).
		Msg("Dispatching points of interest fetch")

	r.dispatcher.Dispatch(ctx, res.Coordinate)
	res.Dispatched = true
}
