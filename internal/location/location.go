// Package location resolves the coordinate the map is centered on.
//
// The host platform is asked for foreground location permission and, when
// granted, for a high accuracy position. Denial and read failures fall back to
// a fixed coordinate. Failures never leave the package as errors; they are
// logged and reported in the Result.
package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/woozymasta/nearby/internal/geo"
)

// ErrLocationUnavailable is wrapped by every failed position read.
var ErrLocationUnavailable = errors.New("location unavailable")

// Permission is the answer of a foreground permission request.
type Permission int

// Permission values.
const (
	PermissionUndetermined Permission = iota
	PermissionGranted
	PermissionDenied
)

func (p Permission) String() string {
	switch p {
	case PermissionGranted:
		return "granted"
	case PermissionDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

// Accuracy is the requested precision of a position reading.
type Accuracy int

// Accuracy values, from coarse to fine.
const (
	AccuracyBalanced Accuracy = iota
	AccuracyHigh
	AccuracyHighest
)

func (a Accuracy) String() string {
	switch a {
	case AccuracyHigh:
		return "high"
	case AccuracyHighest:
		return "highest"
	default:
		return "balanced"
	}
}

// PermissionError is returned when the permission request itself fails,
// as opposed to the user answering it.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("request location permission: %v", e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

// PermissionRequester asks the user for foreground location access.
type PermissionRequester interface {
	RequestForegroundPermission(ctx context.Context) (Permission, error)
}

// PositionReader reads the current device position.
type PositionReader interface {
	CurrentPosition(ctx context.Context, accuracy Accuracy) (geo.Coordinate, error)
}

// Platform is the host location service.
type Platform interface {
	PermissionRequester
	PositionReader
}

// Host combines a permission source and a position source into a Platform.
type Host struct {
	PermissionRequester
	PositionReader
}
