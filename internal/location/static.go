package location

import (
	"context"
	"fmt"

	"github.com/woozymasta/nearby/internal/geo"
)

// FixedPermission answers every permission request with itself.
type FixedPermission Permission

// RequestForegroundPermission implements PermissionRequester.
func (p FixedPermission) RequestForegroundPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionUndetermined, err
	}
	return Permission(p), nil
}

// StaticPosition reports a configured device position.
type StaticPosition struct {
	Coordinate *geo.Coordinate
}

// CurrentPosition implements PositionReader. A nil coordinate is a failed read.
func (s StaticPosition) CurrentPosition(ctx context.Context, _ Accuracy) (geo.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinate{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	if s.Coordinate == nil {
		return geo.Coordinate{}, fmt.Errorf("%w: no device position configured", ErrLocationUnavailable)
	}
	return *s.Coordinate, nil
}
