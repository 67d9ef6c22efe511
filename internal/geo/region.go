package geo

import "fmt"

// DefaultRegionDelta is the map span used around a resolved coordinate.
const DefaultRegionDelta = 0.2

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// String formats the coordinate as "lat,lon".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}

// Valid reports whether both axes are inside WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Region is a map viewport: a center plus the span shown in each axis.
type Region struct {
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	LatitudeDelta  float64 `json:"latitudeDelta"`
	LongitudeDelta float64 `json:"longitudeDelta"`
}

// NewRegion frames c with the same delta on both axes.
// Non-positive delta falls back to DefaultRegionDelta.
func NewRegion(c Coordinate, delta float64) Region {
	if delta <= 0 {
		delta = DefaultRegionDelta
	}

	return Region{
		Latitude:       c.Latitude,
		Longitude:      c.Longitude,
		LatitudeDelta:  delta,
		LongitudeDelta: delta,
	}
}

// Center returns the region center.
func (r Region) Center() Coordinate {
	return Coordinate{Latitude: r.Latitude, Longitude: r.Longitude}
}
