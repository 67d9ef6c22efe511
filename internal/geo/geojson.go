// Package geo handles geographic data structures shared by the places client and the map view.
package geo

import "encoding/json"

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string    `json:"type" yaml:"type"`
	Features []Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
type Feature struct {
	Properties map[string]any `json:"properties" yaml:"properties"`
	Type       string         `json:"type" yaml:"type"`
	Geometry   Geometry       `json:"geometry" yaml:"geometry"`
}

// Geometry represents the geometry of a point feature.
type Geometry struct {
	Type        string    `json:"type" yaml:"type"`
	Coordinates []float64 `json:"coordinates" yaml:"coordinates"` // [Lon, Lat, ...]
}

// UnmarshalJSON keeps the leading run of numeric coordinates.
// Decoding stops at the first null or non-numeric element, so [null, null]
// yields no coordinates while [lon, lat, "elev"] keeps lon and lat.
func (g *Geometry) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type        string            `json:"type"`
		Coordinates []json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	g.Type = raw.Type
	g.Coordinates = nil
	for _, item := range raw.Coordinates {
		var v *float64
		if err := json.Unmarshal(item, &v); err != nil || v == nil {
			break
		}
		g.Coordinates = append(g.Coordinates, *v)
	}

	return nil
}

// NewFeatureCollection returns an empty collection with capacity for n features.
// Features is never nil so it encodes as [] rather than null.
func NewFeatureCollection(n int) FeatureCollection {
	return FeatureCollection{Type: "FeatureCollection", Features: make([]Feature, 0, n)}
}

// NewPointFeature builds a Point feature at c.
func NewPointFeature(c Coordinate, props map[string]any) Feature {
	return Feature{
		Type: "Feature",
		Geometry: Geometry{
			Type:        "Point",
			Coordinates: []float64{c.Longitude, c.Latitude},
		},
		Properties: props,
	}
}

// Point returns the feature position in latitude/longitude order.
// It reports false when the geometry carries fewer than two values or the
// position is outside WGS84 bounds.
func (f Feature) Point() (Coordinate, bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return Coordinate{}, false
	}
	c := Coordinate{
		Latitude:  f.Geometry.Coordinates[1],
		Longitude: f.Geometry.Coordinates[0],
	}
	return c, c.Valid()
}

// StringProperty returns a non-empty string property.
func (f Feature) StringProperty(key string) (string, bool) {
	v, ok := f.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
