package places

import (
	"github.com/woozymasta/nearby/internal/geo"
)

// Placeholders shown when a place lacks a name or an address.
const (
	UnnamedTitle       = "Unnamed Location"
	AddressUnavailable = "Address not available"
)

// PointOfInterest is a display ready place.
type PointOfInterest struct {
	Name        string         `json:"name,omitempty" yaml:"name,omitempty"`
	AddressLine string         `json:"address" yaml:"address"`
	Coordinate  geo.Coordinate `json:"coordinate" yaml:"coordinate"`
}

// Title is the marker callout title.
func (p PointOfInterest) Title() string {
	if p.Name == "" {
		return UnnamedTitle
	}
	return p.Name
}

// Feature converts the point back to a GeoJSON marker.
func (p PointOfInterest) Feature() geo.Feature {
	return geo.NewPointFeature(p.Coordinate, map[string]any{
		"title":   p.Title(),
		"address": p.AddressLine,
	})
}

// FromFeature maps one places API feature. It reports false when the
// geometry has fewer than two coordinates.
func FromFeature(f geo.Feature) (PointOfInterest, bool) {
	c, ok := f.Point()
	if !ok {
		return PointOfInterest{}, false
	}

	poi := PointOfInterest{Coordinate: c, AddressLine: AddressUnavailable}
	if name, ok := f.StringProperty("name"); ok {
		poi.Name = name
	}
	if line, ok := f.StringProperty("address_line2"); ok {
		poi.AddressLine = line
	} else if line, ok := f.StringProperty("address_line1"); ok {
		poi.AddressLine = line
	}

	return poi, true
}

// ParseFeatures maps features in order, dropping the invalid ones.
func ParseFeatures(features []geo.Feature) []PointOfInterest {
	pois := make([]PointOfInterest, 0, len(features))
	for _, f := range features {
		if poi, ok := FromFeature(f); ok {
			pois = append(pois, poi)
		}
	}
	return pois
}

// Collection renders pois as a GeoJSON marker collection.
func Collection(pois []PointOfInterest) geo.FeatureCollection {
	fc := geo.NewFeatureCollection(len(pois))
	for _, p := range pois {
		fc.Features = append(fc.Features, p.Feature())
	}
	return fc
}
