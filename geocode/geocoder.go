// Package geocode turns free-text complaint locations into map coordinates.
// Lookups go to OpenStreetMap Nominatim one at a time; anything that cannot
// be resolved gets a deterministic fallback near the centre of India.
package geocode

import "context"

// Coords is a latitude/longitude pair in degrees
type Coords struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geocoder resolves a location string. found is false when the location is
// blank or has no match; err reports transport or response failures.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (coords Coords, found bool, err error)
}
