package geocode

import (
	"context"
	"log/slog"
	"math"
)

// IndiaCenter is where unresolved locations are pinned
var IndiaCenter = Coords{Lat: 20.5937, Lng: 78.9629}

// Fallback returns a coordinate near IndiaCenter, offset by index so that
// several fallback pins do not stack. Same index, same result.
func Fallback(index int) Coords {
	offset := float64(posMod(index, 5)) * 0.05
	angle := float64(posMod(index, 8)) * 0.8
	return Coords{
		Lat: IndiaCenter.Lat + offset*math.Cos(angle),
		Lng: IndiaCenter.Lng + offset*math.Sin(angle),
	}
}

func posMod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// ResolveWithFallback geocodes location and falls back to Fallback(index)
// on any miss or failure. It never fails.
func ResolveWithFallback(ctx context.Context, g Geocoder, location string, index int) Coords {
	c, _ := resolve(ctx, g, location, index)
	return c
}

// resolve also reports whether the fallback was used
func resolve(ctx context.Context, g Geocoder, location string, index int) (Coords, bool) {
	c, found, err := g.Geocode(ctx, location)
	if err != nil {
		slog.Debug("geocoding failed, using fallback", "location", location, "error", err)
	}
	if err != nil || !found {
		return Fallback(index), true
	}
	return c, false
}
