package geo

import (
	"fmt"
	"regexp"
	"strconv"
)

// Point is a geographic coordinate in signed decimal degrees (WGS 84).
type Point struct {
	Latitude  float64
	Longitude float64
}

// ewktPointRe matches the textual point format used on the wire:
// SRID=4326;POINT(<longitude> <latitude>) with longitude first.
var ewktPointRe = regexp.MustCompile(`^SRID=4326;POINT\((-?\d+(?:\.\d+)?) (-?\d+(?:\.\d+)?)\)$`)

// NewPoint builds a Point and rejects coordinates outside the valid
// latitude/longitude ranges.
func NewPoint(latitude, longitude float64) (Point, error) {
	if latitude < -90 || latitude > 90 {
		return Point{}, fmt.Errorf("latitude %v out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return Point{}, fmt.Errorf("longitude %v out of range [-180, 180]", longitude)
	}
	return Point{Latitude: latitude, Longitude: longitude}, nil
}

// ParseEWKT parses a SRID=4326;POINT(lon lat) literal into a Point.
func ParseEWKT(s string) (Point, error) {
	m := ewktPointRe.FindStringSubmatch(s)
	if m == nil {
		return Point{}, fmt.Errorf("invalid location format %q, expected SRID=4326;POINT(lon lat)", s)
	}
	lon, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude in location: %w", err)
	}
	lat, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude in location: %w", err)
	}
	return NewPoint(lat, lon)
}

// EWKT renders the point back into the wire literal, longitude first.
func (p Point) EWKT() string {
	return "SRID=4326;POINT(" +
		strconv.FormatFloat(p.Longitude, 'f', -1, 64) + " " +
		strconv.FormatFloat(p.Latitude, 'f', -1, 64) + ")"
}
