package geo

import "math"

// earthRadiusM is the IUGG mean earth radius in meters, matching the
// spherical model used by geography-typed distance queries.
const earthRadiusM = 6371008.8

// DistanceM returns the great-circle distance between two points in meters,
// computed with the haversine formula.
func DistanceM(a, b Point) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}

// Bounds is a latitude/longitude box. MinLon greater than MaxLon means the
// box wraps the antimeridian.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// WrapsAntimeridian reports whether the longitude range crosses the 180th
// meridian and must be queried as two disjoint intervals.
func (b Bounds) WrapsAntimeridian() bool {
	return b.MinLon > b.MaxLon
}

// BoundingBox returns a box that fully contains the circle of radiusM meters
// around center. It is a coarse prefilter: every point within the circle is
// inside the box, but not every point in the box is within the circle.
func BoundingBox(center Point, radiusM float64) Bounds {
	latDeltaRad := radiusM / earthRadiusM
	latDelta := latDeltaRad * 180 / math.Pi

	b := Bounds{
		MinLat: math.Max(center.Latitude-latDelta, -90),
		MaxLat: math.Min(center.Latitude+latDelta, 90),
	}

	// Near the poles a circle can span all longitudes.
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	if cosLat <= 0 || latDelta >= 90-math.Abs(center.Latitude) {
		b.MinLon, b.MaxLon = -180, 180
		return b
	}

	// The circle's extreme longitudes are not on the center's parallel, so
	// the half-width is asin(sin(r)/cos(lat)), not latDelta/cos(lat); the
	// latter under-covers away from the equator.
	lonDelta := math.Asin(math.Min(1, math.Sin(latDeltaRad)/cosLat)) * 180 / math.Pi

	b.MinLon = center.Longitude - lonDelta
	b.MaxLon = center.Longitude + lonDelta
	if b.MinLon < -180 {
		b.MinLon += 360
	}
	if b.MaxLon > 180 {
		b.MaxLon -= 360
	}
	return b
}
