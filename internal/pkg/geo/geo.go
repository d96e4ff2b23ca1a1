package geo

import "math"

// Coordinates is a point on Earth in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DistanceMeters menghitung jarak antara dua titik koordinat dalam Meter.
func DistanceMeters(a, b Coordinates) float64 {
	const earthRadius = 6371000 // Jari-jari bumi dalam Meter

	// Konversi ke Radian
	dLat := (b.Latitude - a.Latitude) * (math.Pi / 180.0)
	dLon := (b.Longitude - a.Longitude) * (math.Pi / 180.0)

	lat1Rad := a.Latitude * (math.Pi / 180.0)
	lat2Rad := b.Latitude * (math.Pi / 180.0)

	// Rumus Haversine
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadius * c
}

// Verification is the result of a geofence membership check.
type Verification struct {
	WithinRadius   bool `json:"within_radius"`
	DistanceMeters int  `json:"distance_meters"`
}

// Verify decides whether user is inside the office geofence. The distance is
// rounded to whole meters before comparison, so a user at exactly radiusMeters
// is inside. This function is the only place that makes the inside/outside
// decision.
func Verify(user, office Coordinates, radiusMeters int) Verification {
	distance := int(math.Round(DistanceMeters(user, office)))
	return Verification{
		WithinRadius:   distance <= radiusMeters,
		DistanceMeters: distance,
	}
}
