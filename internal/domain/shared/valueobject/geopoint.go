package valueobject

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean earth radius used for haversine distance.
const earthRadiusMeters = 6371000.0

// GeoPoint is a value object representing a WGS84 coordinate pair.
// It is immutable; the zero value is not a valid point, use NewGeoPoint.
type GeoPoint struct {
	latitude  float64
	longitude float64
}

// NewGeoPoint creates a GeoPoint after validating the coordinate ranges
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < -90 || latitude > 90 {
		return GeoPoint{}, fmt.Errorf("latitude %f out of range [-90, 90]", latitude)
	}
	if longitude < -180 || longitude > 180 {
		return GeoPoint{}, fmt.Errorf("longitude %f out of range [-180, 180]", longitude)
	}
	return GeoPoint{latitude: latitude, longitude: longitude}, nil
}

// Latitude returns the latitude in decimal degrees
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// DistanceMeters returns the great-circle distance to another point
// using the haversine formula.
func (p GeoPoint) DistanceMeters(other GeoPoint) float64 {
	lat1 := p.latitude * math.Pi / 180
	lat2 := other.latitude * math.Pi / 180
	dLat := (other.latitude - p.latitude) * math.Pi / 180
	dLng := (other.longitude - p.longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// WithinMeters reports whether another point lies within the given distance
func (p GeoPoint) WithinMeters(other GeoPoint, meters float64) bool {
	return p.DistanceMeters(other) <= meters
}

// Equals compares two points for exact coordinate equality
func (p GeoPoint) Equals(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String returns a "lat,lng" representation
func (p GeoPoint) String() string {
	return fmt.Sprintf("%f,%f", p.latitude, p.longitude)
}
