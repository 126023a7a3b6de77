package geo

import (
	"errors"
	"math"
)

// ErrInvalidCoordinates indicates a point with an out-of-range or missing
// latitude/longitude. This is a caller bug and is always propagated.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// Point is a geographic coordinate (WGS 84).
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return ErrInvalidCoordinates
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

// Bounds is a geographic bounding box. Callers may use it to reject points
// outside the campus area before accepting them as reference data.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLon float64 `json:"minLon"`
	MaxLat float64 `json:"maxLat"`
	MaxLon float64 `json:"maxLon"`
}

func (b Bounds) Contains(p Point) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

const earthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between two points in meters,
// using the haversine formula.
func Distance(a, b Point) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c, nil
}

// MetersToMiles converts meters to miles.
func MetersToMiles(meters float64) float64 {
	return meters * 0.000621371
}
