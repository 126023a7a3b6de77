package geo

import (
	"math"

	"github.com/gapfit/gapfit/internal/config"
)

// WalkEstimator converts distances into walking-time estimates. Estimates are
// always rounded up so the service never under-promises time availability.
type WalkEstimator struct {
	speedMph      float64
	terrainBuffer float64
}

func NewWalkEstimator(cfg config.Walking) *WalkEstimator {
	return &WalkEstimator{
		speedMph:      cfg.SpeedMph,
		terrainBuffer: cfg.TerrainBuffer,
	}
}

// Minutes returns the estimated walking time between a and b in whole
// minutes. It fails with ErrInvalidCoordinates on out-of-range input.
func (e *WalkEstimator) Minutes(a, b Point) (int, error) {
	meters, err := Distance(a, b)
	if err != nil {
		return 0, err
	}

	miles := MetersToMiles(meters)
	minutes := miles / e.speedMph * 60 * e.terrainBuffer

	return int(math.Ceil(minutes)), nil
}

// Info bundles the distance measurements between two points.
type Info struct {
	DistanceMeters float64 `json:"distanceMeters"`
	DistanceMiles  float64 `json:"distanceMiles"`
	WalkingMinutes int     `json:"walkingMinutes"`
}

// Measure returns distance and walking time between a and b.
func (e *WalkEstimator) Measure(a, b Point) (Info, error) {
	meters, err := Distance(a, b)
	if err != nil {
		return Info{}, err
	}
	minutes, err := e.Minutes(a, b)
	if err != nil {
		return Info{}, err
	}
	return Info{
		DistanceMeters: math.Round(meters*100) / 100,
		DistanceMiles:  math.Round(MetersToMiles(meters)*1000) / 1000,
		WalkingMinutes: minutes,
	}, nil
}
