package geo

import (
	"testing"

	"github.com/gapfit/gapfit/internal/config"
	"github.com/stretchr/testify/assert"
)

var defaultWalking = config.Walking{SpeedMph: 3.5, TerrainBuffer: 1.2}

func TestDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		p := Point{Latitude: 30.612, Longitude: -96.341}
		d, err := Distance(p, p)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, d)
	})

	t.Run("one hundredth of a degree of latitude is about 1112 meters", func(t *testing.T) {
		a := Point{Latitude: 30.61, Longitude: -96.34}
		b := Point{Latitude: 30.62, Longitude: -96.34}
		d, err := Distance(a, b)
		assert.NoError(t, err)
		assert.InDelta(t, 1112.0, d, 1.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Latitude: 30.6123, Longitude: -96.3414}
		b := Point{Latitude: 30.6071, Longitude: -96.3522}
		dab, err := Distance(a, b)
		assert.NoError(t, err)
		dba, err := Distance(b, a)
		assert.NoError(t, err)
		assert.Equal(t, dab, dba)
	})

	t.Run("latitude out of range", func(t *testing.T) {
		a := Point{Latitude: 91, Longitude: 0}
		_, err := Distance(a, Point{})
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})

	t.Run("longitude out of range", func(t *testing.T) {
		b := Point{Latitude: 0, Longitude: -180.5}
		_, err := Distance(Point{}, b)
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})
}

func TestWalkEstimatorMinutes(t *testing.T) {
	estimator := NewWalkEstimator(defaultWalking)

	t.Run("rounds up, never down", func(t *testing.T) {
		// ~1112 m at 3.5 mph with a 20% terrain buffer is ~14.2 minutes.
		a := Point{Latitude: 30.61, Longitude: -96.34}
		b := Point{Latitude: 30.62, Longitude: -96.34}
		minutes, err := estimator.Minutes(a, b)
		assert.NoError(t, err)
		assert.Equal(t, 15, minutes)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Point{Latitude: 30.6123, Longitude: -96.3414}
		b := Point{Latitude: 30.6071, Longitude: -96.3522}
		mab, err := estimator.Minutes(a, b)
		assert.NoError(t, err)
		mba, err := estimator.Minutes(b, a)
		assert.NoError(t, err)
		assert.Equal(t, mab, mba)
	})

	t.Run("zero distance is zero minutes", func(t *testing.T) {
		p := Point{Latitude: 30.61, Longitude: -96.34}
		minutes, err := estimator.Minutes(p, p)
		assert.NoError(t, err)
		assert.Equal(t, 0, minutes)
	})

	t.Run("propagates invalid coordinates", func(t *testing.T) {
		_, err := estimator.Minutes(Point{Latitude: -100}, Point{})
		assert.ErrorIs(t, err, ErrInvalidCoordinates)
	})
}

func TestBoundsContains(t *testing.T) {
	campus := Bounds{MinLat: 30.56, MinLon: -96.40, MaxLat: 30.65, MaxLon: -96.30}

	assert.True(t, campus.Contains(Point{Latitude: 30.61, Longitude: -96.34}))
	assert.False(t, campus.Contains(Point{Latitude: 30.70, Longitude: -96.34}))
	assert.False(t, campus.Contains(Point{Latitude: 30.61, Longitude: -96.20}))
}
