package location

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeLocationsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "locations.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write locations file: %v", err)
	}
	return path
}

func TestLoadCatalog(t *testing.T) {
	t.Run("loads destinations with hours", func(t *testing.T) {
		path := writeLocationsFile(t, `{
			"locations": [
				{
					"id": "student-rec",
					"name": "Student Recreation Center",
					"address": "797 Olsen Blvd",
					"type": "gym",
					"coordinates": {"latitude": 30.6076, "longitude": -96.3433},
					"hours": {"monday": {"open": "06:00", "close": "23:00"}}
				},
				{
					"id": "zach",
					"name": "Zachry Engineering Education Complex",
					"type": "academic",
					"coordinates": {"latitude": 30.6212, "longitude": -96.3404}
				}
			]
		}`)

		catalog, err := LoadCatalog(path)
		assert.NoError(t, err)
		assert.Equal(t, 2, catalog.Size())

		rec, ok := catalog.ByID("student-rec")
		assert.True(t, ok)
		assert.Equal(t, "Student Recreation Center", rec.Name)
		assert.Equal(t, "gym", rec.Category)
		assert.Equal(t, Hours{Open: "06:00", Close: "23:00"}, rec.Hours["monday"])

		gyms := catalog.ByCategory("gym")
		assert.Len(t, gyms, 1)
		assert.Equal(t, "student-rec", gyms[0].Id)
	})

	t.Run("rejects entry with invalid coordinates", func(t *testing.T) {
		path := writeLocationsFile(t, `{
			"locations": [
				{"id": "bad", "name": "Bad", "type": "gym", "coordinates": {"latitude": 95.0, "longitude": 0.0}}
			]
		}`)

		_, err := LoadCatalog(path)
		assert.Error(t, err)
		assert.ErrorContains(t, err, "bad")
	})

	t.Run("rejects entry without id", func(t *testing.T) {
		path := writeLocationsFile(t, `{
			"locations": [
				{"name": "No Id", "type": "gym", "coordinates": {"latitude": 30.6, "longitude": -96.3}}
			]
		}`)

		_, err := LoadCatalog(path)
		assert.Error(t, err)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		_, err := LoadCatalog("does/not/exist.json")
		assert.Error(t, err)
	})
}

func TestDestinationOpenAt(t *testing.T) {
	rec := Destination{
		Id: "student-rec",
		Hours: map[string]Hours{
			"monday": {Open: "06:00", Close: "23:00"},
		},
	}

	// 2025-11-24 is a Monday.
	monday := func(hour, minute int) time.Time {
		return time.Date(2025, time.November, 24, hour, minute, 0, 0, time.UTC)
	}

	t.Run("open inside hours", func(t *testing.T) {
		assert.True(t, rec.OpenAt(monday(14, 0)))
	})

	t.Run("closed before opening", func(t *testing.T) {
		assert.False(t, rec.OpenAt(monday(5, 30)))
	})

	t.Run("closed on a day without hours", func(t *testing.T) {
		tuesday := monday(14, 0).AddDate(0, 0, 1)
		assert.False(t, rec.OpenAt(tuesday))
	})

	t.Run("destinations without hours data are treated as open", func(t *testing.T) {
		unknown := Destination{Id: "zach"}
		assert.True(t, unknown.OpenAt(monday(3, 0)))
	})

	t.Run("open during a whole interval", func(t *testing.T) {
		assert.True(t, rec.OpenDuring(monday(10, 0), monday(11, 0)))
		assert.False(t, rec.OpenDuring(monday(22, 30), monday(23, 30)))
	})
}
