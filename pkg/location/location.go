package location

import (
	"strings"
	"time"

	"github.com/gapfit/gapfit/pkg/geo"
)

// Destination is one campus location from the reference dataset. The dataset
// is loaded once at startup and never mutated afterwards.
type Destination struct {
	Id          string
	Name        string
	Address     string
	Coordinates geo.Point
	Category    string
	// Hours maps lowercase weekday names to opening hours. A nil map means
	// the hours are unknown and the destination is treated as available; a
	// day missing from a non-nil map means closed on that day.
	Hours map[string]Hours
}

// Hours is an open/close pair in "HH:MM" 24h format.
type Hours struct {
	Open  string
	Close string
}

// OpenAt reports whether the destination is open at the given instant.
// Destinations without hours data are assumed open.
func (d Destination) OpenAt(t time.Time) bool {
	if d.Hours == nil {
		return true
	}
	day := strings.ToLower(t.Weekday().String())
	hours, ok := d.Hours[day]
	if !ok {
		return false
	}
	open, err1 := parseClock(hours.Open)
	close, err2 := parseClock(hours.Close)
	if err1 != nil || err2 != nil {
		return false
	}
	minuteOfDay := t.Hour()*60 + t.Minute()
	return minuteOfDay >= open && minuteOfDay <= close
}

// OpenDuring reports whether the destination is open for the whole interval
// [start, end]. Both instants must fall on the same day for hours to apply.
func (d Destination) OpenDuring(start, end time.Time) bool {
	return d.OpenAt(start) && d.OpenAt(end)
}

func parseClock(v string) (int, error) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
