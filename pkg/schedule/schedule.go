package schedule

import (
	"errors"
	"time"
)

var (
	// ErrMalformedRecurrenceRule marks a rule that could not be evaluated
	// under either the primary or the retry path. The failure is isolated to
	// the single event definition carrying the rule.
	ErrMalformedRecurrenceRule = errors.New("malformed recurrence rule")

	// ErrScheduleNotFound indicates no schedule has been uploaded for the
	// student.
	ErrScheduleNotFound = errors.New("schedule not found")
)

// Event is one concrete dated class occurrence. Events are immutable once
// produced by parsing or expansion; location assignment replaces the stored
// rows rather than mutating shared state.
type Event struct {
	UID         string
	CourseLabel string
	Start       time.Time
	End         time.Time
	RawLocation string
	// LocationRef is the resolved destination id, or empty while unresolved.
	LocationRef string
}

// RecurrenceRule is a single recurring definition: the first occurrence's
// start/end and the raw rule text. It is consumed once by expansion and not
// retained.
type RecurrenceRule struct {
	AnchorStart time.Time
	AnchorEnd   time.Time
	RuleText    string
}

// Occurrence is one expanded start/end pair.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Summary describes an uploaded schedule.
type Summary struct {
	TotalClasses  int
	UniqueCourses []string
	StartDate     time.Time
	EndDate       time.Time
	DroppedRules  int
}
