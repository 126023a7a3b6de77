package suggestion

import (
	"time"
)

// Suggestion is one ranked, user-facing recommendation for a free block.
type Suggestion struct {
	Rank            int
	Date            string
	BlockStart      time.Time
	BlockEnd        time.Time
	LocationId      string
	LocationName    string
	LocationAddress string
	ActivityMinutes int
	ConfidenceScore float64
	Reasoning       string
	Commute         CommuteInfo
	PreviousClass   string
	NextClass       string
}

// CommuteInfo carries the walking breakdown behind a suggestion.
type CommuteInfo struct {
	MinutesOutbound     int
	MinutesReturn       int
	TotalCommuteMinutes int
	SpareMinutes        int
}

// SkippedBlock reports a free block that could not be analyzed, with the
// reason. A skipped block is not the same as a block with no feasible
// destination; the latter simply yields zero suggestions.
type SkippedBlock struct {
	Date   string
	Start  time.Time
	End    time.Time
	Reason string
}

// Result is the outcome of one suggestion run.
type Result struct {
	Suggestions []Suggestion
	Skipped     []SkippedBlock
	// Provider names the ranking source that produced the suggestions,
	// "optimizer" or "oracle".
	Provider string
}
