package event_bus

import "time"

// ScheduleUploadedData is published after a calendar upload has been parsed,
// expanded and stored.
type ScheduleUploadedData struct {
	StudentId     string
	EventCount    int
	CourseCount   int
	DroppedRules  int
	FirstClassDay time.Time
	LastClassDay  time.Time
}

// SuggestionsGeneratedData is published after a suggestion run completes.
type SuggestionsGeneratedData struct {
	StudentId       string
	BlockCount      int
	SuggestionCount int
	SkippedBlocks   int
	Provider        string
}
