package freetime

import (
	"fmt"
	"sort"
	"time"

	"github.com/gapfit/gapfit/internal/utils"
	"github.com/gapfit/gapfit/pkg/schedule"
)

// FreeBlock is a gap between two classes on one calendar day, or the open
// stretch before the first class / after the last one. Previous and Next are
// nil at the edges of the day.
type FreeBlock struct {
	Date             string
	Start            time.Time
	End              time.Time
	AvailableMinutes int
	Previous         *schedule.Event
	Next             *schedule.Event
}

// Anchored reports whether the block sits between two classes. Only anchored
// blocks can carry a round-trip suggestion; edge blocks have no second leg to
// walk back to.
func (b FreeBlock) Anchored() bool {
	return b.Previous != nil && b.Next != nil
}

// Window bounds the day in which edge blocks are derived.
type Window struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// ParseWindow parses a pair of "HH:MM" clock strings.
func ParseWindow(start, end string) (Window, error) {
	var w Window
	if _, err := fmt.Sscanf(start, "%d:%d", &w.StartHour, &w.StartMinute); err != nil {
		return Window{}, fmt.Errorf("invalid day start %q: %w", start, err)
	}
	if _, err := fmt.Sscanf(end, "%d:%d", &w.EndHour, &w.EndMinute); err != nil {
		return Window{}, fmt.Errorf("invalid day end %q: %w", end, err)
	}
	return w, nil
}

// FindFreeBlocks derives the free blocks of a schedule. Events are grouped by
// calendar date; within a day a block opens only where one class ends strictly
// before the next begins. Back-to-back and overlapping classes produce no
// block.
func FindFreeBlocks(events []schedule.Event, window Window) []FreeBlock {
	byDate := map[string][]schedule.Event{}
	dates := make([]string, 0)
	for _, event := range events {
		key := event.Start.Format("2006-01-02")
		if _, seen := byDate[key]; !seen {
			dates = append(dates, key)
		}
		byDate[key] = append(byDate[key], event)
	}
	sort.Strings(dates)

	blocks := make([]FreeBlock, 0)
	for _, date := range dates {
		dayEvents := byDate[date]
		sort.SliceStable(dayEvents, func(i, j int) bool {
			return dayEvents[i].Start.Before(dayEvents[j].Start)
		})
		blocks = append(blocks, dayBlocks(date, dayEvents, window)...)
	}
	return blocks
}

func dayBlocks(date string, events []schedule.Event, window Window) []FreeBlock {
	blocks := make([]FreeBlock, 0)

	first := events[0]
	dayStart := time.Date(first.Start.Year(), first.Start.Month(), first.Start.Day(),
		window.StartHour, window.StartMinute, 0, 0, first.Start.Location())
	if minutes := utils.MinutesBetween(dayStart, first.Start); minutes > 0 {
		blocks = append(blocks, newBlock(date, dayStart, first.Start, nil, &events[0]))
	}

	// latestEnd absorbs overlapping classes: a gap only opens past the
	// furthest end seen so far.
	latestEnd := first.End
	latestIdx := 0
	for i := 1; i < len(events); i++ {
		next := events[i]
		if next.Start.After(latestEnd) {
			if minutes := utils.MinutesBetween(latestEnd, next.Start); minutes > 0 {
				blocks = append(blocks, newBlock(date, latestEnd, next.Start, &events[latestIdx], &events[i]))
			}
		}
		if next.End.After(latestEnd) {
			latestEnd = next.End
			latestIdx = i
		}
	}

	last := events[latestIdx]
	dayEnd := time.Date(last.End.Year(), last.End.Month(), last.End.Day(),
		window.EndHour, window.EndMinute, 0, 0, last.End.Location())
	if minutes := utils.MinutesBetween(latestEnd, dayEnd); minutes > 0 {
		blocks = append(blocks, newBlock(date, latestEnd, dayEnd, &events[latestIdx], nil))
	}

	return blocks
}

func newBlock(date string, start, end time.Time, previous, next *schedule.Event) FreeBlock {
	return FreeBlock{
		Date:             date,
		Start:            start,
		End:              end,
		AvailableMinutes: utils.MinutesBetween(start, end),
		Previous:         previous,
		Next:             next,
	}
}
