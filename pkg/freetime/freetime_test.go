package freetime

import (
	"testing"
	"time"

	"github.com/gapfit/gapfit/pkg/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var campusDay = Window{StartHour: 8, EndHour: 18}

func classAt(label string, day int, startHour, startMinute, endHour, endMinute int) schedule.Event {
	return schedule.Event{
		UID:         label,
		CourseLabel: label,
		Start:       time.Date(2025, time.November, day, startHour, startMinute, 0, 0, time.UTC),
		End:         time.Date(2025, time.November, day, endHour, endMinute, 0, 0, time.UTC),
	}
}

func TestFindFreeBlocks(t *testing.T) {
	t.Run("should find the gap between two morning classes", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 8, 0, 8, 50),
			classAt("CHEM 110", 24, 10, 20, 11, 10),
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		var anchored []FreeBlock
		for _, block := range blocks {
			if block.Anchored() {
				anchored = append(anchored, block)
			}
		}
		require.Len(t, anchored, 1)
		gap := anchored[0]
		assert.Equal(t, "2025-11-24", gap.Date)
		assert.Equal(t, 90, gap.AvailableMinutes)
		assert.Equal(t, "MATH 304", gap.Previous.CourseLabel)
		assert.Equal(t, "CHEM 110", gap.Next.CourseLabel)
	})

	t.Run("should include edge blocks bounded by the day window", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 9, 0, 9, 50),
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		require.Len(t, blocks, 2)
		leading, trailing := blocks[0], blocks[1]
		assert.Nil(t, leading.Previous)
		assert.Equal(t, 60, leading.AvailableMinutes)
		assert.Nil(t, trailing.Next)
		assert.Equal(t, 8*60+10, trailing.AvailableMinutes)
		assert.False(t, leading.Anchored())
		assert.False(t, trailing.Anchored())
	})

	t.Run("should not open a block between back-to-back classes", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 8, 0, 8, 50),
			classAt("CHEM 110", 24, 8, 50, 9, 40),
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		for _, block := range blocks {
			assert.False(t, block.Anchored())
		}
	})

	t.Run("should not open a block for a sub-minute gap", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 8, 0, 8, 50),
			{
				UID:         "CHEM 110",
				CourseLabel: "CHEM 110",
				Start:       time.Date(2025, time.November, 24, 8, 50, 30, 0, time.UTC),
				End:         time.Date(2025, time.November, 24, 9, 40, 0, 0, time.UTC),
			},
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		for _, block := range blocks {
			assert.False(t, block.Anchored())
			assert.Greater(t, block.AvailableMinutes, 0)
		}
	})

	t.Run("should absorb overlapping classes into one busy stretch", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 9, 0, 11, 0),
			classAt("CHEM 110", 24, 10, 0, 10, 30),
			classAt("HIST 201", 24, 12, 0, 12, 50),
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		var anchored []FreeBlock
		for _, block := range blocks {
			if block.Anchored() {
				anchored = append(anchored, block)
			}
		}
		require.Len(t, anchored, 1)
		assert.Equal(t, "MATH 304", anchored[0].Previous.CourseLabel)
		assert.Equal(t, "HIST 201", anchored[0].Next.CourseLabel)
		assert.Equal(t, 60, anchored[0].AvailableMinutes)
	})

	t.Run("should keep days independent", func(t *testing.T) {
		// given
		events := []schedule.Event{
			classAt("MATH 304", 24, 8, 0, 8, 50),
			classAt("MATH 304", 25, 8, 0, 8, 50),
		}

		// when
		blocks := FindFreeBlocks(events, campusDay)

		// then
		for _, block := range blocks {
			assert.False(t, block.Anchored(), "no cross-day gap may appear")
		}
		dates := map[string]bool{}
		for _, block := range blocks {
			dates[block.Date] = true
		}
		assert.Len(t, dates, 2)
	})

	t.Run("should return no blocks for an empty schedule", func(t *testing.T) {
		// when
		blocks := FindFreeBlocks(nil, campusDay)

		// then
		assert.Empty(t, blocks)
	})
}

func TestParseWindow(t *testing.T) {
	t.Run("should parse HH:MM bounds", func(t *testing.T) {
		window, err := ParseWindow("08:00", "18:30")
		require.NoError(t, err)
		assert.Equal(t, 8, window.StartHour)
		assert.Equal(t, 30, window.EndMinute)
	})

	t.Run("should reject malformed bounds", func(t *testing.T) {
		_, err := ParseWindow("eight", "18:00")
		assert.Error(t, err)
	})
}
