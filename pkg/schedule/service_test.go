package schedule

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gapfit/gapfit/internal/event_bus"
	"github.com/gapfit/gapfit/pkg/student"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = student.WithStudent(context.Background(), student.Student{
	Id: "student-1",
	Settings: student.Settings{
		Timezone:        "UTC",
		ActivityMinutes: 60,
	},
})

var scheduleRepoStub = NewStubRepository()

var service Service

func setup(t *testing.T) func() {
	service = NewService(scheduleRepoStub, event_bus.NewEventBus())
	return func() {
		t.Log("Teardown after test")
		_ = scheduleRepoStub.DeleteSchedule(context.Background(), "student-1")
	}
}

func icsCalendar(events ...string) []byte {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//registrar//export//EN\r\n")
	for _, event := range events {
		b.WriteString(event)
	}
	b.WriteString("END:VCALENDAR\r\n")
	return []byte(b.String())
}

const weeklyMathEvent = "BEGIN:VEVENT\r\n" +
	"UID:math-304@campus\r\n" +
	"SUMMARY:MATH 304\r\n" +
	"LOCATION:Hargis Hall Rm 12\r\n" +
	"DTSTART:20251124T080000Z\r\n" +
	"DTEND:20251124T085000Z\r\n" +
	"RRULE:FREQ=WEEKLY;COUNT=3\r\n" +
	"END:VEVENT\r\n"

const singleChemEvent = "BEGIN:VEVENT\r\n" +
	"UID:chem-110@campus\r\n" +
	"SUMMARY:CHEM 110\r\n" +
	"DTSTART:20251124T102000Z\r\n" +
	"DTEND:20251124T111000Z\r\n" +
	"END:VEVENT\r\n"

const malformedRuleEvent = "BEGIN:VEVENT\r\n" +
	"UID:hist-201@campus\r\n" +
	"SUMMARY:HIST 201\r\n" +
	"DTSTART:20251124T130000Z\r\n" +
	"DTEND:20251124T135000Z\r\n" +
	"RRULE:FREQ=SOMETIMES;COUNT=3\r\n" +
	"END:VEVENT\r\n"

func TestServiceImpl_UploadSchedule(t *testing.T) {
	t.Run("should expand recurring classes and store the schedule sorted", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		summary, err := service.UploadSchedule(ctx, icsCalendar(weeklyMathEvent, singleChemEvent))

		// then
		require.NoError(t, err)
		assert.Equal(t, 4, summary.TotalClasses)
		assert.Equal(t, []string{"CHEM 110", "MATH 304"}, summary.UniqueCourses)
		assert.Equal(t, 0, summary.DroppedRules)

		events, err := service.GetSchedule(ctx)
		require.NoError(t, err)
		require.Len(t, events, 4)
		for i := 1; i < len(events); i++ {
			assert.False(t, events[i].Start.Before(events[i-1].Start), "events must be sorted by start")
		}
		assert.Equal(t, "MATH 304", events[0].CourseLabel)
		assert.Equal(t, 50*time.Minute, events[0].End.Sub(events[0].Start))
		assert.Equal(t, "Hargis Hall Rm 12", events[0].RawLocation)
	})

	t.Run("should drop only the definition carrying a malformed rule", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		summary, err := service.UploadSchedule(ctx, icsCalendar(weeklyMathEvent, malformedRuleEvent))

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalClasses)
		assert.Equal(t, 1, summary.DroppedRules)
		assert.Equal(t, []string{"MATH 304"}, summary.UniqueCourses)
	})

	t.Run("should replace a previously uploaded schedule", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UploadSchedule(ctx, icsCalendar(weeklyMathEvent))
		require.NoError(t, err)

		// when
		summary, err := service.UploadSchedule(ctx, icsCalendar(singleChemEvent))

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalClasses)
		events, err := service.GetSchedule(ctx)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "CHEM 110", events[0].CourseLabel)
	})

	t.Run("should reject a structurally invalid payload", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.UploadSchedule(ctx, []byte("not a calendar"))

		// then
		assert.Error(t, err)
	})

	t.Run("should return error when context has no student", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.UploadSchedule(context.Background(), icsCalendar(weeklyMathEvent))

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current student")
	})

	t.Run("should publish an upload event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		bus := event_bus.NewEventBus()
		var received event_bus.ScheduleUploadedData
		bus.Subscribe(event_bus.ScheduleUploaded, func(e event_bus.Event) error {
			received = e.Data.(event_bus.ScheduleUploadedData)
			return nil
		})
		busService := NewService(scheduleRepoStub, bus)

		// when
		_, err := busService.UploadSchedule(ctx, icsCalendar(weeklyMathEvent, singleChemEvent))

		// then
		require.NoError(t, err)
		assert.Equal(t, "student-1", received.StudentId)
		assert.Equal(t, 4, received.EventCount)
		assert.Equal(t, 2, received.CourseCount)
	})
}

func TestServiceImpl_GetSchedule(t *testing.T) {
	t.Run("should return ErrScheduleNotFound before any upload", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.GetSchedule(ctx)

		// then
		assert.ErrorIs(t, err, ErrScheduleNotFound)
	})
}

func TestServiceImpl_AssignLocation(t *testing.T) {
	t.Run("should attach a destination to every occurrence of a course", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UploadSchedule(ctx, icsCalendar(weeklyMathEvent, singleChemEvent))
		require.NoError(t, err)

		// when
		updated, err := service.AssignLocation(ctx, "MATH 304", "hargis-hall")

		// then
		require.NoError(t, err)
		assert.Equal(t, 3, updated)
		events, err := service.GetSchedule(ctx)
		require.NoError(t, err)
		for _, event := range events {
			if event.CourseLabel == "MATH 304" {
				assert.Equal(t, "hargis-hall", event.LocationRef)
			} else {
				assert.Empty(t, event.LocationRef)
			}
		}
	})

	t.Run("should report zero updates for an unknown course", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.UploadSchedule(ctx, icsCalendar(singleChemEvent))
		require.NoError(t, err)

		// when
		updated, err := service.AssignLocation(ctx, "PHYS 999", "rec-center")

		// then
		require.NoError(t, err)
		assert.Equal(t, 0, updated)
	})
}
