package schedule

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/gapfit/gapfit/internal/event_bus"
	"github.com/gapfit/gapfit/pkg/student"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	UploadSchedule(ctx context.Context, payload []byte) (Summary, error)
	GetSchedule(ctx context.Context) ([]Event, error)
	GetSummary(ctx context.Context) (Summary, error)
	AssignLocation(ctx context.Context, courseLabel string, locationRef string) (int, error)
}

type ServiceImpl struct {
	repo Repository
	bus  *event_bus.EventBus
}

func NewService(repo Repository, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, bus: bus}
}

// UploadSchedule parses an uploaded calendar, expands recurring definitions
// into concrete class occurrences and replaces the student's stored
// schedule. A malformed recurrence rule drops only the definition carrying
// it; the rest of the calendar is kept.
func (s *ServiceImpl) UploadSchedule(ctx context.Context, payload []byte) (Summary, error) {
	studentId, err := student.CurrentId(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to get current student: %w", err)
	}

	definitions, err := ParseICS(payload)
	if err != nil {
		return Summary{}, err
	}

	events := make([]Event, 0, len(definitions))
	dropped := 0
	for _, definition := range definitions {
		expanded, err := expandDefinition(definition)
		if err != nil {
			if errors.Is(err, ErrMalformedRecurrenceRule) {
				log.Warnf("dropping event definition %q: %v", definition.CourseLabel, err)
				dropped++
				continue
			}
			return Summary{}, err
		}
		events = append(events, expanded...)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})

	if err := s.repo.ReplaceSchedule(ctx, studentId, events); err != nil {
		return Summary{}, err
	}

	summary := buildSummary(events, dropped)

	if s.bus != nil {
		_ = s.bus.Publish(event_bus.NewEvent(ctx, event_bus.ScheduleUploaded, event_bus.ScheduleUploadedData{
			StudentId:     studentId,
			EventCount:    summary.TotalClasses,
			CourseCount:   len(summary.UniqueCourses),
			DroppedRules:  dropped,
			FirstClassDay: summary.StartDate,
			LastClassDay:  summary.EndDate,
		}))
	}

	return summary, nil
}

func expandDefinition(definition EventDefinition) ([]Event, error) {
	if !definition.Recurring() {
		return []Event{newEvent(definition, Occurrence{
			Start: definition.Anchor.AnchorStart,
			End:   definition.Anchor.AnchorEnd,
		})}, nil
	}

	occurrences, err := ExpandRecurrence(definition.Anchor)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(occurrences))
	for _, occurrence := range occurrences {
		events = append(events, newEvent(definition, occurrence))
	}
	return events, nil
}

func newEvent(definition EventDefinition, occurrence Occurrence) Event {
	return Event{
		UID:         uuid.NewString(),
		CourseLabel: definition.CourseLabel,
		Start:       occurrence.Start,
		End:         occurrence.End,
		RawLocation: definition.RawLocation,
	}
}

func (s *ServiceImpl) GetSchedule(ctx context.Context) ([]Event, error) {
	studentId, err := student.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current student: %w", err)
	}
	events, err := s.repo.GetEvents(ctx, studentId)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, ErrScheduleNotFound
	}
	return events, nil
}

func (s *ServiceImpl) GetSummary(ctx context.Context) (Summary, error) {
	events, err := s.GetSchedule(ctx)
	if err != nil {
		return Summary{}, err
	}
	return buildSummary(events, 0), nil
}

func (s *ServiceImpl) AssignLocation(ctx context.Context, courseLabel string, locationRef string) (int, error) {
	studentId, err := student.CurrentId(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current student: %w", err)
	}
	updated, err := s.repo.AssignLocation(ctx, studentId, courseLabel, locationRef)
	if err != nil {
		return 0, err
	}
	log.Debugf("assigned location %s to %d occurrences of %q", locationRef, updated, courseLabel)
	return updated, nil
}

func buildSummary(events []Event, dropped int) Summary {
	summary := Summary{TotalClasses: len(events), DroppedRules: dropped}

	seen := map[string]bool{}
	for _, event := range events {
		if !seen[event.CourseLabel] {
			seen[event.CourseLabel] = true
			summary.UniqueCourses = append(summary.UniqueCourses, event.CourseLabel)
		}
	}
	sort.Strings(summary.UniqueCourses)

	if len(events) > 0 {
		summary.StartDate = events[0].Start
		summary.EndDate = events[len(events)-1].Start
	}
	return summary
}
