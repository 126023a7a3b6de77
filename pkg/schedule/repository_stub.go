package schedule

import (
	"context"
	"sync"
)

// StubRepository is an in-memory Repository used in tests. Like the SQL
// implementation it hands out copies, never its internal slices.
type StubRepository struct {
	mu   sync.Mutex
	data map[string][]Event
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string][]Event{}}
}

func (r *StubRepository) ReplaceSchedule(ctx context.Context, studentId string, events []Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[studentId] = append([]Event(nil), events...)
	return nil
}

func (r *StubRepository) GetEvents(ctx context.Context, studentId string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.data[studentId]...), nil
}

func (r *StubRepository) AssignLocation(ctx context.Context, studentId string, courseLabel string, locationRef string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	updated := 0
	events := r.data[studentId]
	for i := range events {
		if events[i].CourseLabel == courseLabel {
			events[i].LocationRef = locationRef
			updated++
		}
	}
	r.data[studentId] = events
	return updated, nil
}

func (r *StubRepository) DeleteSchedule(ctx context.Context, studentId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, studentId)
	return nil
}
