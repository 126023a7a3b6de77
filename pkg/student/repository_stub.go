package student

import (
	"context"
	"sync"
)

// StubRepository is an in-memory Repository used in tests.
type StubRepository struct {
	mu   sync.Mutex
	data map[string]Student
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]Student{}}
}

func (r *StubRepository) CreateStudent(ctx context.Context, s Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[s.Id] = s
	return nil
}

func (r *StubRepository) GetStudent(ctx context.Context, id string) (Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.data[id]
	if !ok {
		return Student{}, ErrNoStudent
	}
	return s, nil
}

func (r *StubRepository) DeleteStudent(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, id)
	return nil
}
