package student

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

type Service interface {
	CreateStudent(ctx context.Context, s Student) (Student, error)
	GetStudent(ctx context.Context, id string) (Student, error)
	GetCurrentStudent(ctx context.Context) (Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

// Provider exposes only current-student resolution for packages that never
// create or delete students.
type Provider interface {
	GetCurrentStudent(ctx context.Context) (Student, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateStudent(ctx context.Context, student Student) (Student, error) {
	if student.Id == "" {
		student.Id = uuid.NewString()
	}
	if student.Settings.Timezone == "" {
		student.Settings.Timezone = "UTC"
	}
	if student.Settings.ActivityMinutes <= 0 {
		student.Settings.ActivityMinutes = 60
	}
	if err := s.repo.CreateStudent(ctx, student); err != nil {
		return Student{}, err
	}
	return student, nil
}

func (s *ServiceImpl) GetStudent(ctx context.Context, id string) (Student, error) {
	return s.repo.GetStudent(ctx, id)
}

func (s *ServiceImpl) GetCurrentStudent(ctx context.Context) (Student, error) {
	id, err := CurrentId(ctx)
	if err != nil {
		return Student{}, fmt.Errorf("failed to get current student: %w", err)
	}
	return s.repo.GetStudent(ctx, id)
}

func (s *ServiceImpl) DeleteStudent(ctx context.Context, id string) error {
	return s.repo.DeleteStudent(ctx, id)
}
