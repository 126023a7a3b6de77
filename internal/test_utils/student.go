package test_utils

import (
	"context"

	"github.com/gapfit/gapfit/pkg/student"
)

type TestStudentProvider struct{}

func (p TestStudentProvider) GetCurrentStudent(ctx context.Context) (student.Student, error) {
	return student.Student{
		Id:          "test-student",
		DisplayName: "Test Student",
		Settings: student.Settings{
			Timezone:        "America/Chicago",
			ActivityMinutes: 60,
		},
	}, nil
}
