package student

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
)

type contextKey string

const StudentKey contextKey = "student"

var ErrNoStudent = errors.New("student not found")

// CurrentId retrieves the current student's id from the context. Returns
// ErrNoStudent if no student is present.
func CurrentId(ctx context.Context) (string, error) {
	s, ok := ctx.Value(StudentKey).(Student)
	if !ok {
		log.Trace("student not found in context")
		return "", ErrNoStudent
	}
	return s.Id, nil
}

func CurrentStudent(ctx context.Context) (Student, error) {
	s, ok := ctx.Value(StudentKey).(Student)
	if !ok {
		log.Trace("student not found in context")
		return Student{}, ErrNoStudent
	}
	return s, nil
}

func WithStudent(ctx context.Context, s Student) context.Context {
	return context.WithValue(ctx, StudentKey, s)
}
