package student

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type Repository interface {
	CreateStudent(ctx context.Context, s Student) error
	GetStudent(ctx context.Context, id string) (Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) CreateStudent(ctx context.Context, s Student) error {
	query := `INSERT INTO student (id, display_name, timezone, activity_minutes, created_at)
              VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, s.Id, s.DisplayName, s.Settings.Timezone,
		s.Settings.ActivityMinutes, time.Now().UnixMilli())
	if err != nil {
		err := fmt.Errorf("could not store student: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) GetStudent(ctx context.Context, id string) (Student, error) {
	query := `SELECT id, display_name, timezone, activity_minutes FROM student WHERE id = $1`

	var s Student
	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&s.Id, &s.DisplayName, &s.Settings.Timezone, &s.Settings.ActivityMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return Student{}, ErrNoStudent
	}
	if err != nil {
		err := fmt.Errorf("could not query student: %w", err)
		log.Error(err)
		return Student{}, err
	}
	return s, nil
}

func (r *RepositoryImpl) DeleteStudent(ctx context.Context, id string) error {
	query := `DELETE FROM student WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete student: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
