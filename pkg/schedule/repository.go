package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Repository stores expanded schedules per student. Reads return fresh
// copies, so concurrent requests never share mutable schedule state.
type Repository interface {
	ReplaceSchedule(ctx context.Context, studentId string, events []Event) error
	GetEvents(ctx context.Context, studentId string) ([]Event, error)
	AssignLocation(ctx context.Context, studentId string, courseLabel string, locationRef string) (int, error)
	DeleteSchedule(ctx context.Context, studentId string) error
}

type RepositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ReplaceSchedule(ctx context.Context, studentId string, events []Event) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Errorf("rollback error: %v", rbErr)
		}
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_event WHERE student_id = $1`, studentId); err != nil {
		return fmt.Errorf("could not clear previous schedule: %w", err)
	}

	query := `INSERT INTO schedule_event (
                  uid,
                  student_id,
                  course_label,
                  start_time,
                  end_time,
                  utc_offset_sec,
                  raw_location,
                  location_ref
              ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not prepare query: %w", err)
		log.Error(err)
		return err
	}
	defer stmt.Close()

	for _, event := range events {
		_, offsetSec := event.Start.Zone()
		var locationRef sql.NullString
		if event.LocationRef != "" {
			locationRef = sql.NullString{String: event.LocationRef, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, event.UID, studentId, event.CourseLabel,
			event.Start.UnixMilli(), event.End.UnixMilli(), offsetSec, event.RawLocation, locationRef)
		if err != nil {
			err := fmt.Errorf("could not store schedule event: %w", err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) GetEvents(ctx context.Context, studentId string) ([]Event, error) {
	query := `SELECT uid, course_label, start_time, end_time, utc_offset_sec, raw_location, location_ref
              FROM schedule_event
              WHERE student_id = $1
              ORDER BY start_time`

	rows, err := r.db.QueryContext(ctx, query, studentId)
	if err != nil {
		err := fmt.Errorf("could not query schedule events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, 32)
	for rows.Next() {
		var event Event
		var startMs, endMs int64
		var offsetSec int
		var locationRef sql.NullString
		if err := rows.Scan(&event.UID, &event.CourseLabel, &startMs, &endMs, &offsetSec,
			&event.RawLocation, &locationRef); err != nil {
			return nil, fmt.Errorf("could not scan schedule event: %w", err)
		}
		zone := time.FixedZone("", offsetSec)
		event.Start = time.UnixMilli(startMs).In(zone)
		event.End = time.UnixMilli(endMs).In(zone)
		if locationRef.Valid {
			event.LocationRef = locationRef.String
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not read schedule events: %w", err)
	}

	return events, nil
}

func (r *RepositoryImpl) AssignLocation(ctx context.Context, studentId string, courseLabel string, locationRef string) (int, error) {
	query := `UPDATE schedule_event SET location_ref = $1 WHERE student_id = $2 AND course_label = $3`

	result, err := r.db.ExecContext(ctx, query, locationRef, studentId, courseLabel)
	if err != nil {
		err := fmt.Errorf("could not assign location: %w", err)
		log.Error(err)
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("could not read affected rows: %w", err)
	}
	return int(affected), nil
}

func (r *RepositoryImpl) DeleteSchedule(ctx context.Context, studentId string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM schedule_event WHERE student_id = $1`, studentId)
	if err != nil {
		err := fmt.Errorf("could not delete schedule: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
