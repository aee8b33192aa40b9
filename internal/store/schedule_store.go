package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
	"github.com/jmoiron/sqlx"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

const scheduleColumns = "id, user_id, title, trip_start_date, trip_end_date, created_at, updated_at"

// scheduleRow is the scan target for 'schedules'; DATE columns arrive as midnight UTC.
type scheduleRow struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Title         string    `db:"title"`
	TripStartDate time.Time `db:"trip_start_date"`
	TripEndDate   time.Time `db:"trip_end_date"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (r scheduleRow) model() models.Schedule {
	return models.Schedule{
		ID:            r.ID,
		UserID:        r.UserID,
		Title:         r.Title,
		TripStartDate: civil.DateOf(r.TripStartDate),
		TripEndDate:   civil.DateOf(r.TripEndDate),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

func (s *Store) Schedules(ctx context.Context, userID int64) ([]models.Schedule, error) {
	var rows []scheduleRow
	query := "SELECT " + scheduleColumns + " FROM schedules WHERE user_id = ? ORDER BY trip_start_date DESC, id DESC"
	if err := s.selectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	schedules := make([]models.Schedule, 0, len(rows))
	for _, r := range rows {
		schedules = append(schedules, r.model())
	}
	return schedules, nil
}

func (s *Store) Schedule(ctx context.Context, userID, scheduleID int64) (*models.Schedule, error) {
	var row scheduleRow
	query := "SELECT " + scheduleColumns + " FROM schedules WHERE id = ? AND user_id = ?"
	if err := s.getContext(ctx, &row, query, scheduleID, userID); err != nil {
		return nil, notFound(err)
	}
	sc := row.model()
	return &sc, nil
}

func (s *Store) CreateSchedule(ctx context.Context, sc *models.Schedule) error {
	query := `
		INSERT INTO schedules (user_id, title, trip_start_date, trip_end_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query,
		sc.UserID, sc.Title, sc.TripStartDate.String(), sc.TripEndDate.String(), sc.CreatedAt, sc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	sc.ID, err = result.LastInsertId()
	return err
}

func (s *Store) UpdateSchedule(ctx context.Context, sc *models.Schedule) error {
	query := `
		UPDATE schedules SET title = ?, trip_start_date = ?, trip_end_date = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`
	result, err := s.q.ExecContext(ctx, query,
		sc.Title, sc.TripStartDate.String(), sc.TripEndDate.String(), sc.UpdatedAt, sc.ID, sc.UserID)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
	}
	return expectRow(result)
}

// DeleteSchedule removes a schedule; plans, links and pictures go with it through ON DELETE CASCADE.
func (s *Store) DeleteSchedule(ctx context.Context, userID, scheduleID int64) error {
	result, err := s.q.ExecContext(ctx, "DELETE FROM schedules WHERE id = ? AND user_id = ?", scheduleID, userID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return expectRow(result)
}

func (s *Store) TouchSchedule(ctx context.Context, scheduleID int64, at time.Time) error {
	_, err := s.q.ExecContext(ctx, "UPDATE schedules SET updated_at = ? WHERE id = ?", at, scheduleID)
	if err != nil {
		return fmt.Errorf("touch schedule: %w", err)
	}
	return nil
}

// expectRow turns "no row matched" into ErrNotFound. The DSN sets clientFoundRows, so an
// update that leaves the row unchanged still counts.
func expectRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) getContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.GetContext(ctx, s.q, dest, query, args...)
}

func (s *Store) selectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return sqlx.SelectContext(ctx, s.q, dest, query, args...)
}
