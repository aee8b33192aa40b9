package store

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-sql-driver/mysql"
)

func TestScheduleRowModel(t *testing.T) {
	row := scheduleRow{
		ID:            3,
		UserID:        7,
		Title:         "Kyoto",
		TripStartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		TripEndDate:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	}
	s := row.model()
	if s.ID != 3 || s.UserID != 7 || s.Title != "Kyoto" {
		t.Fatalf("unexpected schedule: %+v", s)
	}
	want := civil.Date{Year: 2024, Month: time.May, Day: 1}
	if s.TripStartDate != want || s.TripEndDate != want.AddDays(2) {
		t.Fatalf("unexpected range %v - %v", s.TripStartDate, s.TripEndDate)
	}
}

func TestErrorMapping(t *testing.T) {
	if err := notFound(fmt.Errorf("get: %w", sql.ErrNoRows)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	other := errors.New("boom")
	if err := notFound(other); err != other {
		t.Errorf("expected the error unchanged, got %v", err)
	}

	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}
	if err := duplicate(dup); !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
	fk := &mysql.MySQLError{Number: 1452, Message: "foreign key"}
	if err := duplicate(fk); errors.Is(err, ErrDuplicate) {
		t.Errorf("expected a non-duplicate error, got %v", err)
	}
}

type fakeResult int64

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return int64(r), nil }

func TestExpectRow(t *testing.T) {
	if err := expectRow(fakeResult(0)); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := expectRow(fakeResult(1)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
