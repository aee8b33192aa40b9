package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/01moynul/travelschedule-golang/internal/database"
	"github.com/01moynul/travelschedule-golang/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist or is not owned by the caller.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique key (user name, email) is already taken.
	ErrDuplicate = errors.New("duplicate record")
)

// Repository is the persistence the handlers depend on.
type Repository interface {
	// WithinTx runs fn against a Repository bound to one transaction.
	WithinTx(ctx context.Context, fn func(Repository) error) error

	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	Transportations(ctx context.Context) ([]models.TransportationMethod, error)

	Schedules(ctx context.Context, userID int64) ([]models.Schedule, error)
	Schedule(ctx context.Context, userID, scheduleID int64) (*models.Schedule, error)
	CreateSchedule(ctx context.Context, s *models.Schedule) error
	UpdateSchedule(ctx context.Context, s *models.Schedule) error
	DeleteSchedule(ctx context.Context, userID, scheduleID int64) error
	TouchSchedule(ctx context.Context, scheduleID int64, at time.Time) error

	Plans(ctx context.Context, scheduleID int64) ([]models.Plan, error)
	Plan(ctx context.Context, scheduleID, planID int64) (*models.Plan, error)
	CreatePlan(ctx context.Context, p *models.Plan) error
	UpdatePlan(ctx context.Context, p *models.Plan) error
	UpdatePlanTimes(ctx context.Context, p models.Plan) error
	DeletePlans(ctx context.Context, scheduleID int64, planIDs ...int64) error

	CreatePicture(ctx context.Context, pic *models.Picture) error
	DeletePicture(ctx context.Context, planID, pictureID int64) (*models.Picture, error)
	CountPictures(ctx context.Context, planID int64) (int, error)
}

// Store is the MySQL implementation of Repository.
type Store struct {
	db *sqlx.DB       // nil inside a transaction
	q  sqlx.ExtContext // the pool or the open transaction
}

// New returns a Store over the given pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) WithinTx(ctx context.Context, fn func(Repository) error) error {
	if s.db == nil {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		return fn(&Store{q: tx})
	})
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func duplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == 1062 {
		return ErrDuplicate
	}
	return err
}
