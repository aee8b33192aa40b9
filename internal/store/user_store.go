package store

import (
	"context"
	"fmt"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

const userColumns = "id, name, email, password_hash, created_at, updated_at"

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return duplicate(err)
	}
	u.ID, err = result.LastInsertId()
	return err
}

func (s *Store) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.getContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.getContext(ctx, &u, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	query := `
		UPDATE users SET name = ?, email = ?, password_hash = ?, updated_at = ?
		WHERE id = ?`
	result, err := s.q.ExecContext(ctx, query, u.Name, u.Email, u.PasswordHash, u.UpdatedAt, u.ID)
	if err != nil {
		return duplicate(err)
	}
	return expectRow(result)
}

func (s *Store) Transportations(ctx context.Context) ([]models.TransportationMethod, error) {
	var methods []models.TransportationMethod
	if err := s.selectContext(ctx, &methods, "SELECT id, code, name, icon FROM transportation_methods ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load transportation methods: %w", err)
	}
	return methods, nil
}
