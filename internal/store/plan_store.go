package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

const planColumns = `id, schedule_id, action_category, name, memo, departure_location, arrival_location,
	transportation_id, start_datetime, end_datetime, created_at, updated_at`

// Plans returns a schedule's plans ordered by start instant (plans without one last),
// with links and pictures attached.
func (s *Store) Plans(ctx context.Context, scheduleID int64) ([]models.Plan, error) {
	var plans []models.Plan
	query := "SELECT " + planColumns + ` FROM plans WHERE schedule_id = ?
		ORDER BY start_datetime IS NULL, start_datetime, id`
	if err := s.selectContext(ctx, &plans, query, scheduleID); err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if err := s.attachChildren(ctx, plans); err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *Store) Plan(ctx context.Context, scheduleID, planID int64) (*models.Plan, error) {
	var p models.Plan
	query := "SELECT " + planColumns + " FROM plans WHERE id = ? AND schedule_id = ?"
	if err := s.getContext(ctx, &p, query, planID, scheduleID); err != nil {
		return nil, notFound(err)
	}
	plans := []models.Plan{p}
	if err := s.attachChildren(ctx, plans); err != nil {
		return nil, err
	}
	return &plans[0], nil
}

func (s *Store) CreatePlan(ctx context.Context, p *models.Plan) error {
	query := `
		INSERT INTO plans (schedule_id, action_category, name, memo, departure_location, arrival_location,
			transportation_id, start_datetime, end_datetime, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := s.q.ExecContext(ctx, query,
		p.ScheduleID, p.Category, p.Name, p.Memo, p.DepartureLocation, p.ArrivalLocation,
		p.TransportationID, p.StartAt, p.EndAt, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	if p.ID, err = result.LastInsertId(); err != nil {
		return err
	}
	return s.replaceLinks(ctx, p)
}

// UpdatePlan saves every editable field of p and replaces its links.
func (s *Store) UpdatePlan(ctx context.Context, p *models.Plan) error {
	query := `
		UPDATE plans SET action_category = ?, name = ?, memo = ?, departure_location = ?, arrival_location = ?,
			transportation_id = ?, start_datetime = ?, end_datetime = ?, updated_at = ?
		WHERE id = ? AND schedule_id = ?`
	result, err := s.q.ExecContext(ctx, query,
		p.Category, p.Name, p.Memo, p.DepartureLocation, p.ArrivalLocation,
		p.TransportationID, p.StartAt, p.EndAt, p.UpdatedAt, p.ID, p.ScheduleID)
	if err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	if err := expectRow(result); err != nil {
		return err
	}
	return s.replaceLinks(ctx, p)
}

// UpdatePlanTimes saves only the instants of p, as the resize cascade does.
func (s *Store) UpdatePlanTimes(ctx context.Context, p models.Plan) error {
	query := "UPDATE plans SET start_datetime = ?, end_datetime = ?, updated_at = ? WHERE id = ? AND schedule_id = ?"
	if _, err := s.q.ExecContext(ctx, query, p.StartAt, p.EndAt, p.UpdatedAt, p.ID, p.ScheduleID); err != nil {
		return fmt.Errorf("shift plan %d: %w", p.ID, err)
	}
	return nil
}

func (s *Store) DeletePlans(ctx context.Context, scheduleID int64, planIDs ...int64) error {
	if len(planIDs) == 0 {
		return nil
	}
	query, args, err := sqlx.In("DELETE FROM plans WHERE schedule_id = ? AND id IN (?)", scheduleID, planIDs)
	if err != nil {
		return err
	}
	result, err := s.q.ExecContext(ctx, s.q.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("delete plans: %w", err)
	}
	return expectRow(result)
}

func (s *Store) CreatePicture(ctx context.Context, pic *models.Picture) error {
	query := "INSERT INTO pictures (plan_id, file_name, url, created_at) VALUES (?, ?, ?, ?)"
	result, err := s.q.ExecContext(ctx, query, pic.PlanID, pic.FileName, pic.URL, pic.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert picture: %w", err)
	}
	pic.ID, err = result.LastInsertId()
	return err
}

// DeletePicture removes one picture row and returns it so the caller can remove the file.
func (s *Store) DeletePicture(ctx context.Context, planID, pictureID int64) (*models.Picture, error) {
	var pic models.Picture
	query := "SELECT id, plan_id, file_name, url, created_at FROM pictures WHERE id = ? AND plan_id = ?"
	if err := s.getContext(ctx, &pic, query, pictureID, planID); err != nil {
		return nil, notFound(err)
	}
	if _, err := s.q.ExecContext(ctx, "DELETE FROM pictures WHERE id = ?", pictureID); err != nil {
		return nil, fmt.Errorf("delete picture: %w", err)
	}
	return &pic, nil
}

func (s *Store) CountPictures(ctx context.Context, planID int64) (int, error) {
	var n int
	if err := s.getContext(ctx, &n, "SELECT COUNT(*) FROM pictures WHERE plan_id = ?", planID); err != nil {
		return 0, fmt.Errorf("count pictures: %w", err)
	}
	return n, nil
}

func (s *Store) replaceLinks(ctx context.Context, p *models.Plan) error {
	if _, err := s.q.ExecContext(ctx, "DELETE FROM links WHERE plan_id = ?", p.ID); err != nil {
		return fmt.Errorf("clear links: %w", err)
	}
	for i := range p.Links {
		l := &p.Links[i]
		l.PlanID = p.ID
		l.Position = i
		result, err := s.q.ExecContext(ctx,
			"INSERT INTO links (plan_id, title, url, position) VALUES (?, ?, ?, ?)", l.PlanID, l.Title, l.URL, l.Position)
		if err != nil {
			return fmt.Errorf("insert link: %w", err)
		}
		if l.ID, err = result.LastInsertId(); err != nil {
			return err
		}
	}
	return nil
}

// attachChildren loads links and pictures for plans in two queries.
func (s *Store) attachChildren(ctx context.Context, plans []models.Plan) error {
	if len(plans) == 0 {
		return nil
	}
	ids := make([]int64, len(plans))
	index := make(map[int64]int, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
		index[p.ID] = i
		plans[i].Links = []models.Link{}
		plans[i].Pictures = []models.Picture{}
	}

	var links []models.Link
	if err := s.selectIn(ctx, &links, "SELECT id, plan_id, title, url, position FROM links WHERE plan_id IN (?) ORDER BY position, id", ids); err != nil {
		return fmt.Errorf("load links: %w", err)
	}
	for _, l := range links {
		i := index[l.PlanID]
		plans[i].Links = append(plans[i].Links, l)
	}

	var pictures []models.Picture
	if err := s.selectIn(ctx, &pictures, "SELECT id, plan_id, file_name, url, created_at FROM pictures WHERE plan_id IN (?) ORDER BY id", ids); err != nil {
		return fmt.Errorf("load pictures: %w", err)
	}
	for _, pic := range pictures {
		i := index[pic.PlanID]
		plans[i].Pictures = append(plans[i].Pictures, pic)
	}
	return nil
}

func (s *Store) selectIn(ctx context.Context, dest interface{}, query string, ids []int64) error {
	query, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return s.selectContext(ctx, dest, s.q.Rebind(query), args...)
}
