package handlers

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/01moynul/travelschedule-golang/internal/models"
	"github.com/01moynul/travelschedule-golang/internal/store"
)

// memStore is an in-memory store.Repository. WithinTx snapshots the data and restores it when
// fn fails, so tests can check that a failed write leaves nothing behind.
type memStore struct {
	data *memData
	// failOn makes the named method return the mapped error.
	failOn map[string]error
}

type memData struct {
	nextID          int64
	users           map[int64]models.User
	schedules       map[int64]models.Schedule
	plans           map[int64]models.Plan
	pictures        map[int64]models.Picture
	transportations []models.TransportationMethod
}

var _ store.Repository = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{
		data: &memData{
			users:     map[int64]models.User{},
			schedules: map[int64]models.Schedule{},
			plans:     map[int64]models.Plan{},
			pictures:  map[int64]models.Picture{},
			transportations: []models.TransportationMethod{
				{ID: 1, Code: "walk", Name: "Walk", Icon: "fa-person-walking"},
				{ID: 2, Code: "train", Name: "Train", Icon: "fa-train"},
				{ID: 3, Code: "plane", Name: "Plane", Icon: "fa-plane"},
			},
		},
		failOn: map[string]error{},
	}
}

func (d *memData) clone() *memData {
	c := &memData{
		nextID:          d.nextID,
		users:           make(map[int64]models.User, len(d.users)),
		schedules:       make(map[int64]models.Schedule, len(d.schedules)),
		plans:           make(map[int64]models.Plan, len(d.plans)),
		pictures:        make(map[int64]models.Picture, len(d.pictures)),
		transportations: d.transportations,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.schedules {
		c.schedules[k] = v
	}
	for k, v := range d.plans {
		v.Links = append([]models.Link(nil), v.Links...)
		c.plans[k] = v
	}
	for k, v := range d.pictures {
		c.pictures[k] = v
	}
	return c
}

func (d *memData) id() int64 {
	d.nextID++
	return d.nextID
}

func (s *memStore) fail(method string) error {
	return s.failOn[method]
}

func (s *memStore) WithinTx(ctx context.Context, fn func(store.Repository) error) error {
	snapshot := s.data.clone()
	if err := fn(s); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *memStore) CreateUser(ctx context.Context, u *models.User) error {
	if err := s.fail("CreateUser"); err != nil {
		return err
	}
	for _, other := range s.data.users {
		if strings.EqualFold(other.Email, u.Email) || other.Name == u.Name {
			return store.ErrDuplicate
		}
	}
	u.ID = s.data.id()
	s.data.users[u.ID] = *u
	return nil
}

func (s *memStore) UserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := s.data.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &u, nil
}

func (s *memStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.data.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memStore) UpdateUser(ctx context.Context, u *models.User) error {
	for id, other := range s.data.users {
		if id != u.ID && (other.Email == u.Email || other.Name == u.Name) {
			return store.ErrDuplicate
		}
	}
	if _, ok := s.data.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	s.data.users[u.ID] = *u
	return nil
}

func (s *memStore) Transportations(ctx context.Context) ([]models.TransportationMethod, error) {
	return s.data.transportations, nil
}

func (s *memStore) Schedules(ctx context.Context, userID int64) ([]models.Schedule, error) {
	out := []models.Schedule{}
	for _, sc := range s.data.schedules {
		if sc.UserID == userID {
			out = append(out, sc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memStore) Schedule(ctx context.Context, userID, scheduleID int64) (*models.Schedule, error) {
	sc, ok := s.data.schedules[scheduleID]
	if !ok || sc.UserID != userID {
		return nil, store.ErrNotFound
	}
	return &sc, nil
}

func (s *memStore) CreateSchedule(ctx context.Context, sc *models.Schedule) error {
	sc.ID = s.data.id()
	s.data.schedules[sc.ID] = *sc
	return nil
}

func (s *memStore) UpdateSchedule(ctx context.Context, sc *models.Schedule) error {
	if err := s.fail("UpdateSchedule"); err != nil {
		return err
	}
	if _, ok := s.data.schedules[sc.ID]; !ok {
		return store.ErrNotFound
	}
	s.data.schedules[sc.ID] = *sc
	return nil
}

func (s *memStore) DeleteSchedule(ctx context.Context, userID, scheduleID int64) error {
	if _, err := s.Schedule(ctx, userID, scheduleID); err != nil {
		return err
	}
	for id, p := range s.data.plans {
		if p.ScheduleID == scheduleID {
			s.deletePlan(id)
		}
	}
	delete(s.data.schedules, scheduleID)
	return nil
}

func (s *memStore) TouchSchedule(ctx context.Context, scheduleID int64, at time.Time) error {
	sc, ok := s.data.schedules[scheduleID]
	if !ok {
		return store.ErrNotFound
	}
	sc.UpdatedAt = at
	s.data.schedules[scheduleID] = sc
	return nil
}

func (s *memStore) Plans(ctx context.Context, scheduleID int64) ([]models.Plan, error) {
	var out []models.Plan
	for _, p := range s.data.plans {
		if p.ScheduleID == scheduleID {
			out = append(out, s.withChildren(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].StartAt, out[j].StartAt
		switch {
		case a == nil || b == nil:
			if (a == nil) != (b == nil) {
				return a != nil
			}
		case !a.Equal(*b):
			return a.Before(*b)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memStore) Plan(ctx context.Context, scheduleID, planID int64) (*models.Plan, error) {
	p, ok := s.data.plans[planID]
	if !ok || p.ScheduleID != scheduleID {
		return nil, store.ErrNotFound
	}
	p = s.withChildren(p)
	return &p, nil
}

func (s *memStore) CreatePlan(ctx context.Context, p *models.Plan) error {
	if err := s.fail("CreatePlan"); err != nil {
		return err
	}
	p.ID = s.data.id()
	s.saveLinks(p)
	s.data.plans[p.ID] = s.stripped(*p)
	return nil
}

func (s *memStore) UpdatePlan(ctx context.Context, p *models.Plan) error {
	if _, ok := s.data.plans[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.saveLinks(p)
	s.data.plans[p.ID] = s.stripped(*p)
	return nil
}

func (s *memStore) UpdatePlanTimes(ctx context.Context, p models.Plan) error {
	if err := s.fail("UpdatePlanTimes"); err != nil {
		return err
	}
	stored, ok := s.data.plans[p.ID]
	if !ok {
		return store.ErrNotFound
	}
	stored.StartAt, stored.EndAt, stored.UpdatedAt = p.StartAt, p.EndAt, p.UpdatedAt
	s.data.plans[p.ID] = stored
	return nil
}

func (s *memStore) DeletePlans(ctx context.Context, scheduleID int64, planIDs ...int64) error {
	if len(planIDs) == 0 {
		return nil
	}
	if err := s.fail("DeletePlans"); err != nil {
		return err
	}
	deleted := 0
	for _, id := range planIDs {
		if p, ok := s.data.plans[id]; ok && p.ScheduleID == scheduleID {
			s.deletePlan(id)
			deleted++
		}
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *memStore) CreatePicture(ctx context.Context, pic *models.Picture) error {
	if err := s.fail("CreatePicture"); err != nil {
		return err
	}
	pic.ID = s.data.id()
	s.data.pictures[pic.ID] = *pic
	return nil
}

func (s *memStore) DeletePicture(ctx context.Context, planID, pictureID int64) (*models.Picture, error) {
	pic, ok := s.data.pictures[pictureID]
	if !ok || pic.PlanID != planID {
		return nil, store.ErrNotFound
	}
	delete(s.data.pictures, pictureID)
	return &pic, nil
}

func (s *memStore) CountPictures(ctx context.Context, planID int64) (int, error) {
	n := 0
	for _, pic := range s.data.pictures {
		if pic.PlanID == planID {
			n++
		}
	}
	return n, nil
}

func (s *memStore) deletePlan(id int64) {
	for picID, pic := range s.data.pictures {
		if pic.PlanID == id {
			delete(s.data.pictures, picID)
		}
	}
	delete(s.data.plans, id)
}

func (s *memStore) saveLinks(p *models.Plan) {
	for i := range p.Links {
		p.Links[i].PlanID = p.ID
		p.Links[i].Position = i
		if p.Links[i].ID == 0 {
			p.Links[i].ID = s.data.id()
		}
	}
}

// stripped is the stored form of p: pictures live in their own map.
func (s *memStore) stripped(p models.Plan) models.Plan {
	p.Links = append([]models.Link(nil), p.Links...)
	p.Pictures = nil
	return p
}

func (s *memStore) withChildren(p models.Plan) models.Plan {
	p.Links = append([]models.Link{}, p.Links...)
	p.Pictures = []models.Picture{}
	for _, pic := range s.data.pictures {
		if pic.PlanID == p.ID {
			p.Pictures = append(p.Pictures, pic)
		}
	}
	sort.Slice(p.Pictures, func(i, j int) bool { return p.Pictures[i].ID < p.Pictures[j].ID })
	return p
}

var errInjected = errors.New("injected failure")
