package itinerary

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"

	"github.com/01moynul/travelschedule-golang/internal/models"
)

// ErrIncompletePair is returned when a date is combined without its time (or the reverse).
// The validator never does this for user input, so seeing it means stored data is corrupt.
var ErrIncompletePair = errors.New("itinerary: incomplete date/time pair")

// FieldErrors maps a field name to every message raised against it.
type FieldErrors map[string][]string

// Add records msg against field.
func (e FieldErrors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], " ")))
	}
	return "invalid input (" + strings.Join(parts, "; ") + ")"
}

// LinkInput is one link row of the plan form.
type LinkInput struct {
	Title string `json:"title" validate:"max=16"`
	URL   string `json:"url" validate:"omitempty,url,max=2048"`
}

// PlanInput is the raw plan form. Dates are "2006-01-02", times "15:04" or "15:04:05".
type PlanInput struct {
	Category          string      `json:"actionCategory"`
	Name              string      `json:"name" validate:"max=24"`
	Memo              string      `json:"memo" validate:"max=150"`
	DepartureLocation string      `json:"departureLocation" validate:"max=24"`
	ArrivalLocation   string      `json:"arrivalLocation" validate:"max=24"`
	TransportationID  *int64      `json:"transportationId"`
	StartDate         string      `json:"startDate"`
	StartTime         string      `json:"startTime"`
	EndDate           string      `json:"endDate"`
	EndTime           string      `json:"endTime"`
	Links             []LinkInput `json:"links" validate:"dive"`
}

// ValidPlan is a plan that passed validation, with its instants combined.
type ValidPlan struct {
	Category          models.Category
	Name              string
	Memo              string
	DepartureLocation string
	ArrivalLocation   string
	TransportationID  *int64
	StartAt           time.Time
	EndAt             time.Time
	Links             []models.Link
}

// Apply copies the validated fields onto p, leaving its identity and children other than links untouched.
func (vp *ValidPlan) Apply(p *models.Plan) {
	start, end := vp.StartAt, vp.EndAt
	p.Category = vp.Category
	p.Name = vp.Name
	p.Memo = vp.Memo
	p.DepartureLocation = vp.DepartureLocation
	p.ArrivalLocation = vp.ArrivalLocation
	p.TransportationID = vp.TransportationID
	p.StartAt = &start
	p.EndAt = &end
	p.Links = append([]models.Link(nil), vp.Links...)
}

// Validator checks plan and schedule forms. Instants are produced in its location.
type Validator struct {
	loc      *time.Location
	validate *validator.Validate
}

// NewValidator returns a Validator producing instants in loc.
func NewValidator(loc *time.Location) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &Validator{loc: loc, validate: v}
}

// Location is the canonical zone of the validator.
func (v *Validator) Location() *time.Location {
	return v.loc
}

// Validate checks in and returns the normalized plan. User mistakes come back as FieldErrors,
// all of them at once. transportations, when non-nil, is the set the transportation id must belong to.
func (v *Validator) Validate(in PlanInput, transportations []models.TransportationMethod) (*ValidPlan, error) {
	errs := FieldErrors{}
	if err := v.checkTags(in, errs); err != nil {
		return nil, err
	}

	category := models.Category(strings.TrimSpace(in.Category))
	rule, ok := ruleFor(category)
	if !ok {
		errs.Add("actionCategory", "Select an action category.")
		return nil, errs
	}

	name := strings.TrimSpace(in.Name)
	departure := strings.TrimSpace(in.DepartureLocation)
	arrival := strings.TrimSpace(in.ArrivalLocation)

	// 1. Name
	if rule.requiresName && name == "" {
		errs.Add("name", "Enter a name.")
	}

	// 2. Route fields, each reported on its own
	if rule.requiresRoute {
		if departure == "" {
			errs.Add("departureLocation", "Enter the departure location.")
		}
		if arrival == "" {
			errs.Add("arrivalLocation", "Enter the arrival location.")
		}
		switch {
		case in.TransportationID == nil:
			errs.Add("transportationId", "Select a means of transportation.")
		case transportations != nil && !knownTransportation(transportations, *in.TransportationID):
			errs.Add("transportationId", "Select a valid means of transportation.")
		}
	}

	// 3. Dates, with the meal end-date default
	startDate := parseDateField(in.StartDate, "startDate", errs)
	if startDate == nil && strings.TrimSpace(in.StartDate) == "" {
		errs.Add("startDate", "Enter the start date.")
	}
	endDate := parseDateField(in.EndDate, "endDate", errs)
	if strings.TrimSpace(in.EndDate) == "" {
		switch {
		case rule.defaultEndDay:
			endDate = startDate
		default:
			errs.Add("endDate", "Enter the end date.")
		}
	}

	// 4. Date ordering
	if !rule.defaultEndDay && startDate != nil && endDate != nil && startDate.After(*endDate) {
		errs.Add("startDate", rule.dateOrderMessage)
	}

	// 5. Every present date needs its time
	startTime := parseTimeField(in.StartTime, "startTime", errs)
	if startDate != nil && startTime == nil && strings.TrimSpace(in.StartTime) == "" {
		errs.Add("startTime", "Enter the start time.")
	}
	endTime := parseTimeField(in.EndTime, "endTime", errs)
	if endDate != nil && endTime == nil && strings.TrimSpace(in.EndTime) == "" {
		errs.Add("endTime", "Enter the end time.")
	}

	// 6. Instant ordering, only when both sides can be combined
	var startAt, endAt time.Time
	if startDate != nil && startTime != nil && endDate != nil && endTime != nil {
		var err error
		if startAt, err = Combine(startDate, startTime, v.loc); err != nil {
			return nil, err
		}
		if endAt, err = Combine(endDate, endTime, v.loc); err != nil {
			return nil, err
		}
		if startAt.After(endAt) {
			errs.Add("startTime", rule.timeOrderMessage)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	// 7. Normalized output
	out := &ValidPlan{
		Category: category,
		Name:     name,
		Memo:     strings.TrimSpace(in.Memo),
		StartAt:  startAt,
		EndAt:    endAt,
	}
	if rule.requiresRoute {
		id := *in.TransportationID
		out.DepartureLocation = departure
		out.ArrivalLocation = arrival
		out.TransportationID = &id
	}
	for _, l := range in.Links {
		title, url := strings.TrimSpace(l.Title), strings.TrimSpace(l.URL)
		if title == "" && url == "" {
			continue
		}
		out.Links = append(out.Links, models.Link{Title: title, URL: url, Position: len(out.Links)})
	}
	return out, nil
}

// checkTags runs the struct-tag rules (lengths, url format) and the link title/url pairing.
func (v *Validator) checkTags(in PlanInput, errs FieldErrors) error {
	if err := v.validate.Struct(in); err != nil {
		if ferr := collectTagErrors(err, errs); ferr != nil {
			return ferr
		}
	}

	for i, l := range in.Links {
		if strings.TrimSpace(l.Title) != "" && strings.TrimSpace(l.URL) == "" {
			errs.Add(fmt.Sprintf("links[%d].url", i), "Enter the URL for this link.")
		}
	}
	return nil
}

// collectTagErrors moves validator failures into errs. Anything else is returned as is.
func collectTagErrors(err error, errs FieldErrors) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate input: %w", err)
	}
	for _, fe := range verrs {
		errs.Add(fieldPath(fe.Namespace()), tagMessage(fe))
	}
	return nil
}

// ValidatePictureCount rejects an upload that would push a plan over its picture cap.
func ValidatePictureCount(existing, adding int) error {
	if existing+adding > models.MaxPicturesPerPlan {
		return FieldErrors{"pictures": {fmt.Sprintf("A plan can hold at most %d pictures.", models.MaxPicturesPerPlan)}}
	}
	return nil
}

// Combine joins a calendar date and a wall-clock time into an instant in loc.
func Combine(d *civil.Date, t *civil.Time, loc *time.Location) (time.Time, error) {
	if d == nil || t == nil || !d.IsValid() || !t.IsValid() {
		return time.Time{}, ErrIncompletePair
	}
	return civil.DateTime{Date: *d, Time: *t}.In(loc), nil
}

func parseDateField(raw, field string, errs FieldErrors) *civil.Date {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := civil.ParseDate(raw)
	if err != nil {
		errs.Add(field, "Enter a valid date.")
		return nil
	}
	return &d
}

func parseTimeField(raw, field string, errs FieldErrors) *civil.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			ct := civil.TimeOf(t)
			return &ct
		}
	}
	errs.Add(field, "Enter a valid time.")
	return nil
}

func knownTransportation(methods []models.TransportationMethod, id int64) bool {
	for _, m := range methods {
		if m.ID == id {
			return true
		}
	}
	return false
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// fieldPath drops the top-level struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return fmt.Sprintf("Enter at most %s characters.", fe.Param())
	case "required":
		return "This field is required."
	case "url":
		return "Enter a valid URL."
	case "email":
		return "Enter a valid email address."
	}
	return "Enter a valid value."
}
