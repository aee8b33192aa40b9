package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/01moynul/travelschedule-golang/internal/itinerary"
	"github.com/01moynul/travelschedule-golang/internal/models"
)

// AIService holds the Gemini client used to review itineraries.
type AIService struct {
	Client *genai.Client
	Model  string
}

// AdviceRequest is everything the model sees about one schedule.
type AdviceRequest struct {
	Schedule        models.Schedule
	Days            []itinerary.Day
	Transportations []models.TransportationMethod
	Question        string
	Location        *time.Location
}

// NewAIService initializes the Gemini client.
func NewAIService(ctx context.Context, apiKey, model string) (*AIService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.5-flash-lite" // Fallback default
	}
	return &AIService{Client: client, Model: model}, nil
}

// Close releases the underlying client.
func (s *AIService) Close() error {
	return s.Client.Close()
}

// Advise asks the model to review the timeline. It returns the reply and the tokens used.
func (s *AIService) Advise(ctx context.Context, req AdviceRequest) (string, int, error) {
	model := s.Client.GenerativeModel(s.Model)
	model.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	model.SetTemperature(0.7)

	res, err := model.GenerateContent(ctx, genai.Text(BuildPrompt(req)))
	if err != nil {
		return "", 0, fmt.Errorf("error sending message: %w", err)
	}

	tokens := 0
	if res.UsageMetadata != nil {
		tokens = int(res.UsageMetadata.TotalTokenCount)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "No response.", tokens, nil
	}

	var reply strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			reply.WriteString(string(txt))
		}
	}
	return reply.String(), tokens, nil
}

const systemInstruction = `You are a travel planning assistant.
You receive one trip as a day-by-day timeline. Point out tight connections, overlapping plans,
days without lodging, and long idle gaps. Suggest concrete fixes. Be concise.`

// BuildPrompt renders the timeline as plain text for the model.
func BuildPrompt(req AdviceRequest) string {
	loc := req.Location
	if loc == nil {
		loc = time.UTC
	}
	methods := make(map[int64]string, len(req.Transportations))
	for _, m := range req.Transportations {
		methods[m.ID] = m.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Trip: %s (%s to %s)\n", req.Schedule.Title, req.Schedule.TripStartDate, req.Schedule.TripEndDate)
	for _, day := range req.Days {
		fmt.Fprintf(&b, "\n%s\n", day.Date)
		if len(day.Entries) == 0 {
			b.WriteString("  (nothing planned)\n")
			continue
		}
		for _, e := range day.Entries {
			b.WriteString("  ")
			b.WriteString(describeEntry(e, methods, loc))
			b.WriteString("\n")
		}
	}
	if q := strings.TrimSpace(req.Question); q != "" {
		fmt.Fprintf(&b, "\nQuestion: %s\n", q)
	}
	return b.String()
}

func describeEntry(e itinerary.Entry, methods map[int64]string, loc *time.Location) string {
	p := e.Plan
	switch e.Kind {
	case itinerary.EntryCheckin:
		return fmt.Sprintf("%s check-in at %s", e.At.In(loc).Format("15:04"), p.Name)
	case itinerary.EntryCheckout:
		return fmt.Sprintf("%s check-out from %s", e.At.In(loc).Format("15:04"), p.Name)
	}

	span := ""
	if p.StartAt != nil && p.EndAt != nil {
		span = p.StartAt.In(loc).Format("01-02 15:04") + " - " + p.EndAt.In(loc).Format("01-02 15:04")
	}
	if p.Category == models.CategoryMove {
		how := "unknown transport"
		if p.TransportationID != nil {
			if name, ok := methods[*p.TransportationID]; ok {
				how = name
			}
		}
		return fmt.Sprintf("%s move %s -> %s by %s", span, p.DepartureLocation, p.ArrivalLocation, how)
	}
	line := fmt.Sprintf("%s %s: %s", span, p.Category, p.Name)
	if p.Memo != "" {
		line += " (" + p.Memo + ")"
	}
	return line
}
