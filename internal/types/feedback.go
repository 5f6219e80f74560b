package types

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type FeedbackRequest struct {
	Satisfaction   int    `json:"satisfaction" validate:"required,min=1,max=5"`
	Comment        string `json:"comment" validate:"max=2000"`
	Category       string `json:"category" validate:"omitempty,oneof=itinerary places timing ui other"`
	Mode           string `json:"mode" validate:"omitempty,max=32"`
	Destination    string `json:"destination" validate:"omitempty,max=100"`
	WouldRecommend *bool  `json:"would_recommend,omitempty"`
}

// Validate returns a *ValidationError when the request is rejected.
func (f FeedbackRequest) Validate() error {
	verr := &ValidationError{}
	collectFieldErrors(verr, validate.Struct(f))
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// Normalised trims free text and defaults the category.
func (f FeedbackRequest) Normalised() FeedbackRequest {
	f.Comment = strings.TrimSpace(f.Comment)
	f.Destination = strings.TrimSpace(f.Destination)
	if f.Category == "" {
		f.Category = "other"
	}
	return f
}

// Feedback is a stored feedback entry.
type Feedback struct {
	ID             uuid.UUID `json:"id"`
	Satisfaction   int       `json:"satisfaction"`
	Comment        string    `json:"comment,omitempty"`
	Category       string    `json:"category"`
	Mode           string    `json:"mode,omitempty"`
	Destination    string    `json:"destination,omitempty"`
	WouldRecommend *bool     `json:"would_recommend,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type FeedbackResponse struct {
	FeedbackID uuid.UUID `json:"feedback_id"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

type FeedbackSummary struct {
	Count               int            `json:"count"`
	AverageSatisfaction float64        `json:"average_satisfaction"`
	ByCategory          map[string]int `json:"by_category"`
	RecommendRate       float64        `json:"recommend_rate"`
}
