package domain

import (
	"context"
	"time"
)

// Feedback is a message left by a visitor of the public site.
// swagger:model Feedback
type Feedback struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Message   string    `json:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedbackRepository defines storage for feedback messages.
type FeedbackRepository interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context) ([]*Feedback, error)
	Delete(ctx context.Context, id string) error
}

// FeedbackService defines the business logic for feedback.
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, name, email, message string) (*Feedback, error)
	ListFeedback(ctx context.Context, actor Actor) ([]*Feedback, error)
	DeleteFeedback(ctx context.Context, actor Actor, id string) error
}
