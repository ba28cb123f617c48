package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportify/internal/domain"
	"sportify/internal/sanitize"
)

type feedbackService struct {
	feedbackRepo   domain.FeedbackRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewFeedbackService creates a FeedbackService.
func NewFeedbackService(feedbackRepo domain.FeedbackRepository, logger *slog.Logger, timeout time.Duration) domain.FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, logger: logger, contextTimeout: timeout}
}

func (s *feedbackService) SubmitFeedback(ctx context.Context, name, email, message string) (*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	f := &domain.Feedback{
		Name:      sanitize.Text(name),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Message:   sanitize.HTML(message),
		CreatedAt: time.Now(),
	}
	if err := validateStruct(f); err != nil {
		return nil, err
	}
	if err := s.feedbackRepo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.logger.InfoContext(ctx, "feedback submitted", "feedback_id", f.ID)
	return f, nil
}

func (s *feedbackService) ListFeedback(ctx context.Context, actor domain.Actor) ([]*domain.Feedback, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapSubmit); err != nil {
		return nil, err
	}
	items, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if items == nil {
		items = []*domain.Feedback{}
	}
	return items, nil
}

func (s *feedbackService) DeleteFeedback(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapSubmit); err != nil {
		return err
	}
	if err := s.feedbackRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete feedback: %w", err)
	}
	return nil
}
