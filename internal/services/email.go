package services

import (
	"context"
	"fmt"
	"log/slog"

	"sportify/internal/domain"
)

const (
	moderationRequestTemplate  = "moderation_request"
	moderationDecisionTemplate = "moderation_decision"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendModerationRequest tells a super-admin that something awaits review.
func (s *emailService) SendModerationRequest(ctx context.Context, data *domain.ModerationRequestEmailData) error {
	if data == nil {
		return fmt.Errorf("moderation request data is nil")
	}
	return s.send(ctx, moderationRequestTemplate, data.Email, data)
}

// SendModerationDecision tells an event's creator what a super-admin decided.
func (s *emailService) SendModerationDecision(ctx context.Context, data *domain.ModerationDecisionEmailData) error {
	if data == nil {
		return fmt.Errorf("moderation decision data is nil")
	}
	return s.send(ctx, moderationDecisionTemplate, data.Email, data)
}

func (s *emailService) send(ctx context.Context, name, to string, data any) error {
	if to == "" {
		return fmt.Errorf("%s: recipient address is empty", name)
	}
	subject, htmlBody, textBody, err := s.renderer.Render(name, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", name, err)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send %s email: %w", name, err)
	}
	s.logger.InfoContext(ctx, "email sent", "template", name, "to", to)
	return nil
}
