package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ModerationRequestEmailData holds data for the email sent to super-admins
// when an admin submits something for review.
type ModerationRequestEmailData struct {
	Email      string
	EventID    string
	EventTitle string
	Request    string // "new event", "edit", "deletion"
	Requester  string
}

// ModerationDecisionEmailData holds data for the email sent to an event's
// creator once a super-admin has decided.
type ModerationDecisionEmailData struct {
	Email      string
	Username   string
	EventID    string
	EventTitle string
	Decision   string // "approved", "rejected", "edit rejected", "deletion approved", "deletion rejected"
	Reason     string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendModerationRequest(ctx context.Context, data *ModerationRequestEmailData) error
	SendModerationDecision(ctx context.Context, data *ModerationDecisionEmailData) error
}
