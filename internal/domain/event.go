package domain

import (
	"context"
	"time"
)

// EventStatus is the moderation state of an event.
type EventStatus string

const (
	StatusPending       EventStatus = "pending"
	StatusApproved      EventStatus = "approved"
	StatusRejected      EventStatus = "rejected"
	StatusPendingEdit   EventStatus = "pending_edit"
	StatusPendingDelete EventStatus = "pending_delete"
)

// ModerationQueueStatuses are the statuses awaiting a super-admin decision.
var ModerationQueueStatuses = []EventStatus{StatusPending, StatusPendingEdit, StatusPendingDelete}

// Valid reports whether s is a known status.
func (s EventStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusPendingEdit, StatusPendingDelete:
		return true
	}
	return false
}

// EventFields are the publicly visible, editable fields of an event.
// The same shape is stored as the proposed snapshot of a pending edit.
// swagger:model EventFields
type EventFields struct {
	Title       string   `json:"title" validate:"required"`
	Date        string   `json:"date" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"required"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category" validate:"required"`
}

// Clone returns a deep copy of f.
func (f EventFields) Clone() EventFields {
	out := f
	if f.Tags != nil {
		out.Tags = append([]string(nil), f.Tags...)
	}
	return out
}

// EventPatch is a partial update; nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Date        *string
	Location    *string
	Description *string
	Image       *string
	Tags        *[]string
	Category    *string
}

// ApplyTo returns base with every non-nil patch field overwritten.
func (p EventPatch) ApplyTo(base EventFields) EventFields {
	out := base.Clone()
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Date != nil {
		out.Date = *p.Date
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.Image != nil {
		out.Image = *p.Image
	}
	if p.Tags != nil {
		out.Tags = append([]string{}, (*p.Tags)...)
	}
	if p.Category != nil {
		out.Category = *p.Category
	}
	return out
}

// Event is a submitted event together with its moderation metadata.
// swagger:model Event
type Event struct {
	ID string `json:"id"`
	EventFields
	Status            EventStatus  `json:"status"`
	PendingChanges    *EventFields `json:"pending_changes,omitempty"`
	CreatedBy         string       `json:"created_by"`
	ApprovedBy        *string      `json:"approved_by,omitempty"`
	RejectedBy        *string      `json:"rejected_by,omitempty"`
	DeleteRequestedBy *string      `json:"delete_requested_by,omitempty"`
	RejectionReason   *string      `json:"rejection_reason,omitempty"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
	ApprovedAt        *time.Time   `json:"approved_at,omitempty"`
	RejectedAt        *time.Time   `json:"rejected_at,omitempty"`
	DeleteRequestedAt *time.Time   `json:"delete_requested_at,omitempty"`
	Version           int          `json:"version"`
}

// Clone returns a deep copy of e so a transition can be applied without
// touching the loaded record until it is persisted.
func (e *Event) Clone() *Event {
	out := *e
	out.EventFields = e.EventFields.Clone()
	if e.PendingChanges != nil {
		pc := e.PendingChanges.Clone()
		out.PendingChanges = &pc
	}
	out.ApprovedBy = cloneString(e.ApprovedBy)
	out.RejectedBy = cloneString(e.RejectedBy)
	out.DeleteRequestedBy = cloneString(e.DeleteRequestedBy)
	out.RejectionReason = cloneString(e.RejectionReason)
	out.ApprovedAt = cloneTime(e.ApprovedAt)
	out.RejectedAt = cloneTime(e.RejectedAt)
	out.DeleteRequestedAt = cloneTime(e.DeleteRequestedAt)
	return &out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// DeleteOutcome reports whether a delete removed the event or queued a request.
type DeleteOutcome struct {
	Pending bool `json:"pending"`
}

// EventFilter selects events for listing. Zero values mean "no constraint".
type EventFilter struct {
	Statuses  []EventStatus
	CreatedBy string
	Category  string
	Limit     int
	Offset    int
}

// EventRepository defines the interface for event storage.
// Update and Delete are conditional on Event.Version and return ErrConflict
// when the stored version has moved on.
type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string, version int) error
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Count(ctx context.Context, filter EventFilter) (int, error)
}

// EventService defines the moderation workflow for events.
type EventService interface {
	CreateEvent(ctx context.Context, actor Actor, fields EventFields) (*Event, error)
	UpdateEvent(ctx context.Context, actor Actor, eventID string, patch EventPatch) (*Event, error)
	DeleteEvent(ctx context.Context, actor Actor, eventID string) (DeleteOutcome, error)
	ApproveEvent(ctx context.Context, actor Actor, eventID string) (*Event, error)
	ApproveEdit(ctx context.Context, actor Actor, eventID string) (*Event, error)
	RejectEvent(ctx context.Context, actor Actor, eventID, reason string) (*Event, error)
	ApproveDelete(ctx context.Context, actor Actor, eventID string) error
	RejectDelete(ctx context.Context, actor Actor, eventID string) (*Event, error)
	GetPublishedEvent(ctx context.Context, eventID string) (*Event, error)
	ListPublishedEvents(ctx context.Context, category string, params PaginationParams) ([]*Event, int, error)
	ListAdminEvents(ctx context.Context, actor Actor) ([]*Event, error)
	ListPendingEvents(ctx context.Context, actor Actor) ([]*Event, error)
}
