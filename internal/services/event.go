package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportify/internal/domain"
	"sportify/internal/metrics"
	"sportify/internal/sanitize"
)

const allCategories = "All"

type eventService struct {
	eventRepo      domain.EventRepository
	adminRepo      domain.AdminRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService returns the EventService that drives the moderation lifecycle.
// emailService may be nil, in which case no notifications are sent.
func NewEventService(eventRepo domain.EventRepository,
	adminRepo domain.AdminRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		adminRepo:      adminRepo,
		emailService:   emailService,
		logger:         logger,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, actor domain.Actor, fields domain.EventFields) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	op := domain.CreateOperation(actor)
	if err := domain.Authorize(actor, op, nil); err != nil {
		return nil, s.fail(op, err)
	}
	fields = sanitizeFields(fields)
	if err := validateStruct(fields); err != nil {
		return nil, s.fail(op, err)
	}

	event, t, err := domain.Apply(nil, op, domain.TransitionInput{Actor: actor, Now: s.now(), Fields: fields})
	if err != nil {
		return nil, s.fail(op, err)
	}
	if err := domain.CheckInvariants(event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, s.fail(op, fmt.Errorf("create event: %w", err))
	}
	s.record(ctx, event, t)

	if op == domain.OpSubmit {
		s.notifyModerators(ctx, actor, event, "new event")
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, actor domain.Actor, eventID string, patch domain.EventPatch) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	op := domain.UpdateOperation(actor, event)
	if err := domain.Authorize(actor, op, event); err != nil {
		return nil, s.fail(op, err)
	}
	patch = sanitizePatch(patch)
	if err := validatePatch(patch); err != nil {
		return nil, s.fail(op, err)
	}

	next, t, err := domain.Apply(event, op, domain.TransitionInput{Actor: actor, Now: s.now(), Patch: patch})
	if err != nil {
		return nil, s.fail(op, err)
	}
	if err := s.persist(ctx, next, t); err != nil {
		return nil, s.fail(op, err)
	}
	s.record(ctx, next, t)

	if op == domain.OpProposeEdit {
		s.notifyModerators(ctx, actor, next, "edit")
	}
	return next, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, actor domain.Actor, eventID string) (domain.DeleteOutcome, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return domain.DeleteOutcome{}, err
	}
	op := domain.DeleteOperation(actor, event)
	if err := domain.Authorize(actor, op, event); err != nil {
		return domain.DeleteOutcome{}, s.fail(op, err)
	}

	next, t, err := domain.Apply(event, op, domain.TransitionInput{Actor: actor, Now: s.now()})
	if err != nil {
		return domain.DeleteOutcome{}, s.fail(op, err)
	}
	if err := s.persist(ctx, next, t); err != nil {
		return domain.DeleteOutcome{}, s.fail(op, err)
	}
	s.record(ctx, next, t)

	if t.Remove {
		return domain.DeleteOutcome{Pending: false}, nil
	}
	s.notifyModerators(ctx, actor, next, "deletion")
	return domain.DeleteOutcome{Pending: true}, nil
}

func (s *eventService) ApproveEvent(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	return s.moderate(ctx, actor, eventID, domain.OpApprove, "")
}

func (s *eventService) ApproveEdit(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	return s.moderate(ctx, actor, eventID, domain.OpApproveEdit, "")
}

func (s *eventService) RejectEvent(ctx context.Context, actor domain.Actor, eventID, reason string) (*domain.Event, error) {
	return s.moderate(ctx, actor, eventID, domain.OpReject, sanitize.Text(reason))
}

func (s *eventService) ApproveDelete(ctx context.Context, actor domain.Actor, eventID string) error {
	_, err := s.moderate(ctx, actor, eventID, domain.OpApproveDelete, "")
	return err
}

func (s *eventService) RejectDelete(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error) {
	return s.moderate(ctx, actor, eventID, domain.OpRejectDelete, "")
}

// moderate runs a super-admin decision against one event and notifies its creator.
func (s *eventService) moderate(ctx context.Context, actor domain.Actor, eventID string, op domain.Operation, reason string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := domain.Authorize(actor, op, event); err != nil {
		return nil, s.fail(op, err)
	}

	next, t, err := domain.Apply(event, op, domain.TransitionInput{Actor: actor, Now: s.now(), Reason: reason})
	if err != nil {
		return nil, s.fail(op, err)
	}
	if err := s.persist(ctx, next, t); err != nil {
		return nil, s.fail(op, err)
	}
	s.record(ctx, next, t)
	s.notifyCreator(ctx, actor, next, t)

	if t.Remove {
		return nil, nil
	}
	return next, nil
}

func (s *eventService) GetPublishedEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.getEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Status != domain.StatusApproved {
		return nil, domain.ErrNotFound
	}
	return event, nil
}

func (s *eventService) ListPublishedEvents(ctx context.Context, category string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	filter := domain.EventFilter{
		Statuses: []domain.EventStatus{domain.StatusApproved},
		Limit:    params.Limit(),
		Offset:   params.Offset(),
	}
	if category = strings.TrimSpace(category); category != "" && category != allCategories {
		filter.Category = category
	}
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

func (s *eventService) ListAdminEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapSubmit); err != nil {
		return nil, err
	}
	var filter domain.EventFilter
	if !actor.Role.Can(domain.CapModerate) {
		filter.CreatedBy = actor.ID
	}
	return s.list(ctx, filter)
}

func (s *eventService) ListPendingEvents(ctx context.Context, actor domain.Actor) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapModerate); err != nil {
		return nil, err
	}
	return s.list(ctx, domain.EventFilter{Statuses: domain.ModerationQueueStatuses})
}

func (s *eventService) list(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) getEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

// persist writes the outcome of t: a conditional delete for removing transitions,
// otherwise a conditional update of next.
func (s *eventService) persist(ctx context.Context, next *domain.Event, t domain.Transition) error {
	if t.Remove {
		if err := s.eventRepo.Delete(ctx, next.ID, next.Version); err != nil {
			return fmt.Errorf("delete event: %w", err)
		}
		return nil
	}
	if err := domain.CheckInvariants(next); err != nil {
		return fmt.Errorf("%s event %s: %w", t.Op, next.ID, err)
	}
	if err := s.eventRepo.Update(ctx, next); err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

func (s *eventService) record(ctx context.Context, e *domain.Event, t domain.Transition) {
	to := string(e.Status)
	if t.Remove {
		to = "deleted"
	}
	from := string(t.From)
	if from == "" {
		from = "none"
	}
	metrics.EventTransitions.WithLabelValues(string(t.Op), from, to).Inc()
	s.logger.InfoContext(ctx, "event transition", "event_id", e.ID, "op", t.Op, "from", from, "to", to)
}

func (s *eventService) fail(op domain.Operation, err error) error {
	metrics.EventTransitionFailures.WithLabelValues(string(op), failureKind(err)).Inc()
	return err
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return "validation"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	}
	return "store"
}

// notifyModerators emails every super-admin except the actor. Failures are logged only.
func (s *eventService) notifyModerators(ctx context.Context, actor domain.Actor, e *domain.Event, request string) {
	if s.emailService == nil {
		return
	}
	admins, err := s.adminRepo.ListByRole(ctx, domain.RoleSuperAdmin)
	if err != nil {
		s.logger.WarnContext(ctx, "list super admins for notification", "event_id", e.ID, "err", err)
		return
	}
	requester := actor.ID
	if a, err := s.adminRepo.GetByID(ctx, actor.ID); err == nil {
		requester = a.Username
	}
	for _, admin := range admins {
		if admin.ID == actor.ID {
			continue
		}
		err := s.emailService.SendModerationRequest(ctx, &domain.ModerationRequestEmailData{
			Email:      admin.Email,
			EventID:    e.ID,
			EventTitle: e.Title,
			Request:    request,
			Requester:  requester,
		})
		s.countNotification(ctx, moderationRequestTemplate, e.ID, err)
	}
}

// notifyCreator emails the event's creator about a decision made by someone else.
func (s *eventService) notifyCreator(ctx context.Context, actor domain.Actor, e *domain.Event, t domain.Transition) {
	if s.emailService == nil || e.CreatedBy == actor.ID {
		return
	}
	decision := decisionFor(t)
	if decision == "" {
		return
	}
	creator, err := s.adminRepo.GetByID(ctx, e.CreatedBy)
	if err != nil {
		s.logger.WarnContext(ctx, "load event creator for notification", "event_id", e.ID, "err", err)
		return
	}
	data := &domain.ModerationDecisionEmailData{
		Email:      creator.Email,
		Username:   creator.Username,
		EventID:    e.ID,
		EventTitle: e.Title,
		Decision:   decision,
	}
	if t.Op == domain.OpReject && e.RejectionReason != nil {
		data.Reason = *e.RejectionReason
	}
	err = s.emailService.SendModerationDecision(ctx, data)
	s.countNotification(ctx, moderationDecisionTemplate, e.ID, err)
}

func (s *eventService) countNotification(ctx context.Context, template, eventID string, err error) {
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(template, "error").Inc()
		s.logger.WarnContext(ctx, "moderation notification failed", "template", template, "event_id", eventID, "err", err)
		return
	}
	metrics.NotificationsSent.WithLabelValues(template, "sent").Inc()
}

func decisionFor(t domain.Transition) string {
	switch t.Op {
	case domain.OpApprove:
		if t.From == domain.StatusPendingEdit {
			return "edit approved"
		}
		return "approved"
	case domain.OpApproveEdit:
		return "edit approved"
	case domain.OpReject:
		if t.From == domain.StatusPendingEdit {
			return "edit rejected"
		}
		return "rejected"
	case domain.OpApproveDelete:
		return "deletion approved"
	case domain.OpRejectDelete:
		return "deletion rejected"
	}
	return ""
}

func sanitizeFields(f domain.EventFields) domain.EventFields {
	return domain.EventFields{
		Title:       sanitize.Text(f.Title),
		Date:        sanitize.Text(f.Date),
		Location:    sanitize.Text(f.Location),
		Description: sanitize.HTML(f.Description),
		Image:       strings.TrimSpace(f.Image),
		Tags:        sanitize.TextSlice(f.Tags),
		Category:    sanitize.Text(f.Category),
	}
}

func sanitizePatch(p domain.EventPatch) domain.EventPatch {
	text := func(v *string, clean func(string) string) *string {
		if v == nil {
			return nil
		}
		out := clean(*v)
		return &out
	}
	out := domain.EventPatch{
		Title:       text(p.Title, sanitize.Text),
		Date:        text(p.Date, sanitize.Text),
		Location:    text(p.Location, sanitize.Text),
		Description: text(p.Description, sanitize.HTML),
		Image:       text(p.Image, strings.TrimSpace),
		Category:    text(p.Category, sanitize.Text),
	}
	if p.Tags != nil {
		tags := sanitize.TextSlice(*p.Tags)
		if tags == nil {
			tags = []string{}
		}
		out.Tags = &tags
	}
	return out
}

// validatePatch rejects patches that would blank out a required field.
func validatePatch(p domain.EventPatch) error {
	var problems []string
	for _, f := range []struct {
		name  string
		value *string
	}{
		{"title", p.Title},
		{"date", p.Date},
		{"location", p.Location},
		{"description", p.Description},
		{"image", p.Image},
		{"category", p.Category},
	} {
		if f.value != nil && *f.value == "" {
			problems = append(problems, f.name+" is required")
		}
	}
	if len(problems) > 0 {
		return domain.NewValidationError(problems...)
	}
	return nil
}
