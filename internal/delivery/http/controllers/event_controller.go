package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"sportify/internal/delivery/http/helpers"
	"sportify/internal/domain"
)

// CreateEventRequest is the request body for POST /api/events.
type CreateEventRequest struct {
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category"`
}

func (req CreateEventRequest) fields() domain.EventFields {
	return domain.EventFields{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		Image:       req.Image,
		Tags:        req.Tags,
		Category:    req.Category,
	}
}

// UpdateEventRequest is the request body for PUT /api/events/{id}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string   `json:"title"`
	Date        *string   `json:"date"`
	Location    *string   `json:"location"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Tags        *[]string `json:"tags"`
	Category    *string   `json:"category"`
}

// Validate implements Validator.
func (req UpdateEventRequest) Validate() []string {
	if req == (UpdateEventRequest{}) {
		return []string{"at least one field is required"}
	}
	return nil
}

func (req UpdateEventRequest) patch() domain.EventPatch {
	return domain.EventPatch{
		Title:       req.Title,
		Date:        req.Date,
		Location:    req.Location,
		Description: req.Description,
		Image:       req.Image,
		Tags:        req.Tags,
		Category:    req.Category,
	}
}

// RejectEventRequest is the request body for PUT /api/events/{id}/reject. The reason is optional.
type RejectEventRequest struct {
	Reason string `json:"reason"`
}

// EventActionResponse is the data payload for event mutations.
type EventActionResponse struct {
	Event   *domain.Event `json:"event"`
	Message string        `json:"message"`
}

// EventActionSuccessResponse is the success response envelope for event mutations.
type EventActionSuccessResponse struct {
	Data  EventActionResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteEventResponse is the data payload for DELETE /api/events/{id}.
// Pending is true when the delete awaits a super admin decision.
type DeleteEventResponse struct {
	Pending bool   `json:"pending"`
	Message string `json:"message"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /api/events/{id} (200).
type DeleteEventSuccessResponse struct {
	Data  DeleteEventResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// GetEventSuccessResponse is the success response envelope for GET /api/events/{id} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventsSuccessResponse is the success response envelope for unpaginated event lists (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListPublishedEventsResponse is the data payload for GET /api/events.
type ListPublishedEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListPublishedEventsSuccessResponse is the success response envelope for GET /api/events (200).
type ListPublishedEventsSuccessResponse struct {
	Data  ListPublishedEventsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// ListPublishedEvents godoc
// @Summary List published events
// @Description Returns approved events, newest first. category=All or an empty category returns every category.
// @Tags events
// @Produce json
// @Param category query string false "Category name"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListPublishedEventsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListPublishedEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	events, total, err := c.Service.ListPublishedEvents(r.Context(), r.URL.Query().Get("category"), params)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPublishedEventsResponse{
		Items:      events,
		Pagination: helpers.NewPaginationMeta(params, total),
	})
}

// GetPublishedEvent godoc
// @Summary Get a published event
// @Description Returns an approved event. Events awaiting moderation or rejected are reported as not found.
// @Tags events
// @Produce json
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [get]
func (c *EventController) GetPublishedEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "event")
	if !ok {
		return
	}
	event, err := c.Service.GetPublishedEvent(r.Context(), id)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ListAdminEvents godoc
// @Summary List events in the admin panel
// @Description Super admins see every event; admins see the events they created. Any status.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/admin [get]
func (c *EventController) ListAdminEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListAdminEvents(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// ListPendingEvents godoc
// @Summary List the moderation queue
// @Description Events in pending, pending_edit or pending_delete. Super admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/pending [get]
func (c *EventController) ListPendingEvents(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	events, err := c.Service.ListPendingEvents(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEvent godoc
// @Summary Create an event
// @Description Super admins publish immediately; admins submit the event for approval.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventActionSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.CreateEvent(r.Context(), actor, req.fields())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	msg := "Event submitted for approval"
	if event.Status == domain.StatusApproved {
		msg = "Event created and published"
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, EventActionResponse{Event: event, Message: msg})
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Super admins edit in place. Owners edit pending or rejected events directly (a rejected event is resubmitted); edits to an approved event are staged for approval.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to change"
// @Success 200 {object} controllers.EventActionSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "event")
	if !ok {
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), actor, id, req.patch())
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	msg := "Event updated"
	switch event.Status {
	case domain.StatusPendingEdit:
		msg = "Changes submitted for approval"
	case domain.StatusPending:
		msg = "Event updated and awaiting approval"
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventActionResponse{Event: event, Message: msg})
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Super admins and owners of unpublished events delete immediately; owners of approved events file a delete request.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data.pending tells whether approval is required"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not owner)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "event")
	if !ok {
		return
	}
	outcome, err := c.Service.DeleteEvent(r.Context(), actor, id)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	msg := "Event deleted"
	if outcome.Pending {
		msg = "Delete request submitted for approval"
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeleteEventResponse{Pending: outcome.Pending, Message: msg})
}

// ApproveEvent godoc
// @Summary Approve an event
// @Description Publishes a pending or rejected event. Approving a pending_delete event keeps it published and drops the delete request. Super admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventActionSuccessResponse "data contains the approved event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/approve [put]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, "Event approved successfully", c.Service.ApproveEvent)
}

// ApproveEdit godoc
// @Summary Approve a pending edit
// @Description Promotes the staged changes of a pending_edit event to its public fields. Super admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventActionSuccessResponse "data contains the updated event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no pending changes)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/approve-edit [put]
func (c *EventController) ApproveEdit(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, "Changes approved successfully", c.Service.ApproveEdit)
}

// RejectEvent godoc
// @Summary Reject an event or a pending edit
// @Description Rejecting a pending_edit discards the staged changes and keeps the event published. Super admin only.
// @Tags moderation
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Param body body RejectEventRequest false "Optional rejection reason"
// @Success 200 {object} controllers.EventActionSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/reject [put]
func (c *EventController) RejectEvent(w http.ResponseWriter, r *http.Request) {
	var req RejectEventRequest
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.moderate(w, r, "Event rejected", func(ctx context.Context, actor domain.Actor, id string) (*domain.Event, error) {
		return c.Service.RejectEvent(ctx, actor, id, req.Reason)
	})
}

// ApproveDelete godoc
// @Summary Approve a delete request
// @Description Removes a pending_delete event. Super admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no pending delete request)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/approve-delete [delete]
func (c *EventController) ApproveDelete(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "event")
	if !ok {
		return
	}
	if err := c.Service.ApproveDelete(r.Context(), actor, id); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Event deleted successfully"})
}

// RejectDelete godoc
// @Summary Reject a delete request
// @Description Keeps a pending_delete event published. Super admin only.
// @Tags moderation
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventActionSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no pending delete request)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{id}/reject-delete [put]
func (c *EventController) RejectDelete(w http.ResponseWriter, r *http.Request) {
	c.moderate(w, r, "Delete request rejected", c.Service.RejectDelete)
}

type moderationFunc func(ctx context.Context, actor domain.Actor, eventID string) (*domain.Event, error)

func (c *EventController) moderate(w http.ResponseWriter, r *http.Request, msg string, decide moderationFunc) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "event")
	if !ok {
		return
	}
	event, err := decide(r.Context(), actor, id)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventActionResponse{Event: event, Message: msg})
}
