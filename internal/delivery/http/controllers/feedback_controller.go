package controllers

import (
	"log/slog"
	"net/http"

	"sportify/internal/delivery/http/helpers"
	"sportify/internal/domain"
)

// SubmitFeedbackRequest is the request body for POST /api/feedback.
type SubmitFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// FeedbackSuccessResponse is the success response envelope for POST /api/feedback (201).
type FeedbackSuccessResponse struct {
	Data  *domain.Feedback  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListFeedbackSuccessResponse is the success response envelope for GET /api/feedback (200).
type ListFeedbackSuccessResponse struct {
	Data  []*domain.Feedback `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type FeedbackController struct {
	Logger  *slog.Logger
	Service domain.FeedbackService
}

func NewFeedbackController(logger *slog.Logger, svc domain.FeedbackService) *FeedbackController {
	return &FeedbackController{Logger: logger, Service: svc}
}

// SubmitFeedback godoc
// @Summary Leave feedback
// @Description Public. All fields are required.
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedback body SubmitFeedbackRequest true "Feedback"
// @Success 201 {object} controllers.FeedbackSuccessResponse "data contains the stored feedback"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feedback [post]
func (c *FeedbackController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	fb, err := c.Service.SubmitFeedback(r.Context(), req.Name, req.Email, req.Message)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, fb)
}

// ListFeedback godoc
// @Summary List feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListFeedbackSuccessResponse "data contains feedback, newest first"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feedback [get]
func (c *FeedbackController) ListFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	items, err := c.Service.ListFeedback(r.Context(), actor)
	if err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// DeleteFeedback godoc
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID (UUID)"
// @Success 200 {object} controllers.MessageSuccessResponse "data contains a confirmation message"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /feedback/{id} [delete]
func (c *FeedbackController) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "feedback")
	if !ok {
		return
	}
	if err := c.Service.DeleteFeedback(r.Context(), actor, id); err != nil {
		writeError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MessageResponse{Message: "Feedback deleted"})
}
