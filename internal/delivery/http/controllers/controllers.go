package controllers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"sportify/internal/delivery/http/helpers"
	"sportify/internal/delivery/http/middleware"
	"sportify/internal/domain"
)

// MessageResponse is the data payload for operations that return no resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// MessageSuccessResponse is the success response envelope carrying a MessageResponse.
type MessageSuccessResponse struct {
	Data  MessageResponse   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// requireActor returns the authenticated actor or writes 401.
func requireActor(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return domain.Actor{}, false
	}
	return actor, true
}

// pathID reads a UUID path value. A missing or malformed id cannot name a stored
// record, so it is answered like an unknown one.
func pathID(w http.ResponseWriter, r *http.Request, name, resource string) (string, bool) {
	raw := r.PathValue(name)
	if raw == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing "+name)
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, resource+" not found")
		return "", false
	}
	return id.String(), true
}

// writeError logs unexpected failures and writes the mapped error envelope.
func writeError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	if status, _ := helpers.ServiceErrorStatus(err); status == http.StatusInternalServerError {
		middleware.LoggerFromContext(r.Context(), logger).ErrorContext(r.Context(), "request failed",
			"path", r.URL.Path, "method", r.Method, "err", err)
	}
	helpers.WriteServiceError(w, err)
}
