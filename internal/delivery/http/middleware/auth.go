package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "sportify/internal/delivery/http/helpers"
	"sportify/internal/domain"
)

type contextKey string

const actorKey contextKey = "actor"

// SetActor returns a context carrying the authenticated actor. Used by auth middleware.
func SetActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// ActorFromContext returns the authenticated actor from the context, if present.
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok && actor.ID != ""
}

// RequireAuth returns a wrapper that resolves the Bearer token to an actor and sets it in the request context.
// If the token is missing or invalid, or its admin no longer exists, it responds with 401 and does not call next.
func RequireAuth(auth domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			actor, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrUnauthorized) {
					logger.ErrorContext(r.Context(), "authenticate request", "err", err)
					h.WriteJSONError(w, http.StatusInternalServerError, h.ErrCodeInternalError, "internal server error")
					return
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			next(w, r.WithContext(SetActor(r.Context(), actor)))
		}
	}
}
