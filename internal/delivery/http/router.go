package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"sportify/internal/delivery/http/controllers"
	"sportify/internal/delivery/http/helpers"
	"sportify/internal/delivery/http/middleware"
	"sportify/internal/domain"
	"sportify/internal/metrics"
)

// RouterConfig carries the controllers and middleware settings the router wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    domain.AuthService
	Health         *controllers.HealthController
	Admins         *controllers.AdminController
	Events         *controllers.EventController
	Categories     *controllers.CategoryController
	Feedback       *controllers.FeedbackController
	LoginLimiter   *middleware.RateLimiter
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// NewRouter initializes the HTTP router with all application routes and wraps it
// in the request ID, logging, metrics, CORS and body size middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(cfg.AuthService, cfg.Logger)

	mux.HandleFunc("GET /api/health", cfg.Health.Health)

	// Admin
	mux.HandleFunc("POST /api/admin/login", cfg.LoginLimiter.Limit(cfg.Admins.Login))
	mux.HandleFunc("GET /api/admin/me", auth(cfg.Admins.Me))
	mux.HandleFunc("GET /api/admin/list", auth(cfg.Admins.ListAdmins))
	mux.HandleFunc("POST /api/admin/create", auth(cfg.Admins.CreateAdmin))
	mux.HandleFunc("PUT /api/admin/change-password", auth(cfg.Admins.ChangePassword))
	mux.HandleFunc("DELETE /api/admin/{id}", auth(cfg.Admins.DeleteAdmin))

	// Categories
	mux.HandleFunc("GET /api/categories", cfg.Categories.ListCategories)
	mux.HandleFunc("POST /api/categories", auth(cfg.Categories.CreateCategory))
	mux.HandleFunc("DELETE /api/categories/{id}", auth(cfg.Categories.DeleteCategory))

	// Events; literal segments win over {id}.
	mux.HandleFunc("GET /api/events", cfg.Events.ListPublishedEvents)
	mux.HandleFunc("GET /api/events/admin", auth(cfg.Events.ListAdminEvents))
	mux.HandleFunc("GET /api/events/pending", auth(cfg.Events.ListPendingEvents))
	mux.HandleFunc("GET /api/events/{id}", cfg.Events.GetPublishedEvent)
	mux.HandleFunc("POST /api/events", auth(cfg.Events.CreateEvent))
	mux.HandleFunc("PUT /api/events/{id}", auth(cfg.Events.UpdateEvent))
	mux.HandleFunc("DELETE /api/events/{id}", auth(cfg.Events.DeleteEvent))
	mux.HandleFunc("PUT /api/events/{id}/approve", auth(cfg.Events.ApproveEvent))
	mux.HandleFunc("PUT /api/events/{id}/approve-edit", auth(cfg.Events.ApproveEdit))
	mux.HandleFunc("PUT /api/events/{id}/reject", auth(cfg.Events.RejectEvent))
	mux.HandleFunc("DELETE /api/events/{id}/approve-delete", auth(cfg.Events.ApproveDelete))
	mux.HandleFunc("PUT /api/events/{id}/reject-delete", auth(cfg.Events.RejectDelete))

	// Feedback
	mux.HandleFunc("POST /api/feedback", cfg.Feedback.SubmitFeedback)
	mux.HandleFunc("GET /api/feedback", auth(cfg.Feedback.ListFeedback))
	mux.HandleFunc("DELETE /api/feedback/{id}", auth(cfg.Feedback.DeleteFeedback))

	// Operations
	mux.Handle("GET /metrics", metrics.Handler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	})

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestSize(cfg.MaxBodyBytes, handler)
	handler = middleware.LoggingMiddleware(cfg.Logger, handler)
	handler = middleware.RequestID(cfg.Logger, handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)
	return handler
}
