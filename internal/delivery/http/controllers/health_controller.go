package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sportify/internal/delivery/http/helpers"
)

// Pinger reports whether a dependency is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthResponse is the data payload for GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthSuccessResponse is the success response envelope for GET /api/health (200).
type HealthSuccessResponse struct {
	Data  HealthResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type HealthController struct {
	Logger  *slog.Logger
	DB      Pinger
	Version string
	now     func() time.Time
}

func NewHealthController(logger *slog.Logger, db Pinger, version string) *HealthController {
	return &HealthController{Logger: logger, DB: db, Version: version, now: time.Now}
}

// Health godoc
// @Summary Health check
// @Description Reports the API and database status. Answers 503 when the database is unreachable.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthSuccessResponse
// @Failure 503 {object} controllers.HealthSuccessResponse "database unreachable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Message:   "Sportify API is running",
		Database:  "up",
		Version:   c.Version,
		Timestamp: c.now().UTC(),
	}
	status := http.StatusOK
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		c.Logger.WarnContext(r.Context(), "database ping failed", "err", err)
		resp.Status = "degraded"
		resp.Database = "down"
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSONSuccess(w, status, resp)
}
