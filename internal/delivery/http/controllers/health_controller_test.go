package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthController_Health(t *testing.T) {
	tests := []struct {
		name         string
		pingErr      error
		wantStatus   int
		wantDatabase string
	}{
		{name: "healthy", wantStatus: http.StatusOK, wantDatabase: "up"},
		{name: "database down", pingErr: errors.New("dial tcp: refused"), wantStatus: http.StatusServiceUnavailable, wantDatabase: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewHealthController(testLogger, fakePinger{err: tt.pingErr}, "1.2.3")
			ctrl.now = func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }
			rr := httptest.NewRecorder()

			ctrl.Health(rr, newRequest(t, http.MethodGet, "/api/health", nil, nil, nil))

			require.Equal(t, tt.wantStatus, rr.Code)
			var got HealthResponse
			decodeData(t, rr, &got)
			assert.Equal(t, tt.wantDatabase, got.Database)
			assert.Equal(t, "1.2.3", got.Version)
			assert.Equal(t, "Sportify API is running", got.Message)
		})
	}
}
