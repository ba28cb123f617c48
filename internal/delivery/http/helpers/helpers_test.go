package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sportify/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var env APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	return env
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query string
		want  domain.PaginationParams
	}{
		{"", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"page=3&page_size=5", domain.PaginationParams{Page: 3, PageSize: 5}},
		{"page=0&page_size=-1", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"page=abc", domain.PaginationParams{Page: 1, PageSize: 20}},
		{"page_size=1000", domain.PaginationParams{Page: 1, PageSize: MaxPageSize}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/events?"+tt.query, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(domain.PaginationParams{Page: 2, PageSize: 10}, 21)
	assert.Equal(t, PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, meta)
	assert.Equal(t, 0, NewPaginationMeta(domain.PaginationParams{Page: 1}, 5).TotalPages)
}

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{domain.NewValidationError("title is required"), http.StatusBadRequest, ErrCodeBadRequest, "title is required"},
		{fmt.Errorf("create category: %w", domain.ErrDuplicate), http.StatusBadRequest, ErrCodeBadRequest, "create category: already exists"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, ErrCodeUnauthorized, "unauthorized"},
		{domain.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, "forbidden"},
		{fmt.Errorf("get event: %w", domain.ErrNotFound), http.StatusNotFound, ErrCodeNotFound, "get event: not found"},
		{domain.ErrConflict, http.StatusConflict, ErrCodeConflict, "conflict"},
		{errors.New("connection refused"), http.StatusInternalServerError, ErrCodeInternalError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteServiceError(rr, tt.err)
			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			require.NotNil(t, env.Error)
			assert.Nil(t, env.Data)
			assert.Equal(t, tt.wantCode, env.Error.Code)
			assert.Equal(t, tt.wantMsg, env.Error.Message)
		})
	}
}

type loginBody struct {
	Username string `json:"username"`
}

func (b loginBody) Validate() []string {
	if b.Username == "" {
		return []string{"username is required"}
	}
	return nil
}

func TestDecodeAndValidate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		limit      int64
		wantOK     bool
		wantStatus int
		wantMsg    string
	}{
		{name: "valid", body: `{"username":"ana"}`, wantOK: true},
		{name: "validation failure", body: `{"username":""}`, wantStatus: http.StatusBadRequest, wantMsg: "username is required"},
		{name: "unknown field", body: `{"username":"ana","role":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "body too large", body: `{"username":"` + strings.Repeat("a", 64) + `"}`, limit: 16, wantStatus: http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(tt.body))
			if tt.limit > 0 {
				r.Body = http.MaxBytesReader(rr, r.Body, tt.limit)
			}
			var dest loginBody
			ok := DecodeAndValidate(rr, r, &dest)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, "ana", dest.Username)
				return
			}
			require.Equal(t, tt.wantStatus, rr.Code)
			env := decodeEnvelope(t, rr)
			require.NotNil(t, env.Error)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, env.Error.Message)
			}
		})
	}
}
