package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"sportify/internal/delivery/http/helpers"
	"sportify/internal/delivery/http/middleware"
	"sportify/internal/domain"

	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const (
	eventID = "6f1c1c7e-2d7a-4f7e-9a55-0f4a4a1d2b10"
	adminID = "0b6e0d8c-59b3-4c0e-8f3e-3a9a0b5c7d21"
)

var (
	owner      = domain.Actor{ID: "admin-1", Role: domain.RoleAdmin}
	superAdmin = domain.Actor{ID: "super-1", Role: domain.RoleSuperAdmin}
)

// newRequest builds a request with an optional JSON body, authenticated actor and path values.
func newRequest(t *testing.T, method, target string, body any, actor *domain.Actor, pathValues map[string]string) *http.Request {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "http://test"+target, reader)
	if actor != nil {
		req = req.WithContext(middleware.SetActor(req.Context(), *actor))
	}
	for k, v := range pathValues {
		req.SetPathValue(k, v)
	}
	return req
}

// decodeData decodes the envelope and unmarshals its data into dest.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var env struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.Nil(t, env.Error)
	require.NoError(t, json.Unmarshal(env.Data, dest))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *helpers.APIError {
	t.Helper()
	var env helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&env))
	require.NotNil(t, env.Error)
	return env.Error
}

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	err       error
	event     *domain.Event
	events    []*domain.Event
	total     int
	outcome   domain.DeleteOutcome
	lastCall  string
	lastActor domain.Actor
	lastID    string
	lastPatch domain.EventPatch
	lastNew   domain.EventFields
	lastCat   string
	lastPage  domain.PaginationParams
	lastWhy   string
}

func (f *fakeEventService) record(call string, actor domain.Actor, id string) {
	f.lastCall, f.lastActor, f.lastID = call, actor, id
}

func (f *fakeEventService) CreateEvent(_ context.Context, actor domain.Actor, fields domain.EventFields) (*domain.Event, error) {
	f.record("create", actor, "")
	f.lastNew = fields
	return f.event, f.err
}

func (f *fakeEventService) UpdateEvent(_ context.Context, actor domain.Actor, id string, patch domain.EventPatch) (*domain.Event, error) {
	f.record("update", actor, id)
	f.lastPatch = patch
	return f.event, f.err
}

func (f *fakeEventService) DeleteEvent(_ context.Context, actor domain.Actor, id string) (domain.DeleteOutcome, error) {
	f.record("delete", actor, id)
	return f.outcome, f.err
}

func (f *fakeEventService) ApproveEvent(_ context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	f.record("approve", actor, id)
	return f.event, f.err
}

func (f *fakeEventService) ApproveEdit(_ context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	f.record("approve-edit", actor, id)
	return f.event, f.err
}

func (f *fakeEventService) RejectEvent(_ context.Context, actor domain.Actor, id, reason string) (*domain.Event, error) {
	f.record("reject", actor, id)
	f.lastWhy = reason
	return f.event, f.err
}

func (f *fakeEventService) ApproveDelete(_ context.Context, actor domain.Actor, id string) error {
	f.record("approve-delete", actor, id)
	return f.err
}

func (f *fakeEventService) RejectDelete(_ context.Context, actor domain.Actor, id string) (*domain.Event, error) {
	f.record("reject-delete", actor, id)
	return f.event, f.err
}

func (f *fakeEventService) GetPublishedEvent(_ context.Context, id string) (*domain.Event, error) {
	f.record("get", domain.Actor{}, id)
	return f.event, f.err
}

func (f *fakeEventService) ListPublishedEvents(_ context.Context, category string, params domain.PaginationParams) ([]*domain.Event, int, error) {
	f.record("list", domain.Actor{}, "")
	f.lastCat, f.lastPage = category, params
	return f.events, f.total, f.err
}

func (f *fakeEventService) ListAdminEvents(_ context.Context, actor domain.Actor) ([]*domain.Event, error) {
	f.record("list-admin", actor, "")
	return f.events, f.err
}

func (f *fakeEventService) ListPendingEvents(_ context.Context, actor domain.Actor) ([]*domain.Event, error) {
	f.record("list-pending", actor, "")
	return f.events, f.err
}

type fakeAuthService struct {
	result       *domain.LoginResult
	err          error
	lastUsername string
	lastPassword string
}

func (f *fakeAuthService) Login(_ context.Context, username, password string) (*domain.LoginResult, error) {
	f.lastUsername, f.lastPassword = username, password
	return f.result, f.err
}

func (f *fakeAuthService) Authenticate(_ context.Context, _ string) (domain.Actor, error) {
	return domain.Actor{}, domain.ErrUnauthorized
}

type fakeAdminService struct {
	admin      *domain.Admin
	admins     []*domain.Admin
	err        error
	lastActor  domain.Actor
	lastInput  domain.NewAdminInput
	lastChange domain.ChangePasswordInput
	lastID     string
}

func (f *fakeAdminService) Me(_ context.Context, actor domain.Actor) (*domain.Admin, error) {
	f.lastActor = actor
	return f.admin, f.err
}

func (f *fakeAdminService) ListAdmins(_ context.Context, actor domain.Actor) ([]*domain.Admin, error) {
	f.lastActor = actor
	return f.admins, f.err
}

func (f *fakeAdminService) CreateAdmin(_ context.Context, actor domain.Actor, in domain.NewAdminInput) (*domain.Admin, error) {
	f.lastActor, f.lastInput = actor, in
	return f.admin, f.err
}

func (f *fakeAdminService) ChangePassword(_ context.Context, actor domain.Actor, in domain.ChangePasswordInput) error {
	f.lastActor, f.lastChange = actor, in
	return f.err
}

func (f *fakeAdminService) DeleteAdmin(_ context.Context, actor domain.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

func (f *fakeAdminService) BootstrapSuperAdmin(_ context.Context, _, _, _ string) (*domain.Admin, bool, error) {
	return f.admin, true, f.err
}

type fakeCategoryService struct {
	category  *domain.Category
	list      []*domain.Category
	err       error
	lastActor domain.Actor
	lastName  string
	lastID    string
}

func (f *fakeCategoryService) ListCategories(_ context.Context) ([]*domain.Category, error) {
	return f.list, f.err
}

func (f *fakeCategoryService) CreateCategory(_ context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	f.lastActor, f.lastName = actor, name
	return f.category, f.err
}

func (f *fakeCategoryService) DeleteCategory(_ context.Context, actor domain.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}

type fakeFeedbackService struct {
	feedback  *domain.Feedback
	list      []*domain.Feedback
	err       error
	lastActor domain.Actor
	lastInput [3]string
	lastID    string
}

func (f *fakeFeedbackService) SubmitFeedback(_ context.Context, name, email, message string) (*domain.Feedback, error) {
	f.lastInput = [3]string{name, email, message}
	return f.feedback, f.err
}

func (f *fakeFeedbackService) ListFeedback(_ context.Context, actor domain.Actor) ([]*domain.Feedback, error) {
	f.lastActor = actor
	return f.list, f.err
}

func (f *fakeFeedbackService) DeleteFeedback(_ context.Context, actor domain.Actor, id string) error {
	f.lastActor, f.lastID = actor, id
	return f.err
}
