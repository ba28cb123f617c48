package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"time"

	"sportify/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// fakeEventRepo is an in-memory EventRepository with version checks.
type fakeEventRepo struct {
	byID      map[string]*domain.Event
	nextID    int
	createErr error
	listErr   error
	// afterGet runs after GetByID has returned its copy; tests use it to
	// simulate a concurrent writer.
	afterGet func(id string)
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{byID: make(map[string]*domain.Event), nextID: 1}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	e.Version = 1
	f.nextID++
	f.byID[e.ID] = e.Clone()
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := e.Clone()
	if f.afterGet != nil {
		f.afterGet(id)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *domain.Event) error {
	stored, ok := f.byID[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != e.Version {
		return domain.ErrConflict
	}
	e.Version++
	f.byID[e.ID] = e.Clone()
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string, version int) error {
	stored, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if stored.Version != version {
		return domain.ErrConflict
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeEventRepo) matching(filter domain.EventFilter) []*domain.Event {
	var out []*domain.Event
	for _, e := range f.byID {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, e.Status) {
			continue
		}
		if filter.CreatedBy != "" && e.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (f *fakeEventRepo) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := f.matching(filter)
	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return nil, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeEventRepo) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	if f.listErr != nil {
		return 0, f.listErr
	}
	return len(f.matching(filter)), nil
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	byID          map[string]*domain.Admin
	nextID        int
	listByRoleErr error
	lastLoginErr  error
}

func newFakeAdminRepo(admins ...*domain.Admin) *fakeAdminRepo {
	f := &fakeAdminRepo{byID: make(map[string]*domain.Admin), nextID: 1}
	for _, a := range admins {
		f.byID[a.ID] = a
	}
	return f
}

func (f *fakeAdminRepo) Create(ctx context.Context, a *domain.Admin) error {
	a.ID = fmt.Sprintf("adm-%d", f.nextID)
	f.nextID++
	f.byID[a.ID] = a
	return nil
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if a, ok := f.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	for _, a := range f.byID {
		if a.Username == username {
			return a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeAdminRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	for _, a := range f.byID {
		if a.Username == username || a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAdminRepo) List(ctx context.Context) ([]*domain.Admin, error) {
	var out []*domain.Admin
	for _, a := range f.byID {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAdminRepo) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Admin, error) {
	if f.listByRoleErr != nil {
		return nil, f.listByRoleErr
	}
	var out []*domain.Admin
	for _, a := range f.byID {
		if a.Role == role {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeAdminRepo) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.PasswordHash = hash
	a.Salt = salt
	return nil
}

func (f *fakeAdminRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	if f.lastLoginErr != nil {
		return f.lastLoginErr
	}
	a, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.LastLogin = &at
	return nil
}

func (f *fakeAdminRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// fakeHasher stores "salt:password" as the hash.
type fakeHasher struct {
	saltN int
}

func (h *fakeHasher) GenerateSalt() (string, error) {
	h.saltN++
	return fmt.Sprintf("salt%d", h.saltN), nil
}

func (h *fakeHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}

func (h *fakeHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return errors.New("mismatch")
	}
	return nil
}

type fakeTokenIssuer struct {
	lastAdminID string
	lastRole    domain.Role
	lastExpiry  time.Duration
}

func (i *fakeTokenIssuer) Issue(adminID, username string, role domain.Role, expiry time.Duration) (string, error) {
	i.lastAdminID = adminID
	i.lastRole = role
	i.lastExpiry = expiry
	return "token-" + adminID, nil
}

// fakeTokenVerifier accepts tokens of the form "token-<adminID>".
type fakeTokenVerifier struct{}

func (fakeTokenVerifier) Verify(token string) (string, error) {
	const prefix = "token-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", errors.New("bad token")
	}
	return token[len(prefix):], nil
}

// fakeEmailService records every notification.
type fakeEmailService struct {
	requests  []*domain.ModerationRequestEmailData
	decisions []*domain.ModerationDecisionEmailData
	err       error
}

func (f *fakeEmailService) SendModerationRequest(ctx context.Context, data *domain.ModerationRequestEmailData) error {
	f.requests = append(f.requests, data)
	return f.err
}

func (f *fakeEmailService) SendModerationDecision(ctx context.Context, data *domain.ModerationDecisionEmailData) error {
	f.decisions = append(f.decisions, data)
	return f.err
}

type fakeCategoryRepo struct {
	byID   map[string]*domain.Category
	nextID int
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{byID: make(map[string]*domain.Category), nextID: 1}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *domain.Category) error {
	c.ID = fmt.Sprintf("cat-%d", f.nextID)
	f.nextID++
	f.byID[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	for _, c := range f.byID {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, c := range f.byID {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeFeedbackRepo struct {
	items  []*domain.Feedback
	nextID int
}

func (f *fakeFeedbackRepo) Create(ctx context.Context, fb *domain.Feedback) error {
	f.nextID++
	fb.ID = fmt.Sprintf("fb-%d", f.nextID)
	f.items = append(f.items, fb)
	return nil
}

func (f *fakeFeedbackRepo) List(ctx context.Context) ([]*domain.Feedback, error) {
	return f.items, nil
}

func (f *fakeFeedbackRepo) Delete(ctx context.Context, id string) error {
	for i, fb := range f.items {
		if fb.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
