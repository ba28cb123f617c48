package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportify/internal/domain"
)

type authService struct {
	adminRepo      domain.AdminRepository
	hasher         domain.PasswordHasher
	issuer         domain.TokenIssuer
	verifier       domain.TokenVerifier
	tokenExpiry    time.Duration
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAuthService creates an AuthService with the given repository and auth ports.
func NewAuthService(adminRepo domain.AdminRepository,
	hasher domain.PasswordHasher,
	issuer domain.TokenIssuer,
	verifier domain.TokenVerifier,
	tokenExpiry time.Duration,
	logger *slog.Logger,
	timeout time.Duration,
) domain.AuthService {
	return &authService{
		adminRepo:      adminRepo,
		hasher:         hasher,
		issuer:         issuer,
		verifier:       verifier,
		tokenExpiry:    tokenExpiry,
		logger:         logger,
		contextTimeout: timeout,
	}
}

var errInvalidCredentials = fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)

func (s *authService) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, domain.NewValidationError("username and password are required")
	}

	admin, err := s.adminRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	if err := s.hasher.Compare(admin.PasswordHash, admin.Salt, password); err != nil {
		return nil, errInvalidCredentials
	}

	token, err := s.issuer.Issue(admin.ID, admin.Username, admin.Role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	now := time.Now()
	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID, now); err != nil {
		s.logger.WarnContext(ctx, "update last login", "admin_id", admin.ID, "err", err)
	} else {
		admin.LastLogin = &now
	}
	s.logger.InfoContext(ctx, "login successful", "admin_id", admin.ID, "role", admin.Role)
	return &domain.LoginResult{Token: token, Admin: admin}, nil
}

// Authenticate resolves a bearer token to the current actor. The role comes from
// the stored admin, not the token, so role changes and deletions apply at once.
func (s *authService) Authenticate(ctx context.Context, token string) (domain.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	adminID, err := s.verifier.Verify(token)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	admin, err := s.adminRepo.GetByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Actor{}, fmt.Errorf("%w: admin no longer exists", domain.ErrUnauthorized)
		}
		return domain.Actor{}, fmt.Errorf("get admin: %w", err)
	}
	return admin.Actor(), nil
}
