package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"sportify/internal/domain"
	"sportify/internal/sanitize"
)

const minPasswordLen = 8

type adminService struct {
	adminRepo      domain.AdminRepository
	hasher         domain.PasswordHasher
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewAdminService creates an AdminService.
func NewAdminService(adminRepo domain.AdminRepository, hasher domain.PasswordHasher, logger *slog.Logger, timeout time.Duration) domain.AdminService {
	return &adminService{
		adminRepo:      adminRepo,
		hasher:         hasher,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *adminService) Me(ctx context.Context, actor domain.Actor) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.getAdmin(ctx, actor.ID)
}

func (s *adminService) ListAdmins(ctx context.Context, actor domain.Actor) ([]*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapManageAdmins); err != nil {
		return nil, err
	}
	admins, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	if admins == nil {
		admins = []*domain.Admin{}
	}
	return admins, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, actor domain.Actor, in domain.NewAdminInput) (*domain.Admin, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapManageAdmins); err != nil {
		return nil, err
	}
	createdBy := actor.ID
	return s.create(ctx, in, &createdBy)
}

func (s *adminService) create(ctx context.Context, in domain.NewAdminInput, createdBy *string) (*domain.Admin, error) {
	in.Username = sanitize.Text(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Role = strings.TrimSpace(in.Role)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	exists, err := s.adminRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: username or email already exists", domain.ErrDuplicate)
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	admin := &domain.Admin{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logger.InfoContext(ctx, "admin created", "admin_id", admin.ID, "role", admin.Role)
	return admin, nil
}

// ChangePassword changes the actor's own password, which requires the current one,
// or, for super-admins, the password of another admin.
func (s *adminService) ChangePassword(ctx context.Context, actor domain.Actor, in domain.ChangePasswordInput) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in.NewPassword == "" {
		return domain.NewValidationError("new password is required")
	}
	if len(in.NewPassword) < minPasswordLen {
		return domain.NewValidationError(fmt.Sprintf("new password must be at least %d characters", minPasswordLen))
	}

	targetID := actor.ID
	self := in.TargetAdminID == "" || in.TargetAdminID == actor.ID
	if !self {
		if err := actor.Require(domain.CapManageAdmins); err != nil {
			return err
		}
		targetID = in.TargetAdminID
	} else if in.CurrentPassword == "" {
		return domain.NewValidationError("current password is required")
	}

	target, err := s.getAdmin(ctx, targetID)
	if err != nil {
		return err
	}
	if self {
		if err := s.hasher.Compare(target.PasswordHash, target.Salt, in.CurrentPassword); err != nil {
			return fmt.Errorf("%w: current password is incorrect", domain.ErrUnauthorized)
		}
	}

	salt, err := s.hasher.GenerateSalt()
	if err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}
	hash, err := s.hasher.Hash(salt, in.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.adminRepo.UpdatePassword(ctx, target.ID, hash, salt); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (s *adminService) DeleteAdmin(ctx context.Context, actor domain.Actor, adminID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapManageAdmins); err != nil {
		return err
	}
	if adminID == actor.ID {
		return domain.NewValidationError("cannot delete your own account")
	}
	if err := s.adminRepo.Delete(ctx, adminID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete admin: %w", err)
	}
	s.logger.InfoContext(ctx, "admin deleted", "admin_id", adminID, "by", actor.ID)
	return nil
}

// BootstrapSuperAdmin creates a super-admin unless one with that username exists.
// The bool result reports whether an account was created.
func (s *adminService) BootstrapSuperAdmin(ctx context.Context, username, email, password string) (*domain.Admin, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	existing, err := s.adminRepo.GetByUsername(ctx, sanitize.Text(username))
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get admin: %w", err)
	}
	admin, err := s.create(ctx, domain.NewAdminInput{
		Username: username,
		Email:    email,
		Password: password,
		Role:     string(domain.RoleSuperAdmin),
	}, nil)
	if err != nil {
		return nil, false, err
	}
	return admin, true, nil
}

func (s *adminService) getAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.adminRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return admin, nil
}
