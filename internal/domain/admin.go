package domain

import (
	"context"
	"time"
)

// Admin represents an account that can sign in to the admin panel.
// swagger:model Admin
type Admin struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Salt         string     `json:"-"`
	Role         Role       `json:"role"`
	CreatedBy    *string    `json:"created_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

// Actor returns the identity used for authorization decisions.
func (a *Admin) Actor() Actor {
	return Actor{ID: a.ID, Role: a.Role}
}

// NewAdminInput holds the fields accepted when creating an admin.
type NewAdminInput struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Role     string `validate:"omitempty,oneof=admin super_admin"`
}

// ChangePasswordInput holds the fields accepted when changing a password.
// TargetAdminID is empty when actors change their own password.
type ChangePasswordInput struct {
	CurrentPassword string
	NewPassword     string
	TargetAdminID   string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string `json:"token"`
	Admin *Admin `json:"user"`
}

// PasswordHasher handles salt generation, hashing, and verification.
// Implementations may use bcrypt, argon2, etc.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated admin.
type TokenIssuer interface {
	Issue(adminID, username string, role Role, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated admin ID.
type TokenVerifier interface {
	Verify(token string) (adminID string, err error)
}

// AdminRepository defines the interface for admin storage.
type AdminRepository interface {
	Create(ctx context.Context, admin *Admin) error
	GetByID(ctx context.Context, id string) (*Admin, error)
	GetByUsername(ctx context.Context, username string) (*Admin, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	List(ctx context.Context) ([]*Admin, error)
	ListByRole(ctx context.Context, role Role) ([]*Admin, error)
	UpdatePassword(ctx context.Context, id, hash, salt string) error
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// AuthService signs admins in and resolves bearer tokens to actors.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Authenticate(ctx context.Context, token string) (Actor, error)
}

// AdminService manages admin accounts.
type AdminService interface {
	Me(ctx context.Context, actor Actor) (*Admin, error)
	ListAdmins(ctx context.Context, actor Actor) ([]*Admin, error)
	CreateAdmin(ctx context.Context, actor Actor, in NewAdminInput) (*Admin, error)
	ChangePassword(ctx context.Context, actor Actor, in ChangePasswordInput) error
	DeleteAdmin(ctx context.Context, actor Actor, adminID string) error
	BootstrapSuperAdmin(ctx context.Context, username, email, password string) (*Admin, bool, error)
}
