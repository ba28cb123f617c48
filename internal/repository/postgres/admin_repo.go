package postgres

import (
	"context"
	"database/sql"
	"time"

	"sportify/internal/domain"
)

const adminColumns = `id, username, email, password_hash, salt, role, created_by, created_at, last_login`

type adminRepository struct {
	DB *sql.DB
}

func NewAdminRepository(db *sql.DB) domain.AdminRepository {
	return &adminRepository{DB: db}
}

func (r *adminRepository) Create(ctx context.Context, a *domain.Admin) error {
	query := `
		INSERT INTO admins (username, email, password_hash, salt, role, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, a.Username, a.Email, a.PasswordHash, a.Salt, string(a.Role), a.CreatedBy, a.CreatedAt).Scan(&a.ID)
	return mapWriteErr(err)
}

func (r *adminRepository) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return a, nil
}

func (r *adminRepository) GetByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	a, err := scanAdmin(r.DB.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username))
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return a, nil
}

func (r *adminRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM admins WHERE username = $1 OR email = $2)`, username, email).Scan(&exists)
	return exists, err
}

func (r *adminRepository) List(ctx context.Context) ([]*domain.Admin, error) {
	return r.query(ctx, `SELECT `+adminColumns+` FROM admins ORDER BY created_at DESC`)
}

func (r *adminRepository) ListByRole(ctx context.Context, role domain.Role) ([]*domain.Admin, error) {
	return r.query(ctx, `SELECT `+adminColumns+` FROM admins WHERE role = $1 ORDER BY created_at`, string(role))
}

func (r *adminRepository) query(ctx context.Context, query string, args ...any) ([]*domain.Admin, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	admins := make([]*domain.Admin, 0)
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id, hash, salt string) error {
	return expectOneRow(r.DB.ExecContext(ctx, `UPDATE admins SET password_hash = $2, salt = $3 WHERE id = $1`, id, hash, salt))
}

func (r *adminRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return expectOneRow(r.DB.ExecContext(ctx, `UPDATE admins SET last_login = $2 WHERE id = $1`, id, at))
}

func (r *adminRepository) Delete(ctx context.Context, id string) error {
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM admins WHERE id = $1`, id))
}

func scanAdmin(row rowScanner) (*domain.Admin, error) {
	a := &domain.Admin{}
	var role string
	var createdBy sql.NullString
	var lastLogin sql.NullTime
	if err := row.Scan(&a.ID, &a.Username, &a.Email, &a.PasswordHash, &a.Salt, &role, &createdBy, &a.CreatedAt, &lastLogin); err != nil {
		return nil, err
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	a.Role = parsed
	a.CreatedBy = nullStringPtr(createdBy)
	if lastLogin.Valid {
		a.LastLogin = &lastLogin.Time
	}
	return a, nil
}
