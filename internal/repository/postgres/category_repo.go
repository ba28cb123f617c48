package postgres

import (
	"context"
	"database/sql"

	"sportify/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	query := `
		INSERT INTO categories (name, slug, created_by, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return mapWriteErr(r.DB.QueryRowContext(ctx, query, c.Name, c.Slug, c.CreatedBy, c.CreatedAt).Scan(&c.ID))
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	query := `SELECT id, name, slug, created_by, created_at FROM categories WHERE slug = $1`
	c, err := scanCategory(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, slug, created_by, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	categories := make([]*domain.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Delete(ctx context.Context, id string) error {
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id))
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	c := &domain.Category{}
	var createdBy sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.Slug, &createdBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.CreatedBy = createdBy.String
	return c, nil
}
