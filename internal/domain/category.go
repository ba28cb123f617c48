package domain

import (
	"context"
	"time"
)

// Category groups events on the public site.
// swagger:model Category
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRepository defines storage for categories.
type CategoryRepository interface {
	Create(ctx context.Context, c *Category) error
	GetBySlug(ctx context.Context, slug string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Delete(ctx context.Context, id string) error
}

// CategoryService defines the business logic for categories.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*Category, error)
	CreateCategory(ctx context.Context, actor Actor, name string) (*Category, error)
	DeleteCategory(ctx context.Context, actor Actor, id string) error
}
