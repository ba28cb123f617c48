package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"sportify/internal/domain"
	"sportify/internal/sanitize"
)

var slugSeparator = regexp.MustCompile(`[^a-z0-9]+`)

type categoryService struct {
	categoryRepo   domain.CategoryRepository
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(categoryRepo domain.CategoryRepository, logger *slog.Logger, timeout time.Duration) domain.CategoryService {
	return &categoryService{categoryRepo: categoryRepo, logger: logger, contextTimeout: timeout}
}

// Slugify lowercases name and replaces each run of non-alphanumerics with "-".
func Slugify(name string) string {
	return slugSeparator.ReplaceAllString(strings.ToLower(name), "-")
}

func (s *categoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return categories, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.Category, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapSubmit); err != nil {
		return nil, err
	}
	name = sanitize.Text(name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	slug := Slugify(name)

	if _, err := s.categoryRepo.GetBySlug(ctx, slug); err == nil {
		return nil, fmt.Errorf("%w: category %q", domain.ErrDuplicate, name)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get category: %w", err)
	}

	category := &domain.Category{
		Name:      name,
		Slug:      slug,
		CreatedBy: actor.ID,
		CreatedAt: time.Now(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.logger.InfoContext(ctx, "category created", "category_id", category.ID, "slug", slug)
	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, actor domain.Actor, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := actor.Require(domain.CapManageCategories); err != nil {
		return err
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
