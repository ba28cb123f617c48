package postgres

import (
	"context"
	"database/sql"

	"sportify/internal/domain"
)

type feedbackRepository struct {
	DB *sql.DB
}

func NewFeedbackRepository(db *sql.DB) domain.FeedbackRepository {
	return &feedbackRepository{DB: db}
}

func (r *feedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	query := `
		INSERT INTO feedback (name, email, message, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, f.Name, f.Email, f.Message, f.CreatedAt).Scan(&f.ID)
}

func (r *feedbackRepository) List(ctx context.Context) ([]*domain.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name, email, message, created_at FROM feedback ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]*domain.Feedback, 0)
	for rows.Next() {
		f := &domain.Feedback{}
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	return items, rows.Err()
}

func (r *feedbackRepository) Delete(ctx context.Context, id string) error {
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM feedback WHERE id = $1`, id))
}
