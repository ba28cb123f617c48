package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"sportify/internal/domain"
)

const eventColumns = `id, title, date, location, description, image, tags, category, status, pending_changes,
		created_by, approved_by, rejected_by, delete_requested_by, rejection_reason,
		created_at, updated_at, approved_at, rejected_at, delete_requested_at, version`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	pending, err := encodePendingChanges(e.PendingChanges)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO events (title, date, location, description, image, tags, category, status, pending_changes,
			created_by, approved_by, rejected_by, delete_requested_by, rejection_reason,
			created_at, updated_at, approved_at, rejected_at, delete_requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id, version
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Date, e.Location, e.Description, e.Image, pq.Array(tagsOrEmpty(e.Tags)), e.Category, string(e.Status), pending,
		e.CreatedBy, e.ApprovedBy, e.RejectedBy, e.DeleteRequestedBy, e.RejectionReason,
		e.CreatedAt, e.UpdatedAt, e.ApprovedAt, e.RejectedAt, e.DeleteRequestedAt,
	).Scan(&e.ID, &e.Version)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapLookupErr(err)
	}
	return e, nil
}

// Update writes every mutable column when the stored version still equals e.Version,
// and advances e.Version on success.
func (r *eventRepository) Update(ctx context.Context, e *domain.Event) error {
	pending, err := encodePendingChanges(e.PendingChanges)
	if err != nil {
		return err
	}
	query := `
		UPDATE events
		SET title = $2, date = $3, location = $4, description = $5, image = $6, tags = $7, category = $8,
			status = $9, pending_changes = $10, approved_by = $11, rejected_by = $12, delete_requested_by = $13,
			rejection_reason = $14, updated_at = $15, approved_at = $16, rejected_at = $17, delete_requested_at = $18,
			version = version + 1
		WHERE id = $1 AND version = $19
		RETURNING version
	`
	var version int
	err = r.DB.QueryRowContext(ctx, query,
		e.ID, e.Title, e.Date, e.Location, e.Description, e.Image, pq.Array(tagsOrEmpty(e.Tags)), e.Category,
		string(e.Status), pending, e.ApprovedBy, e.RejectedBy, e.DeleteRequestedBy,
		e.RejectionReason, e.UpdatedAt, e.ApprovedAt, e.RejectedAt, e.DeleteRequestedAt,
		e.Version,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return r.missOrConflict(ctx, e.ID)
	}
	if err != nil {
		return mapLookupErr(err)
	}
	e.Version = version
	return nil
}

func (r *eventRepository) Delete(ctx context.Context, id string, version int) error {
	query := `DELETE FROM events WHERE id = $1 AND version = $2`
	err := expectOneRow(r.DB.ExecContext(ctx, query, id, version))
	if errors.Is(err, domain.ErrNotFound) {
		return r.missOrConflict(ctx, id)
	}
	return err
}

// missOrConflict tells apart a row that is gone from one whose version moved on.
func (r *eventRepository) missOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, id).Scan(&exists); err != nil {
		return mapLookupErr(err)
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	where, args := eventWhere(filter)
	query := `SELECT ` + eventColumns + ` FROM events` + where + ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Count(ctx context.Context, filter domain.EventFilter) (int, error) {
	where, args := eventWhere(filter)
	var n int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func eventWhere(filter domain.EventFilter) (string, []any) {
	var clauses []string
	var args []any
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		args = append(args, pq.Array(statuses))
		clauses = append(clauses, fmt.Sprintf("status = ANY($%d)", len(args)))
	}
	if filter.CreatedBy != "" {
		args = append(args, filter.CreatedBy)
		clauses = append(clauses, fmt.Sprintf("created_by = $%d", len(args)))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		clauses = append(clauses, fmt.Sprintf("category = $%d", len(args)))
	}
	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var (
		status                                    string
		tags                                      pq.StringArray
		pending                                   []byte
		approvedBy, rejectedBy, deleteRequestedBy sql.NullString
		reason                                    sql.NullString
		approvedAt, rejectedAt, deleteRequestedAt sql.NullTime
	)
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.Location, &e.Description, &e.Image, &tags, &e.Category, &status, &pending,
		&e.CreatedBy, &approvedBy, &rejectedBy, &deleteRequestedBy, &reason,
		&e.CreatedAt, &e.UpdatedAt, &approvedAt, &rejectedAt, &deleteRequestedAt, &e.Version,
	)
	if err != nil {
		return nil, err
	}
	e.Status = domain.EventStatus(status)
	e.Tags = []string(tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	if len(pending) > 0 {
		var fields domain.EventFields
		if err := json.Unmarshal(pending, &fields); err != nil {
			return nil, fmt.Errorf("decode pending_changes of event %s: %w", e.ID, err)
		}
		e.PendingChanges = &fields
	}
	e.ApprovedBy = nullStringPtr(approvedBy)
	e.RejectedBy = nullStringPtr(rejectedBy)
	e.DeleteRequestedBy = nullStringPtr(deleteRequestedBy)
	e.RejectionReason = nullStringPtr(reason)
	if approvedAt.Valid {
		e.ApprovedAt = &approvedAt.Time
	}
	if rejectedAt.Valid {
		e.RejectedAt = &rejectedAt.Time
	}
	if deleteRequestedAt.Valid {
		e.DeleteRequestedAt = &deleteRequestedAt.Time
	}
	return e, nil
}

// encodePendingChanges returns the JSON text for the pending_changes column, or nil
// for SQL NULL. Text rather than []byte: lib/pq sends []byte as bytea.
func encodePendingChanges(fields *domain.EventFields) (any, error) {
	if fields == nil {
		return nil, nil
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode pending_changes: %w", err)
	}
	return string(b), nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
