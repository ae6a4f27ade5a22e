package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"portalevents/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// Create inserts the event and sets the store-assigned ID and CreatedAt.
func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category, images)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query, e.Title, e.Description, string(e.Category), pq.Array(e.Images)).
		Scan(&e.ID, &e.CreatedAt)
}

func (r *eventRepository) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Event, error) {
	query := `
		SELECT id, title, description, category, images, created_at
		FROM events
		WHERE category = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		var cat string
		var images pq.StringArray
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &cat, &images, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Category = domain.Category(cat)
		e.Images = []string(images)
		if e.Images == nil {
			e.Images = []string{}
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		if isInvalidText(err) {
			return domain.ErrNotFound
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
