package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Schema creates the tables used by the live repositories. Statements are idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS events (
	id          uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	title       text NOT NULL,
	description text NOT NULL,
	category    text NOT NULL,
	images      text[] NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS events_category_created_at_idx ON events (category, created_at DESC);
CREATE TABLE IF NOT EXISTS operators (
	id            uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	email         text NOT NULL UNIQUE,
	password_hash text NOT NULL,
	salt          text NOT NULL,
	name          text NOT NULL,
	created_at    timestamptz NOT NULL DEFAULT now()
);
`

// Open opens a lib/pq connection pool and pings it.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema applies Schema.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, Schema)
	return err
}

// Unique violation (e.g. duplicate operator email).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// Malformed uuid literal; no row can match it.
func isInvalidText(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "22P02"
}
