package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order at startup. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		name          TEXT NOT NULL,
		role          TEXT NOT NULL CHECK (role IN ('user', 'organizer', 'admin')),
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		id           UUID PRIMARY KEY,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		date         TEXT NOT NULL,
		time         TEXT NOT NULL,
		location     TEXT NOT NULL,
		organizer_id UUID NOT NULL REFERENCES users (id),
		capacity     INTEGER CHECK (capacity >= 0),
		image_url    TEXT,
		status       TEXT NOT NULL CHECK (status IN ('pending', 'approved', 'rejected')),
		created_at   TIMESTAMPTZ NOT NULL,
		updated_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS events_status_start_idx ON events (status, date, time)`,
	`CREATE INDEX IF NOT EXISTS events_organizer_idx ON events (organizer_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS registrations (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		event_id   UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
		status     TEXT NOT NULL DEFAULT 'registered',
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, event_id)
	)`,
	`CREATE INDEX IF NOT EXISTS registrations_event_idx ON registrations (event_id)`,
	`CREATE TABLE IF NOT EXISTS event_activity (
		id          UUID PRIMARY KEY,
		type        TEXT NOT NULL,
		event_id    UUID NOT NULL,
		actor_id    TEXT NOT NULL DEFAULT '',
		actor_role  TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT '',
		occurred_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS event_activity_event_idx ON event_activity (event_id, occurred_at)`,
}

// Migrate creates the tables and indexes the repositories need.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
