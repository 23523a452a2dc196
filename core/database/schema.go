package database

import (
	"context"

	"sampark-api/core/logger"
)

// Schema statements are idempotent so startup can run them every time.
//
// The partial unique index on connections is the storage-level guarantee
// that at most one live (Pending/Accepted) row exists per unordered email
// pair. Guest requests have an empty source_email and no well-defined
// pair, so they are excluded. Rejected rows are excluded too: a rejected
// pair may be re-requested, which creates a fresh row.
var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`,

	`CREATE TABLE IF NOT EXISTS attendees (
		id                 UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
		name               TEXT NOT NULL,
		email              TEXT NOT NULL,
		phone              TEXT NOT NULL DEFAULT '',
		university         TEXT NOT NULL DEFAULT '',
		department         TEXT NOT NULL DEFAULT '',
		year               TEXT NOT NULL DEFAULT '',
		theme              TEXT NOT NULL DEFAULT '',
		participation_type TEXT NOT NULL DEFAULT '',
		team_name          TEXT NOT NULL DEFAULT '',
		note               TEXT NOT NULL DEFAULT '',
		password_hash      TEXT NOT NULL DEFAULT '',
		status             TEXT NOT NULL DEFAULT 'Pending',
		linkedin           TEXT NOT NULL DEFAULT '',
		instagram          TEXT NOT NULL DEFAULT '',
		github             TEXT NOT NULL DEFAULT '',
		slug               TEXT NOT NULL DEFAULT ''
	)`,

	// Email is compared normalized but stored as entered. The store does
	// not enforce email uniqueness (registration duplicates are a
	// data-quality condition resolved by lowest-created-wins on lookup).
	`CREATE INDEX IF NOT EXISTS idx_attendees_email
		ON attendees (lower(trim(email)))`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_attendees_slug
		ON attendees (slug) WHERE slug <> ''`,

	`CREATE TABLE IF NOT EXISTS connections (
		id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		responded_at TIMESTAMPTZ,
		source_email TEXT NOT NULL DEFAULT '',
		target_email TEXT NOT NULL,
		source_name  TEXT NOT NULL DEFAULT '',
		source_phone TEXT NOT NULL DEFAULT '',
		note         TEXT NOT NULL DEFAULT '',
		status       TEXT NOT NULL DEFAULT 'Pending'
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_connections_pair
		ON connections (
			least(lower(trim(source_email)), lower(trim(target_email))),
			greatest(lower(trim(source_email)), lower(trim(target_email)))
		)
		WHERE status IN ('Pending', 'Accepted') AND source_email <> ''`,

	`CREATE INDEX IF NOT EXISTS idx_connections_source
		ON connections (lower(trim(source_email)))`,

	`CREATE INDEX IF NOT EXISTS idx_connections_target
		ON connections (lower(trim(target_email)))`,
}

func (d *Database) bootstrapSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if err := d.ExecContext(ctx, stmt); err != nil {
			logger.Error("Database:bootstrapSchema:Error:", err, "statement", stmt)
			return err
		}
	}
	return nil
}
