package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS chantiers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		address    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS poseurs (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id              TEXT PRIMARY KEY,
		chantier_id     TEXT NOT NULL REFERENCES chantiers(id) ON DELETE CASCADE,
		group_id        INTEGER,
		sequence_number INTEGER NOT NULL DEFAULT 0,
		title           TEXT NOT NULL DEFAULT '',
		start_date      TEXT NOT NULL,
		start_hour      INTEGER,
		end_date        TEXT NOT NULL,
		end_hour        INTEGER,
		duration_hours  INTEGER NOT NULL CHECK(duration_hours >= 0),
		assignee_id     TEXT REFERENCES poseurs(id) ON DELETE SET NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`ALTER TABLE phases ADD COLUMN budget REAL`,

	`CREATE INDEX IF NOT EXISTS idx_phases_chain ON phases(chantier_id, group_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_assignee ON phases(assignee_id)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_start ON phases(start_date)`,

	// History rows outlive the phase they describe, so phase_id carries no
	// foreign key.
	`CREATE TABLE IF NOT EXISTS phase_history (
		id          TEXT PRIMARY KEY,
		phase_id    TEXT NOT NULL,
		chantier_id TEXT NOT NULL,
		actor_id    TEXT NOT NULL DEFAULT '',
		timestamp   TEXT NOT NULL,
		change_kind TEXT NOT NULL
		            CHECK(change_kind IN ('create','delete','date_change','duration_change',
		                                  'assignee_change','budget_change','update')),
		description TEXT NOT NULL DEFAULT '',
		old_values  TEXT,
		new_values  TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_history_phase ON phase_history(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_history_chantier ON phase_history(chantier_id, timestamp)`,
}
