package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLiteHistoryRepo implements HistoryRepo using a SQLite database.
// Rows are only ever inserted.
type SQLiteHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteHistoryRepo creates a new SQLiteHistoryRepo.
func NewSQLiteHistoryRepo(db db.DBTX) *SQLiteHistoryRepo {
	return &SQLiteHistoryRepo{db: db}
}

// historyTimeLayout is fixed width so that text ordering is chronological.
const historyTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const historyColumns = `id, phase_id, chantier_id, actor_id, timestamp, change_kind, description, old_values, new_values`

func (r *SQLiteHistoryRepo) Append(ctx context.Context, e *domain.HistoryEntry) error {
	if !e.ChangeKind.Valid() {
		return fmt.Errorf("appending history for phase %s: unknown change kind %q", e.PhaseID, e.ChangeKind)
	}
	oldJSON, err := snapshotToValue(e.OldValues)
	if err != nil {
		return err
	}
	newJSON, err := snapshotToValue(e.NewValues)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO phase_history (`+historyColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID,
		e.PhaseID,
		e.ChantierID,
		e.ActorID,
		e.Timestamp.UTC().Format(historyTimeLayout),
		string(e.ChangeKind),
		e.Description,
		oldJSON,
		newJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

// ListByPhase returns the entries of one phase, oldest first.
func (r *SQLiteHistoryRepo) ListByPhase(ctx context.Context, phaseID string) ([]domain.HistoryEntry, error) {
	return r.list(ctx,
		`SELECT `+historyColumns+` FROM phase_history WHERE phase_id = ? ORDER BY timestamp, rowid`,
		phaseID)
}

// ListByChantier returns the newest entries of a chantier first. A limit
// of zero or less returns everything.
func (r *SQLiteHistoryRepo) ListByChantier(ctx context.Context, chantierID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	return r.list(ctx,
		`SELECT `+historyColumns+` FROM phase_history WHERE chantier_id = ?
		ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		chantierID, limit)
}

func (r *SQLiteHistoryRepo) list(ctx context.Context, query string, args ...any) ([]domain.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var out []domain.HistoryEntry
	for rows.Next() {
		var e domain.HistoryEntry
		var ts, kind string
		var oldJSON, newJSON sql.NullString
		if err := rows.Scan(&e.ID, &e.PhaseID, &e.ChantierID, &e.ActorID, &ts, &kind,
			&e.Description, &oldJSON, &newJSON); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}
		e.Timestamp = t
		e.ChangeKind = domain.ChangeKind(kind)
		if !e.ChangeKind.Valid() {
			return nil, fmt.Errorf("history entry %s: unknown change kind %q", e.ID, kind)
		}
		if e.OldValues, err = snapshotFromNull(oldJSON); err != nil {
			return nil, err
		}
		if e.NewValues, err = snapshotFromNull(newJSON); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return out, nil
}

func snapshotToValue(s *domain.PhaseSnapshot) (interface{}, error) {
	if s == nil {
		return nil, nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return string(b), nil
}

func snapshotFromNull(s sql.NullString) (*domain.PhaseSnapshot, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	var snap domain.PhaseSnapshot
	if err := json.Unmarshal([]byte(s.String), &snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	return &snap, nil
}
