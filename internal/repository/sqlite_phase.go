package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLitePhaseRepo implements PhaseRepo using a SQLite database.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

const phaseColumns = `id, chantier_id, group_id, sequence_number, title,
	start_date, start_hour, end_date, end_hour, duration_hours,
	assignee_id, budget, created_at, updated_at`

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.WorkPhase) error {
	query := `INSERT INTO phases (` + phaseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.ChantierID,
		nullableIntToValue(p.GroupID),
		p.SequenceNumber,
		p.Title,
		p.StartDate.String(),
		p.StartHour,
		p.EndDate.String(),
		p.EndHour,
		p.DurationHours,
		nullableStrToValue(p.AssigneeID),
		nullableFloatToValue(p.Budget),
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.WorkPhase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id)
	p, err := scanPhase(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("phase %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *SQLitePhaseRepo) ListByChantier(ctx context.Context, chantierID string) ([]domain.WorkPhase, error) {
	return r.list(ctx, "listing phases by chantier",
		`SELECT `+phaseColumns+` FROM phases WHERE chantier_id = ?
		ORDER BY start_date, start_hour, sequence_number, id`, chantierID)
}

// ListChain returns every phase of one group of one chantier.
func (r *SQLitePhaseRepo) ListChain(ctx context.Context, chantierID string, groupID int) ([]domain.WorkPhase, error) {
	return r.list(ctx, "listing phase chain",
		`SELECT `+phaseColumns+` FROM phases WHERE chantier_id = ? AND group_id = ?
		ORDER BY start_date, start_hour, sequence_number, id`, chantierID, groupID)
}

// ListInRange returns phases overlapping [from, to], across all chantiers.
func (r *SQLitePhaseRepo) ListInRange(ctx context.Context, from, to civil.Date) ([]domain.WorkPhase, error) {
	return r.list(ctx, "listing phases in range",
		`SELECT `+phaseColumns+` FROM phases WHERE start_date <= ? AND end_date >= ?
		ORDER BY start_date, start_hour, sequence_number, id`, to.String(), from.String())
}

// ListByIDPrefix returns phases whose id starts with prefix.
func (r *SQLitePhaseRepo) ListByIDPrefix(ctx context.Context, prefix string) ([]domain.WorkPhase, error) {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return r.list(ctx, "listing phases by id prefix",
		`SELECT `+phaseColumns+` FROM phases WHERE id LIKE ? ESCAPE '\' ORDER BY id`, escaped+"%")
}

// NextSequence returns one past the highest sequence number used in the chain.
func (r *SQLitePhaseRepo) NextSequence(ctx context.Context, chantierID string, groupID int) (int, error) {
	var highest sql.NullInt64
	err := r.db.QueryRowContext(ctx,
		`SELECT MAX(sequence_number) FROM phases WHERE chantier_id = ? AND group_id = ?`,
		chantierID, groupID).Scan(&highest)
	if err != nil {
		return 0, fmt.Errorf("reading next sequence: %w", err)
	}
	if !highest.Valid {
		return 1, nil
	}
	return int(highest.Int64) + 1, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.WorkPhase) error {
	query := `UPDATE phases SET group_id = ?, sequence_number = ?, title = ?,
		start_date = ?, start_hour = ?, end_date = ?, end_hour = ?, duration_hours = ?,
		assignee_id = ?, budget = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableIntToValue(p.GroupID),
		p.SequenceNumber,
		p.Title,
		p.StartDate.String(),
		p.StartHour,
		p.EndDate.String(),
		p.EndHour,
		p.DurationHours,
		nullableStrToValue(p.AssigneeID),
		nullableFloatToValue(p.Budget),
		p.UpdatedAt.UTC().Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return checkAffected(res, "phase "+p.ID)
}

// ApplyUpdates writes a batch of schedule changes. Callers wanting the batch
// to be all-or-nothing run it inside a UnitOfWork transaction.
func (r *SQLitePhaseRepo) ApplyUpdates(ctx context.Context, updates []domain.PhaseUpdate) error {
	now := nowUTC()
	for _, u := range updates {
		res, err := r.db.ExecContext(ctx,
			`UPDATE phases SET start_date = ?, start_hour = ?, end_date = ?, end_hour = ?, updated_at = ?
			WHERE id = ?`,
			u.Start.Date.String(), u.Start.Hour, u.End.Date.String(), u.End.Hour, now, u.PhaseID)
		if err != nil {
			return fmt.Errorf("applying update to phase %s: %w", u.PhaseID, err)
		}
		if err := checkAffected(res, "phase "+u.PhaseID); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return checkAffected(res, "phase "+id)
}

func (r *SQLitePhaseRepo) list(ctx context.Context, what, query string, args ...any) ([]domain.WorkPhase, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	defer rows.Close()

	var out []domain.WorkPhase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", what, err)
	}
	return out, nil
}

func scanPhase(s rowScanner) (domain.WorkPhase, error) {
	var p domain.WorkPhase
	var (
		groupID              sql.NullInt64
		startDate, endDate   string
		startHour, endHour   sql.NullString
		assignee             sql.NullString
		budget               sql.NullFloat64
		createdAt, updatedAt string
	)
	err := s.Scan(&p.ID, &p.ChantierID, &groupID, &p.SequenceNumber, &p.Title,
		&startDate, &startHour, &endDate, &endHour, &p.DurationHours,
		&assignee, &budget, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning phase: %w", err)
	}

	if p.StartDate, err = parseDateColumn(startDate, "start_date"); err != nil {
		return p, err
	}
	if p.EndDate, err = parseDateColumn(endDate, "end_date"); err != nil {
		return p, err
	}
	p.StartHour = parseHourColumn(startHour)
	p.EndHour = parseHourColumn(endHour)
	p.GroupID = intPtrFromNull(groupID)
	p.AssigneeID = strPtrFromNull(assignee)
	p.Budget = floatPtrFromNull(budget)

	if p.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return p, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return p, err
	}
	return p, nil
}
