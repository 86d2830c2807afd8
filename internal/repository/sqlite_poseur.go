package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
)

// SQLitePoseurRepo implements PoseurRepo using a SQLite database.
type SQLitePoseurRepo struct {
	db db.DBTX
}

// NewSQLitePoseurRepo creates a new SQLitePoseurRepo.
func NewSQLitePoseurRepo(db db.DBTX) *SQLitePoseurRepo {
	return &SQLitePoseurRepo{db: db}
}

func (r *SQLitePoseurRepo) Create(ctx context.Context, p *domain.Poseur) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO poseurs (id, name, created_at) VALUES (?, ?, ?)`,
		p.ID, p.Name, p.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting poseur: %w", err)
	}
	return nil
}

func (r *SQLitePoseurRepo) GetByID(ctx context.Context, id string) (*domain.Poseur, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM poseurs WHERE id = ?`, id)
	p, err := scanPoseur(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("poseur %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePoseurRepo) List(ctx context.Context) ([]*domain.Poseur, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM poseurs ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing poseurs: %w", err)
	}
	defer rows.Close()

	var out []*domain.Poseur
	for rows.Next() {
		p, err := scanPoseur(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating poseurs: %w", err)
	}
	return out, nil
}

func scanPoseur(s rowScanner) (*domain.Poseur, error) {
	var p domain.Poseur
	var createdAt string
	if err := s.Scan(&p.ID, &p.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning poseur: %w", err)
	}
	t, err := parseTimestamp(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	p.CreatedAt = t
	return &p, nil
}
