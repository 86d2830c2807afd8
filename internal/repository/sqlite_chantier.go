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

// SQLiteChantierRepo implements ChantierRepo using a SQLite database.
type SQLiteChantierRepo struct {
	db db.DBTX
}

// NewSQLiteChantierRepo creates a new SQLiteChantierRepo.
func NewSQLiteChantierRepo(db db.DBTX) *SQLiteChantierRepo {
	return &SQLiteChantierRepo{db: db}
}

func (r *SQLiteChantierRepo) Create(ctx context.Context, c *domain.Chantier) error {
	query := `INSERT INTO chantiers (id, name, address, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.Name,
		c.Address,
		c.CreatedAt.UTC().Format(time.RFC3339),
		c.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting chantier: %w", err)
	}
	return nil
}

func (r *SQLiteChantierRepo) GetByID(ctx context.Context, id string) (*domain.Chantier, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, address, created_at, updated_at FROM chantiers WHERE id = ?`, id)
	c, err := scanChantier(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("chantier %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLiteChantierRepo) List(ctx context.Context) ([]*domain.Chantier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, address, created_at, updated_at FROM chantiers ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("listing chantiers: %w", err)
	}
	defer rows.Close()

	var out []*domain.Chantier
	for rows.Next() {
		c, err := scanChantier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chantiers: %w", err)
	}
	return out, nil
}

// Delete removes the chantier; its phases go with it through the foreign key.
func (r *SQLiteChantierRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM chantiers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting chantier: %w", err)
	}
	return checkAffected(res, "chantier "+id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChantier(s rowScanner) (*domain.Chantier, error) {
	var c domain.Chantier
	var createdAt, updatedAt string
	if err := s.Scan(&c.ID, &c.Name, &c.Address, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chantier: %w", err)
	}
	var err error
	if c.CreatedAt, err = parseTimestamp(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTimestamp(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
