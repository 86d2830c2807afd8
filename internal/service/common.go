package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
	"github.com/alexanderramin/chantier/internal/repository"
)

// Actor identifies who performs mutations and when.
type Actor struct {
	ID  string
	Now func() time.Time
}

func (a Actor) now() time.Time {
	if a.Now == nil {
		return time.Now().UTC()
	}
	return a.Now().UTC()
}

// observe emits one use-case event. Call it deferred with a pointer to the
// named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   *err == nil,
		Err:       *err,
		Fields:    fields,
	})
}

// namesIn returns a name lookup reading through tx.
func namesIn(ctx context.Context, names *CachedNameLookup, tx db.DBTX) history.NameLookup {
	poseurs := repository.NewSQLitePoseurRepo(tx)
	if names == nil {
		return NewCachedNameLookup(64, time.Minute).Bind(ctx, poseurs)
	}
	return names.Bind(ctx, poseurs)
}

// appendEntries writes history entries through tx.
func appendEntries(ctx context.Context, tx db.DBTX, entries []domain.HistoryEntry) error {
	repo := repository.NewSQLiteHistoryRepo(tx)
	for i := range entries {
		if err := repo.Append(ctx, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func normalizeAssignee(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
