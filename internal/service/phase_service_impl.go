package service

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/google/uuid"
)

type phaseService struct {
	phases   repository.PhaseRepo
	uow      db.UnitOfWork
	cal      *calendar.Calendar
	names    *CachedNameLookup
	actor    Actor
	observer UseCaseObserver
}

func NewPhaseService(
	phases repository.PhaseRepo,
	uow db.UnitOfWork,
	cal *calendar.Calendar,
	names *CachedNameLookup,
	actor Actor,
	observers ...UseCaseObserver,
) PhaseService {
	if cal == nil {
		cal = calendar.Default()
	}
	return &phaseService{
		phases:   phases,
		uow:      uow,
		cal:      cal,
		names:    names,
		actor:    actor,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create normalizes the start, derives the end from the duration and stores
// the phase. A grouped phase without a sequence number is appended to its
// chain. Later siblings it overlaps are pushed forward.
func (s *phaseService) Create(ctx context.Context, p *domain.WorkPhase) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"chantier_id": p.ChantierID, "title": p.Title}
	defer observe(ctx, s.observer, "create-phase", startedAt, fields, &err)

	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return ErrEmptyTitle
	}
	if p.DurationHours <= 0 {
		return ErrNonPositiveDuration
	}
	if p.Budget != nil && *p.Budget < 0 {
		return ErrNegativeBudget
	}
	start := s.cal.NormalizeStart(p.Start())
	end, err := s.cal.ComputeEndInstant(start.Date, start.Hour, p.DurationHours)
	if err != nil {
		return err
	}
	p.SetSchedule(start, end)
	p.AssigneeID = normalizeAssignee(p.AssigneeID)
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	now := s.actor.now()
	p.CreatedAt, p.UpdatedAt = now, now
	fields["phase_id"] = p.ID

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		if _, err := repository.NewSQLiteChantierRepo(tx).GetByID(ctx, p.ChantierID); err != nil {
			return err
		}

		chain, err := chainOf(ctx, txPhases, p)
		if err != nil {
			return err
		}
		if p.GroupID != nil && p.SequenceNumber == 0 {
			seq, err := txPhases.NextSequence(ctx, p.ChantierID, *p.GroupID)
			if err != nil {
				return err
			}
			p.SequenceNumber = seq
		}
		if err := txPhases.Create(ctx, p); err != nil {
			return err
		}

		entries := []domain.HistoryEntry{history.Record(nil, p, s.actor.ID, now, namesIn(ctx, s.names, tx))}
		if p.GroupID != nil {
			updates, shifted, err := cascade(ctx, txPhases, s.cal, *p, append(chain, *p), s.actor.ID, now)
			if err != nil {
				return err
			}
			fields["cascaded"] = len(updates)
			entries = append(entries, shifted...)
		}
		return appendEntries(ctx, tx, entries)
	})
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.WorkPhase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByChantier(ctx context.Context, chantierID string) ([]domain.WorkPhase, error) {
	return s.phases.ListByChantier(ctx, chantierID)
}

func (s *phaseService) ListInRange(ctx context.Context, from, to civil.Date) ([]domain.WorkPhase, error) {
	return s.phases.ListInRange(ctx, from, to)
}

func (s *phaseService) FindByIDPrefix(ctx context.Context, prefix string) ([]domain.WorkPhase, error) {
	return s.phases.ListByIDPrefix(ctx, prefix)
}

func (s *phaseService) Assign(ctx context.Context, id string, assigneeID *string) (*domain.WorkPhase, error) {
	return s.mutate(ctx, "assign-phase", id, func(p *domain.WorkPhase) error {
		p.AssigneeID = normalizeAssignee(assigneeID)
		return nil
	})
}

func (s *phaseService) SetBudget(ctx context.Context, id string, budget *float64) (*domain.WorkPhase, error) {
	return s.mutate(ctx, "set-phase-budget", id, func(p *domain.WorkPhase) error {
		if budget != nil && *budget < 0 {
			return ErrNegativeBudget
		}
		p.Budget = budget
		return nil
	})
}

func (s *phaseService) Rename(ctx context.Context, id, title string) (*domain.WorkPhase, error) {
	return s.mutate(ctx, "rename-phase", id, func(p *domain.WorkPhase) error {
		title = strings.TrimSpace(title)
		if title == "" {
			return ErrEmptyTitle
		}
		p.Title = title
		return nil
	})
}

// Delete removes a phase and records it. Siblings keep their schedule.
func (s *phaseService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase_id": id}
	defer observe(ctx, s.observer, "delete-phase", startedAt, fields, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		old, err := txPhases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := txPhases.Delete(ctx, id); err != nil {
			return err
		}
		entry := history.Record(old, nil, s.actor.ID, s.actor.now(), namesIn(ctx, s.names, tx))
		return appendEntries(ctx, tx, []domain.HistoryEntry{entry})
	})
}

// mutate applies fn to a copy of the stored phase and writes it back with a
// history entry, unless fn left the phase unchanged.
func (s *phaseService) mutate(ctx context.Context, name, id string, fn func(p *domain.WorkPhase) error) (result *domain.WorkPhase, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase_id": id}
	defer observe(ctx, s.observer, name, startedAt, fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPhases := repository.NewSQLitePhaseRepo(tx)
		old, err := txPhases.GetByID(ctx, id)
		if err != nil {
			return err
		}
		next := *old
		if err := fn(&next); err != nil {
			return err
		}
		result = &next
		if history.Unchanged(old, &next) {
			return nil
		}
		now := s.actor.now()
		next.UpdatedAt = now
		if err := txPhases.Update(ctx, &next); err != nil {
			return err
		}
		entry := history.Record(old, &next, s.actor.ID, now, namesIn(ctx, s.names, tx))
		fields["change_kind"] = string(entry.ChangeKind)
		return appendEntries(ctx, tx, []domain.HistoryEntry{entry})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
