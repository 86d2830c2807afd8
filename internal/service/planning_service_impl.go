package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/db"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/alexanderramin/chantier/internal/scheduler"
	"github.com/alexanderramin/chantier/internal/timeline"
)

type planningService struct {
	uow      db.UnitOfWork
	cal      *calendar.Calendar
	names    *CachedNameLookup
	actor    Actor
	observer UseCaseObserver
}

func NewPlanningService(
	uow db.UnitOfWork,
	cal *calendar.Calendar,
	names *CachedNameLookup,
	actor Actor,
	observers ...UseCaseObserver,
) PlanningService {
	if cal == nil {
		cal = calendar.Default()
	}
	return &planningService{
		uow:      uow,
		cal:      cal,
		names:    names,
		actor:    actor,
		observer: useCaseObserverOrNoop(observers),
	}
}

// target is the new placement chosen for a phase from its current state.
type target struct {
	start      calendar.Instant
	duration   int
	assigneeID *string
	reassign   bool
}

func (s *planningService) Reschedule(ctx context.Context, req RescheduleRequest) (result *PlanResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase_id": req.PhaseID, "start": req.Start.String(), "duration_hours": req.DurationHours}
	defer observe(ctx, s.observer, "reschedule-phase", startedAt, fields, &err)

	if req.DurationHours <= 0 {
		return nil, ErrNonPositiveDuration
	}
	result, err = s.plan(ctx, req.PhaseID, func(domain.WorkPhase) (target, error) {
		return target{
			start:      req.Start,
			duration:   req.DurationHours,
			assigneeID: req.AssigneeID,
			reassign:   req.AssigneeID != nil,
		}, nil
	})
	if result != nil {
		fields["cascaded"] = len(result.Cascaded)
	}
	return result, err
}

// Move drops a phase at a pixel offset. The offset snaps to the hour grid
// and the phase keeps its duration.
func (s *planningService) Move(ctx context.Context, req MoveRequest) (result *PlanResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase_id": req.PhaseID, "x": req.X}
	defer observe(ctx, s.observer, "move-phase", startedAt, fields, &err)

	if !req.Layout.Valid() {
		return nil, ErrInvalidLayout
	}
	start, _ := req.Layout.Locate(timeline.SnapToGrid(req.X, req.Layout.ColumnWidth))
	fields["start"] = start.String()

	result, err = s.plan(ctx, req.PhaseID, func(old domain.WorkPhase) (target, error) {
		return target{
			start:      start,
			duration:   old.DurationHours,
			assigneeID: req.AssigneeID,
			reassign:   req.AssigneeID != nil,
		}, nil
	})
	if result != nil {
		fields["cascaded"] = len(result.Cascaded)
	}
	return result, err
}

// Resize sets a phase duration from a bar width. The width snaps to the
// hour grid and is clamped to the allowed bar widths; the start is kept.
func (s *planningService) Resize(ctx context.Context, req ResizeRequest) (result *PlanResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"phase_id": req.PhaseID, "width": req.Width}
	defer observe(ctx, s.observer, "resize-phase", startedAt, fields, &err)

	cw := req.Layout.ColumnWidth
	if cw <= 0 {
		return nil, ErrInvalidLayout
	}
	hours := timeline.PixelsToHours(timeline.ClampPhaseWidth(timeline.SnapToGrid(req.Width, cw), cw), cw)
	fields["duration_hours"] = hours

	result, err = s.plan(ctx, req.PhaseID, func(old domain.WorkPhase) (target, error) {
		return target{start: old.Start(), duration: hours}, nil
	})
	if result != nil {
		fields["cascaded"] = len(result.Cascaded)
	}
	return result, err
}

// plan applies the placement chosen by choose to one phase, then cascades
// through its chain. Every write and history entry lands in one transaction.
func (s *planningService) plan(ctx context.Context, phaseID string, choose func(old domain.WorkPhase) (target, error)) (*PlanResult, error) {
	var result PlanResult
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		result = PlanResult{}
		phases := repository.NewSQLitePhaseRepo(tx)

		old, err := phases.GetByID(ctx, phaseID)
		if err != nil {
			return err
		}
		chain, err := chainOf(ctx, phases, old)
		if err != nil {
			return err
		}

		t, err := choose(*old)
		if err != nil {
			return err
		}
		start := s.cal.NormalizeStart(t.start)
		end, err := s.cal.ComputeEndInstant(start.Date, start.Hour, t.duration)
		if err != nil {
			return err
		}

		now := s.actor.now()
		next := *old
		next.SetSchedule(start, end)
		next.DurationHours = t.duration
		if t.reassign {
			next.AssigneeID = normalizeAssignee(t.assigneeID)
		}
		if history.Unchanged(old, &next) {
			result.Phase = *old
			return nil
		}
		next.UpdatedAt = now
		result.Phase = next

		if err := phases.Update(ctx, &next); err != nil {
			return err
		}
		result.Entries = append(result.Entries,
			history.Record(old, &next, s.actor.ID, now, namesIn(ctx, s.names, tx)))

		updates, entries, err := cascade(ctx, phases, s.cal, next, chain, s.actor.ID, now)
		if err != nil {
			return err
		}
		result.Cascaded = updates
		result.Entries = append(result.Entries, entries...)
		return appendEntries(ctx, tx, result.Entries)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// chainOf loads the chain p belongs to, as currently stored.
func chainOf(ctx context.Context, phases repository.PhaseRepo, p *domain.WorkPhase) ([]domain.WorkPhase, error) {
	if p.GroupID == nil {
		return nil, nil
	}
	chain, err := phases.ListChain(ctx, p.ChantierID, *p.GroupID)
	if err != nil {
		return nil, fmt.Errorf("loading chain of phase %s: %w", p.ID, err)
	}
	return chain, nil
}

// cascade pushes the siblings of trigger clear of its new end and returns
// one history entry per shifted phase. chain holds the stored state, with
// trigger at its previous schedule.
func cascade(
	ctx context.Context,
	phases repository.PhaseRepo,
	cal *calendar.Calendar,
	trigger domain.WorkPhase,
	chain []domain.WorkPhase,
	actorID string,
	now time.Time,
) ([]domain.PhaseUpdate, []domain.HistoryEntry, error) {
	updates := scheduler.ResolveWithCalendar(cal, trigger.ID, trigger.End(), chain)
	if len(updates) == 0 {
		return nil, nil, nil
	}
	if err := phases.ApplyUpdates(ctx, updates); err != nil {
		return nil, nil, err
	}

	byID := make(map[string]domain.WorkPhase, len(chain))
	for _, p := range chain {
		byID[p.ID] = p
	}
	entries := make([]domain.HistoryEntry, 0, len(updates))
	for _, u := range updates {
		entries = append(entries, history.RecordCascade(byID[u.PhaseID], u, trigger, actorID, now))
	}
	return updates, entries, nil
}
