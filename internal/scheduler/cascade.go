// Package scheduler resolves schedule overlaps inside a phase chain. It is a
// greedy, single-pass rescheduler: later phases are only ever pushed
// forward, never pulled earlier, and nothing is reordered.
package scheduler

import (
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
)

// Resolve computes the forward shifts needed once the phase modifiedID ends
// at newEnd, using the default calendar. See ResolveWithCalendar.
func Resolve(modifiedID string, newEnd calendar.Instant, phases []domain.WorkPhase) []domain.PhaseUpdate {
	return ResolveWithCalendar(calendar.Default(), modifiedID, newEnd, phases)
}

// ResolveWithCalendar walks the siblings that originally start after the
// modified phase, in chronological order, and moves each one that overlaps
// the rolling end instant so it starts right after it. The walk stops at the
// first sibling that does not overlap. phases is not modified.
//
// An unknown phase, a phase outside any group, or a chain without overlap
// yields no updates.
func ResolveWithCalendar(cal *calendar.Calendar, modifiedID string, newEnd calendar.Instant, phases []domain.WorkPhase) []domain.PhaseUpdate {
	modified, ok := findPhase(modifiedID, phases)
	if !ok || modified.GroupID == nil {
		return nil
	}

	origStart := modified.Start()
	var updates []domain.PhaseUpdate
	current := newEnd
	for _, s := range ChainOf(modified, phases) {
		if !s.Start().After(origStart) {
			continue
		}
		if !s.Start().Before(current) {
			break
		}

		start := cal.NormalizeStart(continuationAfter(cal, current))
		end, err := cal.ComputeEndInstant(start.Date, start.Hour, max(0, s.DurationHours))
		if err != nil {
			end = start
		}

		updates = append(updates, domain.PhaseUpdate{PhaseID: s.ID, Start: start, End: end})
		current = end
	}
	return updates
}

// continuationAfter returns the instant at which work can resume once a
// phase has ended at end.
func continuationAfter(cal *calendar.Calendar, end calendar.Instant) calendar.Instant {
	switch {
	case end.Hour == calendar.MorningEnd:
		return calendar.At(end.Date, calendar.AfternoonStart)
	case end.Hour >= calendar.AfternoonEnd:
		return calendar.At(cal.NextWorkingDay(end.Date), calendar.MorningStart)
	default:
		return end
	}
}

func findPhase(id string, phases []domain.WorkPhase) (domain.WorkPhase, bool) {
	for _, p := range phases {
		if p.ID == id {
			return p, true
		}
	}
	return domain.WorkPhase{}, false
}
