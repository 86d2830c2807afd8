// Package history turns phase mutations into append-only history entries:
// a change kind plus a human-readable description of what moved.
package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/google/uuid"
)

// NameLookup resolves a poseur id to a display name.
type NameLookup interface {
	PoseurName(id string) (string, bool)
}

// Names is a fixed NameLookup table.
type Names map[string]string

func (n Names) PoseurName(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}

// Classify returns the change kind for a mutation from old to next. A nil
// old phase is a creation and a nil next phase a deletion. Otherwise the
// first matching field family wins: duration, dates, assignee, budget.
func Classify(old, next *domain.WorkPhase) domain.ChangeKind {
	switch {
	case old == nil:
		return domain.ChangeCreate
	case next == nil:
		return domain.ChangeDelete
	case old.DurationHours != next.DurationHours:
		return domain.ChangeDurationChange
	case scheduleChanged(old, next):
		return domain.ChangeDateChange
	case !domain.EqualStrPtr(normAssignee(old.AssigneeID), normAssignee(next.AssigneeID)):
		return domain.ChangeAssigneeChange
	case !domain.EqualFloatPtr(old.Budget, next.Budget):
		return domain.ChangeBudgetChange
	default:
		return domain.ChangeUpdate
	}
}

// Describe renders every field that differs between old and next.
func Describe(old, next *domain.WorkPhase, names NameLookup) string {
	switch {
	case old == nil && next == nil:
		return ""
	case old == nil:
		return fmt.Sprintf("Phase %q created: %s (%dh), assignee %s",
			next.Title, span(next), next.DurationHours, assigneeName(next.AssigneeID, names))
	case next == nil:
		return fmt.Sprintf("Phase %q deleted (was %s)", old.Title, span(old))
	}

	var parts []string
	if old.Title != next.Title {
		parts = append(parts, fmt.Sprintf("title %q → %q", old.Title, next.Title))
	}
	if scheduleChanged(old, next) {
		parts = append(parts, fmt.Sprintf("dates %s → %s", span(old), span(next)))
	}
	if old.DurationHours != next.DurationHours {
		parts = append(parts, fmt.Sprintf("duration %dh → %dh", old.DurationHours, next.DurationHours))
	}
	if !domain.EqualStrPtr(normAssignee(old.AssigneeID), normAssignee(next.AssigneeID)) {
		parts = append(parts, fmt.Sprintf("assignee %s → %s",
			assigneeName(old.AssigneeID, names), assigneeName(next.AssigneeID, names)))
	}
	if !domain.EqualFloatPtr(old.Budget, next.Budget) {
		parts = append(parts, fmt.Sprintf("budget %s → %s", budget(old.Budget), budget(next.Budget)))
	}
	if len(parts) == 0 {
		return "No changes"
	}
	return capitalize(strings.Join(parts, "; "))
}

// Unchanged reports whether old and next carry identical tracked fields.
func Unchanged(old, next *domain.WorkPhase) bool {
	if old == nil || next == nil {
		return old == next
	}
	return old.Title == next.Title &&
		old.DurationHours == next.DurationHours &&
		!scheduleChanged(old, next) &&
		domain.EqualStrPtr(normAssignee(old.AssigneeID), normAssignee(next.AssigneeID)) &&
		domain.EqualFloatPtr(old.Budget, next.Budget)
}

// Record builds the history entry for a mutation from old to next.
func Record(old, next *domain.WorkPhase, actorID string, now time.Time, names NameLookup) domain.HistoryEntry {
	ref := next
	if ref == nil {
		ref = old
	}
	return domain.HistoryEntry{
		ID:          uuid.New().String(),
		PhaseID:     ref.ID,
		ChantierID:  ref.ChantierID,
		ActorID:     actorID,
		Timestamp:   now,
		ChangeKind:  Classify(old, next),
		Description: Describe(old, next, names),
		OldValues:   domain.SnapshotOf(old),
		NewValues:   domain.SnapshotOf(next),
	}
}

// RecordCascade builds the entry for a phase shifted because trigger changed.
func RecordCascade(old domain.WorkPhase, u domain.PhaseUpdate, trigger domain.WorkPhase, actorID string, now time.Time) domain.HistoryEntry {
	moved := u.Apply(old)
	return domain.HistoryEntry{
		ID:          uuid.New().String(),
		PhaseID:     old.ID,
		ChantierID:  old.ChantierID,
		ActorID:     actorID,
		Timestamp:   now,
		ChangeKind:  domain.ChangeDateChange,
		Description: fmt.Sprintf("Shifted after %q: dates %s → %s", trigger.Title, span(&old), span(&moved)),
		OldValues:   domain.SnapshotOf(&old),
		NewValues:   domain.SnapshotOf(&moved),
	}
}

func scheduleChanged(old, next *domain.WorkPhase) bool {
	return !old.Start().Equal(next.Start()) || !old.End().Equal(next.End())
}

func normAssignee(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

func span(p *domain.WorkPhase) string {
	return p.Start().String() + "–" + p.End().String()
}

func assigneeName(id *string, names NameLookup) string {
	if normAssignee(id) == nil {
		return "unassigned"
	}
	if names != nil {
		if name, ok := names.PoseurName(*id); ok {
			return name
		}
	}
	return *id
}

func budget(b *float64) string {
	if b == nil {
		return "none"
	}
	return fmt.Sprintf("%.2f", *b)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
