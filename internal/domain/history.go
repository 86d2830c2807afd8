package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// PhaseSnapshot captures the mutable fields of a phase at one point in time.
type PhaseSnapshot struct {
	Title         string     `json:"title"`
	StartDate     civil.Date `json:"start_date"`
	StartHour     int        `json:"start_hour"`
	EndDate       civil.Date `json:"end_date"`
	EndHour       int        `json:"end_hour"`
	DurationHours int        `json:"duration_hours"`
	AssigneeID    *string    `json:"assignee_id,omitempty"`
	Budget        *float64   `json:"budget,omitempty"`
}

// SnapshotOf returns the snapshot of p, or nil for a nil phase.
func SnapshotOf(p *WorkPhase) *PhaseSnapshot {
	if p == nil {
		return nil
	}
	return &PhaseSnapshot{
		Title:         p.Title,
		StartDate:     p.StartDate,
		StartHour:     p.StartHour,
		EndDate:       p.EndDate,
		EndHour:       p.EndHour,
		DurationHours: p.DurationHours,
		AssigneeID:    p.AssigneeID,
		Budget:        p.Budget,
	}
}

// HistoryEntry is an append-only record of one phase mutation.
type HistoryEntry struct {
	ID          string
	PhaseID     string
	ChantierID  string
	ActorID     string
	Timestamp   time.Time
	ChangeKind  ChangeKind
	Description string
	OldValues   *PhaseSnapshot
	NewValues   *PhaseSnapshot
}
