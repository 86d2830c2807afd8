package domain

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
)

// WorkPhase is one scheduled unit of work on a chantier. Phases sharing a
// ChantierID and GroupID form an ordered chain; a phase without a group
// never takes part in cascading.
type WorkPhase struct {
	ID             string
	ChantierID     string
	GroupID        *int
	SequenceNumber int
	Title          string

	StartDate     civil.Date
	StartHour     int
	EndDate       civil.Date
	EndHour       int
	DurationHours int

	AssigneeID *string
	Budget     *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Start returns the start instant. Missing or out-of-window hours read as
// the morning start.
func (p WorkPhase) Start() calendar.Instant {
	return calendar.At(p.StartDate, calendar.NormalizeHour(p.StartHour))
}

// End returns the end instant.
func (p WorkPhase) End() calendar.Instant {
	return calendar.At(p.EndDate, calendar.NormalizeHour(p.EndHour))
}

// SetSchedule replaces the start and end instants.
func (p *WorkPhase) SetSchedule(start, end calendar.Instant) {
	p.StartDate, p.StartHour = start.Date, start.Hour
	p.EndDate, p.EndHour = end.Date, end.Hour
}

// SameChain reports whether p and o belong to the same group of the same chantier.
func (p WorkPhase) SameChain(o WorkPhase) bool {
	if p.GroupID == nil || o.GroupID == nil {
		return false
	}
	return p.ChantierID == o.ChantierID && *p.GroupID == *o.GroupID
}

// Unassigned reports whether the phase sits in the unassigned lane.
func (p WorkPhase) Unassigned() bool {
	return p.AssigneeID == nil || *p.AssigneeID == ""
}

// PhaseUpdate is a proposed new schedule for one phase.
type PhaseUpdate struct {
	PhaseID string
	Start   calendar.Instant
	End     calendar.Instant
}

// Apply returns a copy of p carrying the update's schedule.
func (u PhaseUpdate) Apply(p WorkPhase) WorkPhase {
	p.SetSchedule(u.Start, u.End)
	return p
}
