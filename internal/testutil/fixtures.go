package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/google/uuid"
)

var testPoseurCounter atomic.Int64

func NewTestChantier(name string) *domain.Chantier {
	now := time.Now().UTC()
	return &domain.Chantier{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   "1 rue de Test, 75000 Paris",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestPoseur creates a poseur. An empty name gets a numbered default.
func NewTestPoseur(name string) *domain.Poseur {
	if name == "" {
		name = fmt.Sprintf("Poseur %02d", testPoseurCounter.Add(1))
	}
	return &domain.Poseur{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}

// Phase options
type PhaseOption func(*domain.WorkPhase)

func WithGroup(g int) PhaseOption {
	return func(p *domain.WorkPhase) {
		p.GroupID = &g
	}
}

func WithSequence(n int) PhaseOption {
	return func(p *domain.WorkPhase) {
		p.SequenceNumber = n
	}
}

// WithSchedule sets the start and derives the end from the duration on the
// default calendar.
func WithSchedule(start civil.Date, hour, duration int) PhaseOption {
	return func(p *domain.WorkPhase) {
		end, err := calendar.ComputeEndInstant(start, hour, duration)
		if err != nil {
			panic(err)
		}
		p.DurationHours = duration
		p.SetSchedule(calendar.Default().NormalizeStart(calendar.At(start, hour)), end)
	}
}

func WithAssignee(id string) PhaseOption {
	return func(p *domain.WorkPhase) {
		p.AssigneeID = &id
	}
}

func WithBudget(b float64) PhaseOption {
	return func(p *domain.WorkPhase) {
		p.Budget = &b
	}
}

// NewTestPhase creates an 8-hour phase starting Monday 2025-03-03 at 8h.
func NewTestPhase(chantierID, title string, opts ...PhaseOption) *domain.WorkPhase {
	now := time.Now().UTC()
	p := &domain.WorkPhase{
		ID:             uuid.New().String(),
		ChantierID:     chantierID,
		SequenceNumber: 1,
		Title:          title,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	WithSchedule(civil.Date{Year: 2025, Month: time.March, Day: 3}, calendar.MorningStart, 8)(p)
	for _, opt := range opts {
		opt(p)
	}
	return p
}
