package service

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/calendar"
	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/timeline"
)

type ChantierService interface {
	Create(ctx context.Context, c *domain.Chantier) error
	GetByID(ctx context.Context, id string) (*domain.Chantier, error)
	List(ctx context.Context) ([]*domain.Chantier, error)
	Delete(ctx context.Context, id string) error
}

type PoseurService interface {
	Create(ctx context.Context, p *domain.Poseur) error
	List(ctx context.Context) ([]*domain.Poseur, error)
}

type PhaseService interface {
	Create(ctx context.Context, p *domain.WorkPhase) error
	GetByID(ctx context.Context, id string) (*domain.WorkPhase, error)
	ListByChantier(ctx context.Context, chantierID string) ([]domain.WorkPhase, error)
	ListInRange(ctx context.Context, from, to civil.Date) ([]domain.WorkPhase, error)
	FindByIDPrefix(ctx context.Context, prefix string) ([]domain.WorkPhase, error)
	Assign(ctx context.Context, id string, assigneeID *string) (*domain.WorkPhase, error)
	SetBudget(ctx context.Context, id string, budget *float64) (*domain.WorkPhase, error)
	Rename(ctx context.Context, id, title string) (*domain.WorkPhase, error)
	Delete(ctx context.Context, id string) error
}

// RescheduleRequest moves a phase to Start with a new duration. A nil
// AssigneeID keeps the current assignee; a pointer to "" unassigns.
type RescheduleRequest struct {
	PhaseID       string
	Start         calendar.Instant
	DurationHours int
	AssigneeID    *string
}

// MoveRequest is a drop of a phase bar at pixel offset X on a board layout.
type MoveRequest struct {
	PhaseID    string
	X          float64
	Layout     timeline.Layout
	AssigneeID *string
}

// ResizeRequest is a bar resized to Width pixels on a board layout.
type ResizeRequest struct {
	PhaseID string
	Width   float64
	Layout  timeline.Layout
}

// PlanResult is the outcome of one planning operation.
type PlanResult struct {
	Phase    domain.WorkPhase
	Cascaded []domain.PhaseUpdate
	Entries  []domain.HistoryEntry
}

type PlanningService interface {
	Reschedule(ctx context.Context, req RescheduleRequest) (*PlanResult, error)
	Move(ctx context.Context, req MoveRequest) (*PlanResult, error)
	Resize(ctx context.Context, req ResizeRequest) (*PlanResult, error)
}

type HistoryService interface {
	ListByPhase(ctx context.Context, phaseID string) ([]domain.HistoryEntry, error)
	ListByChantier(ctx context.Context, chantierID string, limit int) ([]domain.HistoryEntry, error)
}
