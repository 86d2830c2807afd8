package repository

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/alexanderramin/chantier/internal/domain"
)

type ChantierRepo interface {
	Create(ctx context.Context, c *domain.Chantier) error
	GetByID(ctx context.Context, id string) (*domain.Chantier, error)
	List(ctx context.Context) ([]*domain.Chantier, error)
	Delete(ctx context.Context, id string) error
}

type PoseurRepo interface {
	Create(ctx context.Context, p *domain.Poseur) error
	GetByID(ctx context.Context, id string) (*domain.Poseur, error)
	List(ctx context.Context) ([]*domain.Poseur, error)
}

type PhaseRepo interface {
	Create(ctx context.Context, p *domain.WorkPhase) error
	GetByID(ctx context.Context, id string) (*domain.WorkPhase, error)
	ListByChantier(ctx context.Context, chantierID string) ([]domain.WorkPhase, error)
	ListChain(ctx context.Context, chantierID string, groupID int) ([]domain.WorkPhase, error)
	ListInRange(ctx context.Context, from, to civil.Date) ([]domain.WorkPhase, error)
	ListByIDPrefix(ctx context.Context, prefix string) ([]domain.WorkPhase, error)
	NextSequence(ctx context.Context, chantierID string, groupID int) (int, error)
	Update(ctx context.Context, p *domain.WorkPhase) error
	ApplyUpdates(ctx context.Context, updates []domain.PhaseUpdate) error
	Delete(ctx context.Context, id string) error
}

type HistoryRepo interface {
	Append(ctx context.Context, e *domain.HistoryEntry) error
	ListByPhase(ctx context.Context, phaseID string) ([]domain.HistoryEntry, error)
	ListByChantier(ctx context.Context, chantierID string, limit int) ([]domain.HistoryEntry, error)
}
