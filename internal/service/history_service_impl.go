package service

import (
	"context"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
)

type historyService struct {
	entries repository.HistoryRepo
}

func NewHistoryService(entries repository.HistoryRepo) HistoryService {
	return &historyService{entries: entries}
}

func (s *historyService) ListByPhase(ctx context.Context, phaseID string) ([]domain.HistoryEntry, error) {
	return s.entries.ListByPhase(ctx, phaseID)
}

func (s *historyService) ListByChantier(ctx context.Context, chantierID string, limit int) ([]domain.HistoryEntry, error) {
	return s.entries.ListByChantier(ctx, chantierID, limit)
}
