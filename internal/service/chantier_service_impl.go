package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/google/uuid"
)

type chantierService struct {
	chantiers repository.ChantierRepo
}

func NewChantierService(chantiers repository.ChantierRepo) ChantierService {
	return &chantierService{chantiers: chantiers}
}

func (s *chantierService) Create(ctx context.Context, c *domain.Chantier) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return ErrEmptyTitle
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	c.CreatedAt, c.UpdatedAt = now, now
	return s.chantiers.Create(ctx, c)
}

func (s *chantierService) GetByID(ctx context.Context, id string) (*domain.Chantier, error) {
	return s.chantiers.GetByID(ctx, id)
}

func (s *chantierService) List(ctx context.Context) ([]*domain.Chantier, error) {
	return s.chantiers.List(ctx)
}

func (s *chantierService) Delete(ctx context.Context, id string) error {
	return s.chantiers.Delete(ctx, id)
}

type poseurService struct {
	poseurs repository.PoseurRepo
	names   *CachedNameLookup
}

func NewPoseurService(poseurs repository.PoseurRepo, names *CachedNameLookup) PoseurService {
	return &poseurService{poseurs: poseurs, names: names}
}

func (s *poseurService) Create(ctx context.Context, p *domain.Poseur) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return ErrEmptyTitle
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()
	if err := s.poseurs.Create(ctx, p); err != nil {
		return err
	}
	if s.names != nil {
		s.names.Forget(p.ID)
	}
	return nil
}

func (s *poseurService) List(ctx context.Context) ([]*domain.Poseur, error) {
	return s.poseurs.List(ctx)
}
