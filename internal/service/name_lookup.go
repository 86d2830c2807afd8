package service

import (
	"context"
	"time"

	"github.com/alexanderramin/chantier/internal/history"
	"github.com/alexanderramin/chantier/internal/repository"
	"github.com/maypok86/otter/v2"
)

// CachedNameLookup caches poseur display names across use cases. Misses are
// loaded through whichever repository the caller binds, so lookups made
// inside a transaction read through that transaction.
type CachedNameLookup struct {
	cache *otter.Cache[string, string]
}

// NewCachedNameLookup creates a lookup holding up to size names for ttl.
func NewCachedNameLookup(size int, ttl time.Duration) *CachedNameLookup {
	return &CachedNameLookup{
		cache: otter.Must(&otter.Options[string, string]{
			MaximumSize:      size,
			ExpiryCalculator: otter.ExpiryWriting[string, string](ttl),
		}),
	}
}

// Bind returns a history.NameLookup that loads misses from poseurs.
func (l *CachedNameLookup) Bind(ctx context.Context, poseurs repository.PoseurRepo) history.NameLookup {
	return boundLookup{ctx: ctx, cache: l, poseurs: poseurs}
}

// Forget drops a cached name.
func (l *CachedNameLookup) Forget(id string) {
	l.cache.Invalidate(id)
}

// Cached reports the name held for id without loading it.
func (l *CachedNameLookup) Cached(id string) (string, bool) {
	return l.cache.GetIfPresent(id)
}

type boundLookup struct {
	ctx     context.Context
	cache   *CachedNameLookup
	poseurs repository.PoseurRepo
}

func (b boundLookup) PoseurName(id string) (string, bool) {
	if name, ok := b.cache.cache.GetIfPresent(id); ok {
		return name, true
	}
	p, err := b.poseurs.GetByID(b.ctx, id)
	if err != nil {
		return "", false
	}
	b.cache.cache.Set(id, p.Name)
	return p.Name, true
}
