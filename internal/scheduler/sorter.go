package scheduler

import (
	"sort"

	"github.com/alexanderramin/chantier/internal/domain"
)

// SortChain orders phases of one chain by the deterministic canonical rules:
// 1. Start instant: earliest first (missing hours read as 8)
// 2. Sequence number: ascending
// 3. Phase ID: lexical ascending
func SortChain(phases []domain.WorkPhase) {
	sort.SliceStable(phases, func(i, j int) bool {
		a, b := phases[i], phases[j]

		// 1. Start instant
		startA, startB := a.Start(), b.Start()
		if !startA.Equal(startB) {
			return startA.Before(startB)
		}

		// 2. Sequence number
		if a.SequenceNumber != b.SequenceNumber {
			return a.SequenceNumber < b.SequenceNumber
		}

		// 3. Phase ID (lexical)
		return a.ID < b.ID
	})
}

// ChainOf returns copies of the phases sharing p's chantier and group,
// excluding p itself, in canonical order.
func ChainOf(p domain.WorkPhase, phases []domain.WorkPhase) []domain.WorkPhase {
	var chain []domain.WorkPhase
	for _, o := range phases {
		if o.ID != p.ID && p.SameChain(o) {
			chain = append(chain, o)
		}
	}
	SortChain(chain)
	return chain
}
