package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/chantier/internal/domain"
	"github.com/alexanderramin/chantier/internal/history"
)

// resolveChantierID resolves a chantier identifier which can be a full
// UUID, a UUID prefix, or a case-insensitive name.
func resolveChantierID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("chantier is required")
	}

	chantiers, err := app.Chantiers.List(ctx)
	if err != nil {
		return "", err
	}

	for _, c := range chantiers {
		if c.ID == input {
			return c.ID, nil
		}
	}

	var matches []string
	for _, c := range chantiers {
		if strings.HasPrefix(c.ID, input) || strings.EqualFold(c.Name, input) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("chantier not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("chantier %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePoseurID resolves a poseur by UUID, UUID prefix or name. An empty
// input yields "" so callers can unassign.
func resolvePoseurID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.EqualFold(input, "none") {
		return "", nil
	}

	poseurs, err := app.Poseurs.List(ctx)
	if err != nil {
		return "", err
	}

	for _, p := range poseurs {
		if p.ID == input {
			return p.ID, nil
		}
	}

	var matches []string
	for _, p := range poseurs {
		if strings.HasPrefix(p.ID, input) || strings.EqualFold(p.Name, input) {
			matches = append(matches, p.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("poseur not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("poseur %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolvePhase resolves a phase by full UUID or by the truncated prefix
// shown in listings.
func resolvePhase(ctx context.Context, app *App, input string) (*domain.WorkPhase, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("phase ID is required")
	}

	if p, err := app.Phases.GetByID(ctx, input); err == nil {
		return p, nil
	}

	matches, err := app.Phases.FindByIDPrefix(ctx, input)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("phase not found: %q", input)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("phase ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// poseurNames loads every poseur into a lookup table for display.
func poseurNames(ctx context.Context, app *App) (history.Names, []*domain.Poseur, error) {
	poseurs, err := app.Poseurs.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	names := make(history.Names, len(poseurs))
	for _, p := range poseurs {
		names[p.ID] = p.Name
	}
	return names, poseurs, nil
}
