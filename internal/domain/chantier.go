package domain

import "time"

// Chantier is a construction project or job site.
type Chantier struct {
	ID        string
	Name      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Poseur is a crew member phases can be assigned to.
type Poseur struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
