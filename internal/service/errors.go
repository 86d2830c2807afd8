package service

import "errors"

var (
	// ErrInvalidLayout is returned when a pixel operation has no board to resolve against.
	ErrInvalidLayout = errors.New("invalid board layout")
	// ErrEmptyTitle is returned when a phase or chantier is given a blank name.
	ErrEmptyTitle = errors.New("title must not be empty")
)

// ErrNonPositiveDuration is returned when a phase is given zero or fewer
// working hours.
var ErrNonPositiveDuration = errors.New("duration must be at least one working hour")

// ErrNegativeBudget is returned when a phase budget is below zero.
var ErrNegativeBudget = errors.New("budget must not be negative")
