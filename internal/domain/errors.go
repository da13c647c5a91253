package domain

import "errors"

var (
	// ErrNoFreeCell is returned when random placement gives up after the
	// configured number of attempts.
	ErrNoFreeCell = errors.New("no free cell found")

	ErrInvalidConfig = errors.New("invalid game config")
)
