package domain

import "errors"

var (
	// ErrInvalidRule is returned when an availability window is malformed
	ErrInvalidRule = errors.New("domain: invalid availability rule")

	// ErrInvalidTransition is returned when a status change is not allowed
	ErrInvalidTransition = errors.New("domain: invalid status transition")
)
