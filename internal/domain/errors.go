package domain

import "errors"

var (
	ErrInvalidCount        = errors.New("count must be at least 1")
	ErrCountExceedsDeck    = errors.New("count exceeds number of cards in deck")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrEmptyQuestion       = errors.New("question must not be empty")
	ErrInvalidTransition   = errors.New("operation not allowed in current session state")
	ErrUnknownSpread       = errors.New("unknown spread kind")
	ErrSessionNotFound     = errors.New("session not found")
)
