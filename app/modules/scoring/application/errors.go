package scoringservice

import "errors"

// Common domain errors. Handlers treat these as normal domain failures
// (respond 4xx, publish failure event) rather than retrying.
var (
	ErrNilContext     = errors.New("context cannot be nil")
	ErrInvalidGameID  = errors.New("invalid game ID")
	ErrHoleOutOfRange = errors.New("hole out of range for game scope")
	ErrUnknownPlayer  = errors.New("player is not part of the game")
	ErrUnknownOption  = errors.New("option is not part of the game spec")
	ErrInvalidGross   = errors.New("gross score must be a positive stroke count")
)
