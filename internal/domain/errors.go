package domain

import "errors"

// Submission validation errors
var (
	ErrDuplicatePlayer = errors.New("a player cannot appear twice in one match")
	ErrInvalidScore    = errors.New("scores must be non-negative")
	ErrMissingPlayer   = errors.New("all four player ids are required")
)

// Lookup errors
var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")
	ErrMatchNotFound  = errors.New("match not found")
)
