package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found.
var ErrSessionNotFound = errors.New("session not found")

// ErrInvalidMove is returned when a move cannot be decoded or is out of range.
var ErrInvalidMove = errors.New("invalid move")
