package apperrors

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("not found")
	ErrNoSession       = errors.New("no session descriptor")
	ErrCollision       = errors.New("slot collides with an existing event or the sleep window")
	ErrTLSUnavailable  = errors.New("tls identity unavailable")
	ErrAlreadyRunning  = errors.New("already running")
	ErrNotRunning      = errors.New("not running")
	ErrPromptCancelled = errors.New("prompt cancelled")
)
