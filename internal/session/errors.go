package session

import "errors"

var (
	ErrNotAwaiting      = errors.New("session is not awaiting a response")
	ErrSessionComplete  = errors.New("session is complete")
	ErrSessionNotFound  = errors.New("session not found")
	ErrInvalidResponse  = errors.New("invalid response")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrSessionAborted   = errors.New("session aborted")
	ErrPlayerIDRequired = errors.New("player id required")
)
