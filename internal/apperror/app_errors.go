package apperror

import "errors"

var (
	ErrContractViolation = errors.New("internal error, number not passed in")
	ErrUnknownState      = errors.New("unknown session state")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionEnded      = errors.New("session is already ended")
)
