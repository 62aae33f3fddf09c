package errs

import (
	"errors"
)

// Common sentinel errors.
var (
	ErrNotFound             = errors.New("not found")
	ErrDataConflict         = errors.New("data conflict")
	ErrRateLimit            = errors.New("rate limit")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidAccountNumber = errors.New("invalid account number")
)

// Type just for murshallig purpose.
// Should only be used immediately before marshalling.
type JSON struct {
	Error string `json:"error"`
}
