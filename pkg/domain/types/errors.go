package types

import "errors"

// Error taxonomy shared across the service. Use cases wrap these with goerr so
// the HTTP layer can map them to status codes without parsing messages.
var (
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrUnknownActionType = errors.New("unknown action type")
)
