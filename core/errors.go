package core

import (
	"errors"
	"fmt"
)

var (
	ErrBlocked             = errors.New("blocked")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNotFound            = errors.New("not found")
	ErrBadRequest          = errors.New("bad request")
	ErrStorage             = errors.New("storage fault")
	ErrServerMisconfigured = errors.New("server not configured")

	// ErrDocumentNotFound is returned by a Medium when the named document does
	// not exist yet. Collections treat it as an empty list.
	ErrDocumentNotFound = errors.New("document not found")
)

// ValidationError carries the client-facing reason of a rejected request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func (e *ValidationError) Unwrap() error { return ErrBadRequest }

// BadRequest returns an error matching ErrBadRequest with the given reason.
func BadRequest(reason string) error {
	return &ValidationError{Reason: reason}
}

// StorageFault wraps err so that it matches ErrStorage.
func StorageFault(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
