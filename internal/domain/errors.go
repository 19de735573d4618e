package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a lookup or delete target that is absent from the
	// local store. Distinct from "still loading": the store answered.
	ErrNotFound = errors.New("record not found")

	// ErrSourceUnavailable signals a transport-level failure talking to the
	// remote catalog.
	ErrSourceUnavailable = errors.New("catalog source unavailable")

	// ErrSourceFormat signals a catalog payload that cannot be mapped to items.
	ErrSourceFormat = errors.New("catalog payload malformed")
)

// ValidationError carries the offending field so callers can surface a
// field-level message.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
