package service

import (
	"errors"
	"fmt"

	"purchasing-backend/internal/model"
)

// Typed failures of the request lifecycle engine. Every rejected operation
// leaves the aggregate and the history ledger untouched; handlers translate
// these into HTTP responses.
var (
	ErrNotFound             = errors.New("purchase request not found")
	ErrNoPendingAction      = errors.New("no administrative action is pending")
	ErrActionAlreadyPending = errors.New("an administrative action is already pending")
)

// ValidationError reports a missing or out-of-range field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// InvalidTransitionError reports a status edge not permitted by the
// lifecycle table, carrying both states so callers can render a message.
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}
