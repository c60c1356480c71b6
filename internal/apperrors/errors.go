package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation is not legal for the entity's current status.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrInsufficientBudget indicates that an operation would push engaged spend above voted funds.
var ErrInsufficientBudget = errors.New("insufficient budget")

// ErrPersistence indicates a transient storage failure; callers may retry.
var ErrPersistence = errors.New("persistence failure")

// InsufficientBudgetError carries the figures of a rejected commitment.
// It wraps ErrInsufficientBudget so callers can match with errors.Is.
type InsufficientBudgetError struct {
	Scope     string // "budget line" or "contract"
	ScopeID   int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("insufficient budget on %s %d: available %s, requested %s (shortfall %s)",
		e.Scope, e.ScopeID, e.Available.StringFixed(2), e.Requested.StringFixed(2), e.Shortfall().StringFixed(2))
}

func (e *InsufficientBudgetError) Unwrap() error { return ErrInsufficientBudget }

// Shortfall returns how much the request exceeds the available amount.
func (e *InsufficientBudgetError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}
