package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnavailable      = errors.New("weight tier is not available for this product")
	ErrInvalidQuantity  = errors.New("quantity must be between 1 and 99")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrOutOfServiceArea = errors.New("we only deliver in Visakhapatnam area")
	ErrNotFound         = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrTerminalState    = errors.New("order is already delivered")
	ErrSameStatus       = errors.New("order already has this status")
	ErrTransition       = errors.New("status transition is not allowed")
	ErrAuth             = errors.New("invalid email or password")
	ErrAdminNotFound    = errors.New("admin not found")
	ErrSessionNotFound  = errors.New("session not found")
)

// ValidationError is a user-correctable problem with a single input field.
// Err is set when the violation also belongs to a broader class, i.e. ErrOutOfServiceArea.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationErrors keeps field order stable so the first offending field is reported first.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, 0, len(v))
	for _, e := range v {
		errs = append(errs, e)
	}
	return errs
}

// SubmissionError means the order could not be written to the record store.
type SubmissionError struct {
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to place order: %v", e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// PersistenceError means a status change could not be written; the stored status is unchanged.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to update order: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
