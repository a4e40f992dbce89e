// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and handlers.
var (
	// ErrNotFound is returned when a code or id matches nothing in its collection.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrCodeExhausted is returned when depositor code generation could not find
	// a unique code within the bounded retry budget.
	ErrCodeExhausted = errors.New("depositor code space exhausted")
)

// ValidationError reports a missing or malformed field on a record.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// ImmutableFieldError reports an attempt to mutate a frozen field, such as the
// price or code of an article that has already been sold.
type ImmutableFieldError struct {
	Field string
}

func (e *ImmutableFieldError) Error() string {
	return fmt.Sprintf("field %s is immutable once the article is sold", e.Field)
}

// StoreError wraps a failed persistence call with its operation and key.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed for key %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
