// Package service defines the error kinds shared by every domain
// service. Handlers distinguish the kinds with errors.Is and map
// them to responses; anything that doesn't match one of them is
// reported as an opaque internal failure.
package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput covers missing or malformed caller input:
	// empty required fields, negative prices, insufficient cash.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound covers unknown room/session/seat/ticket/customer/movie ids.
	ErrNotFound = errors.New("not found")

	// ErrNotAllowed covers operations that are well-formed but
	// forbidden by business rules: under-age customer, cancellation
	// past cutoff, repeated check-in, insufficient loyalty points.
	ErrNotAllowed = errors.New("not allowed")

	// ErrConflict is the contention flavor of ErrNotAllowed:
	// overlapping sessions, occupied seats, concurrent lost updates.
	// errors.Is(err, ErrNotAllowed) holds for conflicts too.
	ErrConflict = fmt.Errorf("%w: conflict", ErrNotAllowed)

	// ErrInternal marks inconsistent internal state, e.g. a store
	// commit failing mid-operation. Never swallowed, never detailed
	// to callers.
	ErrInternal = errors.New("internal failure")
)

// Invalidf wraps ErrInvalidInput with a caller-facing reason.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// NotAllowedf wraps ErrNotAllowed with a caller-facing reason.
func NotAllowedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotAllowed, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a caller-facing reason.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Internalf wraps ErrInternal with context for the log; the boundary
// must not forward the detail to callers.
func Internalf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, args...))
}
