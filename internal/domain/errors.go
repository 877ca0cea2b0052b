package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can distinguish "no such asset"
// from "service unavailable" from "resolved with no winner"
type ErrorKind string

const (
	// KindInvalidArgument indicates a missing or empty required identifier
	KindInvalidArgument ErrorKind = "invalid_argument"
	// KindNotFound indicates no ownership event exists before the query time,
	// or an unknown encumbrance
	KindNotFound ErrorKind = "not_found"
	// KindNoValidClaim indicates a dispute where zero claims passed the
	// consensus threshold
	KindNoValidClaim ErrorKind = "no_valid_claim"
	// KindUpstreamFailure indicates the event log or an observer is unavailable
	KindUpstreamFailure ErrorKind = "upstream_failure"
	// KindUnresolved indicates a conflict flagged for human review
	KindUnresolved ErrorKind = "unresolved"
)

// Error is the structured failure type returned across service boundaries
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewInvalidArgument creates an invalid-argument error
func NewInvalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewNotFound creates a not-found error
func NewNotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewNoValidClaim creates a no-valid-claim error
func NewNoValidClaim(format string, args ...any) error {
	return &Error{Kind: KindNoValidClaim, Message: fmt.Sprintf(format, args...)}
}

// NewUpstreamFailure wraps an upstream cause, preserving it for unwrapping
func NewUpstreamFailure(msg string, cause error) error {
	return &Error{Kind: KindUpstreamFailure, Message: msg, Cause: cause}
}

// NewUnresolved creates an unresolved error
func NewUnresolved(msg string) error {
	return &Error{Kind: KindUnresolved, Message: msg}
}

// KindOf returns the kind of err, or an empty kind for non-domain errors
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
