// Package apperr defines the error taxonomy every handler in this server
// classifies its failures into (spec §7). The orchestrator never lets a Go
// error escape to the transport; it inspects the Kind here to decide the
// recovery behavior and the UsageEvent.success flag.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is one of the closed set of failure categories a handler can report.
type Kind string

const (
	InputInvalid        Kind = "INPUT_INVALID"
	NotFound            Kind = "NOT_FOUND"
	UpstreamUnavailable Kind = "UPSTREAM_UNAVAILABLE"
	UpstreamTimeout     Kind = "UPSTREAM_TIMEOUT"
	UpstreamForbidden   Kind = "UPSTREAM_FORBIDDEN"
	UpstreamMalformed   Kind = "UPSTREAM_MALFORMED"
	RateLimited         Kind = "RATE_LIMITED"
	SizeExceeded        Kind = "SIZE_EXCEEDED"
	Internal            Kind = "INTERNAL"
)

// Error wraps an underlying cause with a Kind so callers up the stack can
// branch on failure category without string-matching messages.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// New constructs an Error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a Kind to an existing error, preserving it as Cause.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error,
// defaulting to Internal for anything else — the catch-all per spec §7.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return Internal
}
