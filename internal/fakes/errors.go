package fakes

import (
	"errors"
	"fmt"
)

var (
	// ErrPrecondition marks a request whose shape breaks the contract of the
	// endpoint. It signals a bug in the calling client, not a transport fault.
	ErrPrecondition = errors.New("request precondition failed")

	// ErrUnknownMethod marks a request that no handler is registered for.
	ErrUnknownMethod = errors.New("unknown API method")

	// ErrCallMismatch is returned by the call log assertions.
	ErrCallMismatch = errors.New("call log mismatch")
)

// PreconditionError describes a request-shape violation.
type PreconditionError struct {
	Method string
	URL    string
	Key    string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s %s: %s", ErrPrecondition, e.Method, e.URL, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s (%s): %s", ErrPrecondition, e.Method, e.URL, e.Key, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// UnknownMethodError is returned when no handler matches the derived key.
type UnknownMethodError struct {
	Method string
	URL    string
	Key    string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("called unknown API method: %s %s, expected handler key: %s", e.Method, e.URL, e.Key)
}

func (e *UnknownMethodError) Unwrap() error {
	return ErrUnknownMethod
}

// IsPrecondition reports whether err is a request-shape violation.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrPrecondition)
}

// IsUnknownMethod reports whether err was caused by a missing handler.
func IsUnknownMethod(err error) bool {
	return errors.Is(err, ErrUnknownMethod)
}

// ExpectedKey returns the handler key carried by an unknown-method error.
func ExpectedKey(err error) (string, bool) {
	var ue *UnknownMethodError
	if errors.As(err, &ue) {
		return ue.Key, true
	}
	return "", false
}
