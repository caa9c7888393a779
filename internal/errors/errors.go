package errors

import (
	"context"
	"errors"
	"fmt"
	"maps"
)

// Error is the error type returned across package boundaries
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same code, so errors.Is(err, NotFound(""))
// works through wrapping
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Code == e.Code
}

// WithMeta attaches a key/value pair and returns e
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = map[string]any{}
	}
	e.Meta[key] = value
	return e
}

// New creates an error with a code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap adds context to err. The code and metadata of an *Error cause carry
// over; any other cause becomes Internal. Wrap(nil) is nil.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, GetCode(err), message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode adds context to err and sets its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}
	return wrap(err, code, message)
}

// Upstream wraps a failure from a model engine or store. Timeouts and
// cancellations keep their meaning; an *Error keeps its code; anything else
// is Unavailable.
func Upstream(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var e *Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return wrap(err, CodeDeadlineExceeded, message)
	case errors.Is(err, context.Canceled):
		return wrap(err, CodeCanceled, message)
	case errors.As(err, &e):
		return wrap(err, e.Code, message)
	default:
		return wrap(err, CodeUnavailable, message)
	}
}

// wrap copies the cause's metadata so WithMeta on the wrapper does not
// change the cause
func wrap(err error, code Code, message string) *Error {
	out := &Error{Code: code, Message: message, Cause: err}
	if meta := GetMeta(err); len(meta) > 0 {
		out.Meta = maps.Clone(meta)
	}
	return out
}
