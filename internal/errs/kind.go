package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The zero value is KindUnexpected so an
// Error built without a kind never leaks as a client error.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindInvalidState
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// Error is a domain error tagged with a Kind.
//
// Message is meant for API clients. Err is the underlying cause, kept for
// logs and errors.Is/As.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil && e.Kind == KindUnexpected:
		return e.Message + ": " + e.Err.Error()
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports a referenced record that does not exist.
func NotFound(format string, args ...any) error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidState reports a business rule violation.
func InvalidState(format string, args ...any) error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Conflict reports a uniqueness violation. cause is usually the driver error.
func Conflict(cause error, format string, args ...any) error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...), Err: cause}
}

// Unexpected wraps any failure the caller cannot recover from. The message
// is the context the failure happened in, e.g. "insert participation".
func Unexpected(cause error, format string, args ...any) error {
	return &Error{Kind: KindUnexpected, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindUnexpected if there is none.
func KindOf(err error) Kind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnexpected
}

// MessageOf returns the client message of the first *Error in err's chain,
// falling back to err.Error().
func MessageOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) && domainErr.Message != "" {
		return domainErr.Message
	}
	return err.Error()
}
