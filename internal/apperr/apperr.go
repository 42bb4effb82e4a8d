package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an application error so the API layer can map it to a
// status code without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindForbidden
	KindAlreadyExists
	KindMaxLimit
	KindInvalidRoutine
	KindMisc
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	case KindAlreadyExists:
		return "already exists"
	case KindMaxLimit:
		return "max limit exceeded"
	case KindInvalidRoutine:
		return "invalid routine"
	case KindMisc:
		return "misc error"
	default:
		return "unknown"
	}
}

// Error is the error type returned by the service layer for all validation
// failures. Storage errors are passed through untouched.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *Error {
	return newError(KindNotFound, format, args...)
}

func Forbidden(format string, args ...any) *Error {
	return newError(KindForbidden, format, args...)
}

func AlreadyExists(format string, args ...any) *Error {
	return newError(KindAlreadyExists, format, args...)
}

func MaxLimit(format string, args ...any) *Error {
	return newError(KindMaxLimit, format, args...)
}

func InvalidRoutine(format string, args ...any) *Error {
	return newError(KindInvalidRoutine, format, args...)
}

func Misc(format string, args ...any) *Error {
	return newError(KindMisc, format, args...)
}

// KindOf returns the kind of err, or KindUnknown for errors that did not
// originate in the service layer.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
