// internal/app/system/apperr/apperr.go
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business-rule failure. These are deterministic outcomes,
// not faults: the GraphQL layer surfaces them verbatim to the client and
// nothing retries them.
type Kind int

const (
	// KindUnknown is the zero value; KindOf returns it for errors that did
	// not originate here (storage faults, network errors, ...).
	KindUnknown Kind = iota
	KindUnauthenticated
	KindUnauthorized
	KindNotFound
	KindAlreadyExists
	KindConstraintViolation
	KindConflict
	KindUpstreamUnavailable
)

// String returns the wire code for the kind, used in the GraphQL error
// extensions block.
func (k Kind) String() string {
	switch k {
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindNotFound:
		return "NOT_FOUND"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindConstraintViolation:
		return "CONSTRAINT_VIOLATION"
	case KindConflict:
		return "CONFLICT"
	case KindUpstreamUnavailable:
		return "UPSTREAM_UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}

// Error is a classified, caller-visible failure.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

// Extensions satisfies the graphql-go extensions contract so the client
// receives a machine-readable code alongside the message.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Kind.String()}
}

// New builds an Error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func Unauthenticated(format string, args ...any) *Error {
	return New(KindUnauthenticated, format, args...)
}

func Unauthorized(format string, args ...any) *Error {
	return New(KindUnauthorized, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func AlreadyExists(format string, args ...any) *Error {
	return New(KindAlreadyExists, format, args...)
}

func ConstraintViolation(format string, args ...any) *Error {
	return New(KindConstraintViolation, format, args...)
}

func UpstreamUnavailable(format string, args ...any) *Error {
	return New(KindUpstreamUnavailable, format, args...)
}

// KindOf reports the Kind of err, or KindUnknown when err was not produced
// by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
