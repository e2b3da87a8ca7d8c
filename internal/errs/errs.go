// Package errs defines the error kinds shared by services and handlers.
//
// Repositories report constraint violations with ErrConflict and
// ErrForeignKey. Services return *Error values (usually package-level sentinels) and
// handlers turn them into a status code and a client-facing message.
// Any error that is not an *Error is treated as internal.
package errs

import (
	"errors"
	"net/http"
)

// Storage level conditions reported by the repositories.
var (
	ErrConflict   = errors.New("unique constraint violated")
	ErrForeignKey = errors.New("referenced record does not exist")
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindUpstream
	KindRateLimit
)

// InternalMessage is what clients see for anything that is not a domain error.
const InternalMessage = "Internal server error"

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	case KindRateLimit:
		return "rate_limit"
	default:
		return "internal"
	}
}

// Error is a domain error with a client-facing message.
type Error struct {
	Kind    Kind
	Message string
	// Status overrides the default status of Kind when non-zero.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind and message, so wrapped copies still compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Wrap returns a copy of e carrying err as its cause.
func (e *Error) Wrap(err error) *Error {
	cp := *e
	cp.Err = err
	return &cp
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Authorization(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func RateLimit(msg string) *Error {
	return &Error{Kind: KindRateLimit, Message: msg}
}

// Upstream reports a failure of an external collaborator. The status is
// chosen by the call site since the same provider failure can mean a bad
// request, bad credentials or an outage.
func Upstream(status int, msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Message: msg, Status: status, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindUpstream:
		return http.StatusBadGateway
	case KindRateLimit:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the message safe to send to clients.
func PublicMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) || e.Kind == KindInternal {
		return InternalMessage
	}
	return e.Message
}
