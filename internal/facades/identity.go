package facades

import (
	"net/http"

	"github.com/sbilibin2017/student-housing/internal/errs"
)

// Errors shared by the identity providers.
var (
	ErrInvalidCredentials  = errs.Upstream(http.StatusUnauthorized, "invalid credentials", nil)
	ErrEmailRegistered     = errs.Upstream(http.StatusBadRequest, "email already registered", nil)
	ErrIdentityUnavailable = errs.Upstream(http.StatusBadGateway, "identity provider unavailable", nil)
)

// Auth0 messages and error codes translated into client-facing messages.
var auth0Messages = map[string]string{
	"The user already exists.":                    "email already registered",
	"PasswordStrengthError: Password is too weak": "password is too weak",
	"Password is too weak.":                       "password is too weak",
	"Wrong email or password.":                    "invalid credentials",
	"invalid_request":                             "invalid request",
	"invalid_grant":                               "invalid credentials",
}

// translateAuth0Error returns the client message for the first known
// provider message or code.
func translateAuth0Error(messages ...string) string {
	for _, m := range messages {
		if msg, ok := auth0Messages[m]; ok {
			return msg
		}
	}
	return "unexpected identity provider error"
}
