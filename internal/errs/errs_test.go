package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", Validation("bad"), http.StatusBadRequest},
		{"authorization", Authorization("no"), http.StatusForbidden},
		{"not found", NotFound("missing"), http.StatusNotFound},
		{"rate limit", RateLimit("slow down"), http.StatusTooManyRequests},
		{"upstream with status", Upstream(http.StatusUnauthorized, "invalid credentials", nil), http.StatusUnauthorized},
		{"upstream default", &Error{Kind: KindUpstream, Message: "down"}, http.StatusBadGateway},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("missing")), http.StatusNotFound},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestPublicMessage(t *testing.T) {
	assert.Equal(t, "housing not found", PublicMessage(NotFound("housing not found")))
	assert.Equal(t, InternalMessage, PublicMessage(errors.New("pq: connection refused")))
	assert.Equal(t, InternalMessage, PublicMessage(&Error{Kind: KindInternal, Message: "secret"}))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("x")))
	assert.Equal(t, KindInternal, KindOf(errors.New("x")))
	assert.Equal(t, "rate_limit", KindRateLimit.String())
}

func TestErrorIsAndWrap(t *testing.T) {
	sentinel := Validation("invalid owner")
	cause := errors.New("db down")

	wrapped := sentinel.Wrap(cause)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, errors.Is(wrapped, Validation("invalid address")))
	assert.Equal(t, "invalid owner: db down", wrapped.Error())
	assert.Nil(t, sentinel.Err)
}
