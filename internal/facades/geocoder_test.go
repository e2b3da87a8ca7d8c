package facades

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/errs"
)

func newTestGeocoder(t *testing.T, status int, body string) *GoogleGeocoder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		assert.NotEmpty(t, r.URL.Query().Get("address"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return NewGoogleGeocoder(config.GeocodingConfig{BaseURL: srv.URL, APIKey: "test-key", Timeout: time.Second})
}

func TestGoogleGeocoder_Geocode(t *testing.T) {
	g := newTestGeocoder(t, http.StatusOK, `{
		"status": "OK",
		"results": [{
			"formatted_address": "Av. Vicuña Mackenna 4860, Macul",
			"geometry": {"location": {"lat": -33.4986, "lng": -70.6143}}
		}]
	}`)

	coords, err := g.Geocode(context.Background(), "Av. Vicuña Mackenna 4860")
	require.NoError(t, err)
	assert.Equal(t, -33.4986, coords.Latitude)
	assert.Equal(t, -70.6143, coords.Longitude)
}

func TestGoogleGeocoder_NotResolvable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero results", `{"status": "ZERO_RESULTS", "results": []}`},
		{"ok without results", `{"status": "OK", "results": []}`},
		{"invalid request", `{"status": "INVALID_REQUEST"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, http.StatusOK, tt.body)

			_, err := g.Geocode(context.Background(), "nowhere")
			assert.ErrorIs(t, err, ErrAddressNotResolvable)
			assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		})
	}
}

func TestGoogleGeocoder_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"denied", http.StatusOK, `{"status": "REQUEST_DENIED", "error_message": "bad key"}`},
		{"http error", http.StatusInternalServerError, `oops`},
		{"garbage", http.StatusOK, `not json`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, tt.status, tt.body)

			_, err := g.Geocode(context.Background(), "Av. Matta 100")
			assert.Error(t, err)
			assert.NotErrorIs(t, err, ErrAddressNotResolvable)
			assert.Equal(t, errs.KindInternal, errs.KindOf(err))
		})
	}
}
