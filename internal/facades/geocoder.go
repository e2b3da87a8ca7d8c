package facades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// ErrAddressNotResolvable is returned when the geocoder finds no match.
var ErrAddressNotResolvable = errs.Validation("address not resolvable")

// GoogleGeocoder resolves addresses with the Google Geocoding JSON API.
type GoogleGeocoder struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewGoogleGeocoder creates a geocoder with the configured timeout.
func NewGoogleGeocoder(cfg config.GeocodingConfig) *GoogleGeocoder {
	return &GoogleGeocoder{
		client:  &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location models.Coordinates `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Geocode returns the coordinates of the first match for address.
func (g *GoogleGeocoder) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Log.Errorw("geocoding request failed", "address", address, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("geocoding request failed", "address", address, "status", resp.StatusCode)
		return nil, fmt.Errorf("geocoding: unexpected status %d", resp.StatusCode)
	}

	var body geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geocoding: decoding response: %w", err)
	}

	switch body.Status {
	case "OK":
		if len(body.Results) == 0 {
			return nil, ErrAddressNotResolvable
		}
		loc := body.Results[0].Geometry.Location
		logger.Log.Infow("address geocoded",
			"address", address,
			"formatted_address", body.Results[0].FormattedAddress,
			"lat", loc.Latitude,
			"lng", loc.Longitude,
		)
		return &loc, nil
	case "ZERO_RESULTS", "INVALID_REQUEST":
		logger.Log.Warnw("address not resolvable", "address", address, "status", body.Status)
		return nil, ErrAddressNotResolvable
	default:
		logger.Log.Errorw("geocoding failed", "address", address, "status", body.Status, "message", body.ErrorMessage)
		return nil, fmt.Errorf("geocoding: status %s: %s", body.Status, body.ErrorMessage)
	}
}
