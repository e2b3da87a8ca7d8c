package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/errs"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/models"
)

// Auth0Provider provisions users through the Management API and verifies
// passwords with the resource owner password grant.
type Auth0Provider struct {
	baseURL    string
	connection string
	client     *http.Client
	login      *oauth2.Config
	mgmt       *clientcredentials.Config
}

func NewAuth0Provider(cfg config.IdentityConfig) *Auth0Provider {
	base := cfg.BaseURL()
	return &Auth0Provider{
		baseURL:    base,
		connection: cfg.Connection,
		client:     &http.Client{Timeout: cfg.Timeout},
		login: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint: oauth2.Endpoint{
				TokenURL:  base + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
			Scopes: []string{"openid", "profile", "email"},
		},
		mgmt: &clientcredentials.Config{
			ClientID:       cfg.MgmtClientID,
			ClientSecret:   cfg.MgmtClientSecret,
			TokenURL:       base + "/oauth/token",
			EndpointParams: url.Values{"audience": {base + "/api/v2/"}},
			AuthStyle:      oauth2.AuthStyleInParams,
		},
	}
}

type auth0User struct {
	UserID        string `json:"user_id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	EmailVerified bool   `json:"email_verified"`
}

type auth0Error struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
	ErrorCode  string `json:"errorCode"`
}

func (p *Auth0Provider) withClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.client)
}

// ProvisionIdentity creates the user in the configured database connection.
func (p *Auth0Provider) ProvisionIdentity(ctx context.Context, email, password, name string) (*models.Identity, error) {
	payload, err := json.Marshal(map[string]any{
		"email":          email,
		"name":           name,
		"password":       password,
		"connection":     p.connection,
		"email_verified": false,
	})
	if err != nil {
		return nil, err
	}

	ctx = p.withClient(ctx)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/v2/users", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.mgmt.Client(ctx).Do(req)
	if err != nil {
		logger.Log.Errorw("auth0 user creation failed", "email", email, "error", err)
		return nil, ErrIdentityUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		var body auth0Error
		_ = json.NewDecoder(resp.Body).Decode(&body)
		logger.Log.Errorw("auth0 rejected user creation",
			"email", email,
			"status", resp.StatusCode,
			"message", body.Message,
			"error_code", body.ErrorCode,
		)
		return nil, errs.Upstream(http.StatusBadRequest, translateAuth0Error(body.Message, body.ErrorCode),
			fmt.Errorf("auth0: %d %s", resp.StatusCode, body.Message))
	}

	var u auth0User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("auth0: decoding user: %w", err)
	}

	return &models.Identity{
		ExternalID:    u.UserID,
		Email:         u.Email,
		Name:          u.Name,
		EmailVerified: u.EmailVerified,
	}, nil
}

// VerifyCredentials exchanges the password for a token and reads /userinfo.
func (p *Auth0Provider) VerifyCredentials(ctx context.Context, email, password string) (*models.Identity, error) {
	ctx = p.withClient(ctx)

	tok, err := p.login.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil && re.Response.StatusCode < http.StatusInternalServerError {
			logger.Log.Warnw("auth0 rejected credentials", "email", email, "error_code", re.ErrorCode)
			return nil, errs.Upstream(http.StatusUnauthorized, translateAuth0Error(re.ErrorDescription, re.ErrorCode), err)
		}
		logger.Log.Errorw("auth0 token request failed", "email", email, "error", err)
		return nil, ErrIdentityUnavailable.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/userinfo", nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.login.Client(ctx, tok).Do(req)
	if err != nil {
		logger.Log.Errorw("auth0 userinfo request failed", "email", email, "error", err)
		return nil, ErrIdentityUnavailable.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Errorw("auth0 userinfo rejected", "email", email, "status", resp.StatusCode)
		return nil, ErrIdentityUnavailable.Wrap(fmt.Errorf("auth0: userinfo status %d", resp.StatusCode))
	}

	var id models.Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return nil, fmt.Errorf("auth0: decoding userinfo: %w", err)
	}
	return &id, nil
}
