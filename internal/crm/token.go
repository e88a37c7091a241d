// Package crm provides the Zoho CRM integration: OAuth token management,
// the REST client, lead synchronization, and the production contact
// lookup for the pre-call path.
package crm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"lead_gateway_backend/platform/config"
	"lead_gateway_backend/platform/logger"

	"golang.org/x/sync/singleflight"
)

// refreshBuffer refreshes the access token proactively, well before the
// provider-side expiry.
const refreshBuffer = 5 * time.Minute

// TokenManager caches the Zoho OAuth access token and refreshes it behind
// a singleflight so concurrent callers trigger at most one refresh. It
// never fails the caller: on refresh failure it falls back to the static
// configured token or the stale cached one and logs.
type TokenManager struct {
	cfg    config.ZohoConfig
	client *http.Client
	log    *logger.Logger
	group  singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenManager creates a token manager over the Zoho config.
func NewTokenManager(cfg config.ZohoConfig, log *logger.Logger) *TokenManager {
	return &TokenManager{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

// Token returns a usable access token. Refresh failure degrades to the
// best available token rather than erroring.
func (m *TokenManager) Token(ctx context.Context) string {
	m.mu.Lock()
	cached := m.token
	valid := cached != "" && time.Until(m.expiresAt) > refreshBuffer
	m.mu.Unlock()

	if valid {
		return cached
	}

	if m.cfg.GetZohoRefreshToken() == "" {
		// No refresh credentials: static token or nothing.
		return m.fallbackToken(cached)
	}

	refreshed, err, _ := m.group.Do("refresh", func() (any, error) {
		return m.refresh(ctx)
	})
	if err != nil {
		m.log.Warn("zoho token refresh failed", "error", err.Error())
		return m.fallbackToken(cached)
	}

	return refreshed.(string)
}

func (m *TokenManager) fallbackToken(cached string) string {
	if static := m.cfg.GetZohoAccessToken(); static != "" {
		return static
	}
	return cached
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	Error       string `json:"error"`
}

func (m *TokenManager) refresh(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("refresh_token", m.cfg.GetZohoRefreshToken())
	form.Set("client_id", m.cfg.GetZohoClientID())
	form.Set("client_secret", m.cfg.GetZohoClientSecret())
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.GetZohoTokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	var decoded tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if decoded.Error != "" {
		return "", fmt.Errorf("token endpoint: %s", decoded.Error)
	}
	if decoded.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	expiresIn := decoded.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = 3600
	}

	m.mu.Lock()
	m.token = decoded.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(expiresIn) * time.Second)
	m.mu.Unlock()

	return decoded.AccessToken, nil
}
