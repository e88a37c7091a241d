package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"lead_gateway_backend/platform/config"
)

// Client is a thin Zoho CRM v2 REST client scoped to the Leads module.
type Client struct {
	apiBase string
	tokens  *TokenManager
	client  *http.Client
}

// NewClient creates a Zoho client using the given token manager.
func NewClient(cfg config.ZohoConfig, tokens *TokenManager) *Client {
	return &Client{
		apiBase: cfg.GetZohoAPIBase(),
		tokens:  tokens,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) authorize(ctx context.Context, req *http.Request) {
	req.Header.Set("Authorization", "Zoho-oauthtoken "+c.tokens.Token(ctx))
}

type searchResponse struct {
	Data []map[string]any `json:"data"`
}

// GetLead fetches a single lead by its Zoho record id, or nil when the
// record does not exist.
func (c *Client) GetLead(ctx context.Context, leadID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBase+"/Leads/"+url.PathEscape(leadID), nil)
	if err != nil {
		return nil, fmt.Errorf("build get request: %w", err)
	}
	c.authorize(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get lead: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode get response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, nil
	}
	return decoded.Data[0], nil
}

// SearchLeadByPhone returns the first lead matching the phone, or nil on
// a clean miss (Zoho answers 204 when nothing matches).
func (c *Client) SearchLeadByPhone(ctx context.Context, phone string) (map[string]any, error) {
	return c.searchLead(ctx, "Phone", phone)
}

// SearchLeadByEmail returns the first lead matching the email, or nil.
func (c *Client) SearchLeadByEmail(ctx context.Context, email string) (map[string]any, error) {
	return c.searchLead(ctx, "Email", email)
}

func (c *Client) searchLead(ctx context.Context, field, value string) (map[string]any, error) {
	criteria := fmt.Sprintf("(%s:equals:%s)", field, value)
	endpoint := fmt.Sprintf("%s/Leads/search?criteria=%s", c.apiBase, url.QueryEscape(criteria))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	c.authorize(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search leads: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search leads: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, nil
	}
	return decoded.Data[0], nil
}

// UpsertLead pushes one lead record, deduplicated on Email, and returns
// Zoho's per-record result (action taken and assigned id).
func (c *Client) UpsertLead(ctx context.Context, lead map[string]any) (map[string]any, error) {
	body, err := json.Marshal(map[string]any{
		"data":                   []map[string]any{lead},
		"duplicate_check_fields": []string{"Email"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal upsert body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/Leads/upsert", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build upsert request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(ctx, req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upsert lead: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upsert lead: status %d", resp.StatusCode)
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode upsert response: %w", err)
	}
	if len(decoded.Data) == 0 {
		return nil, nil
	}
	return decoded.Data[0], nil
}
