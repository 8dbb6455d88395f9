package adnet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

// PostbackProvider asks a real ad network for a fill over its postback HTTP API.
type PostbackProvider struct {
	name    string
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewPostbackProvider builds a provider against an ad network postback endpoint.
func NewPostbackProvider(name, baseURL, apiKey string, client *http.Client) *PostbackProvider {
	if client == nil {
		client = NewHTTPClient()
	}
	return &PostbackProvider{
		name:    name,
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  client,
	}
}

// Name returns the provider identifier.
func (p *PostbackProvider) Name() string {
	return p.name
}

// postbackResponse is the minimal shape of a fill response.
type postbackResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// Fill requests an ad for the placement. Anything other than HTTP 200 with
// status "filled" is treated as no-fill.
func (p *PostbackProvider) Fill(ctx context.Context, placement string) error {
	u, err := url.Parse(p.baseURL)
	if err != nil {
		return fmt.Errorf("invalid postback URL %q: %w", p.baseURL, err)
	}
	q := u.Query()
	q.Set("placement", placement)
	q.Set("key", p.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build fill request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fill request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("fill request returned HTTP %d", resp.StatusCode)
	}

	var pr postbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return fmt.Errorf("failed to decode fill response: %w", err)
	}
	if pr.Status != "filled" {
		return fmt.Errorf("no fill from %s: %s", p.name, pr.Reason)
	}
	return nil
}

// HouseProvider always fills from the house inventory. Used as the fallback
// provider, and as the only provider when no ad network is configured.
type HouseProvider struct{}

// Name returns the provider identifier.
func (HouseProvider) Name() string { return "house" }

// Fill always succeeds; house inventory has no fill limit.
func (HouseProvider) Fill(ctx context.Context, placement string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	slog.Debug("house ad served", "placement", placement)
	return nil
}
