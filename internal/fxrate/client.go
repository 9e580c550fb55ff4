package fxrate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// exchangerate-api serves free daily rates without an API key
// https://www.exchangerate-api.com/docs/free
const defaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// ErrRateNotFound is returned when the response has no rate for the quote currency
var ErrRateNotFound = errors.New("rate not found in response")

// Client is an HTTP client for the exchangerate-api service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new exchange rate client
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL creates a new exchange rate client with a custom base URL (for testing)
func NewClientWithBaseURL(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetLatestRates fetches all rates quoted against base
func (c *Client) GetLatestRates(ctx context.Context, base string) (*LatestResponse, error) {
	resp, err := c.doRequest(ctx, c.baseURL+"/"+strings.ToUpper(base))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Result == "error" {
		return nil, fmt.Errorf("API returned error: %s", errResp.ErrorType)
	}

	var latest LatestResponse
	if err := json.Unmarshal(body, &latest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &latest, nil
}

// GetRate fetches the base→quote rate
func (c *Client) GetRate(ctx context.Context, base, quote string) (*ParsedRate, error) {
	latest, err := c.GetLatestRates(ctx, base)
	if err != nil {
		return nil, err
	}

	quote = strings.ToUpper(quote)
	rate, ok := latest.Rates[quote]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrRateNotFound, strings.ToUpper(base), quote)
	}
	if !rate.IsPositive() {
		return nil, fmt.Errorf("API returned non-positive rate %s for %s/%s", rate, strings.ToUpper(base), quote)
	}

	var updated time.Time
	if latest.TimeLastUpdated > 0 {
		updated = time.Unix(latest.TimeLastUpdated, 0).UTC()
	}

	return &ParsedRate{
		Base:      strings.ToUpper(base),
		Quote:     quote,
		Rate:      rate,
		UpdatedAt: updated,
	}, nil
}

func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	return resp, nil
}
