// Package civic is a client for the Google Civic Information API, which
// maps a postal address or zip code to elected officials and their offices.
package civic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client calls the Civic Information representatives endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewClient creates a Civic Information API client.
// baseURL is normally "https://www.googleapis.com/civicinfo/v2".
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Representatives looks up national-level legislators for an address.
// The query is scoped to country level and the two congressional chambers,
// so state and local offices never appear in the response.
//
// A non-2xx status or an undecodable body is returned as an error; the
// caller decides how to classify it.
func (c *Client) Representatives(ctx context.Context, address string) (*Response, error) {
	q := url.Values{}
	q.Set("address", address)
	q.Set("levels", "country")
	q.Add("roles", "legislatorUpperBody")
	q.Add("roles", "legislatorLowerBody")
	q.Set("key", c.apiKey)

	reqURL := c.baseURL + "/representatives?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("civic: building request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("civic: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("civic: api returned status %s", resp.Status)
	}

	var data Response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("civic: decoding response: %w", err)
	}

	return &data, nil
}
