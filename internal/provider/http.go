package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client fetches transactions from the aggregator's HTTP API.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient returns a Client for the aggregator at baseURL. The token
// is sent as a bearer token with every request.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
	NextCursor   string        `json:"nextCursor"`
}

func (c *Client) Transactions(ctx context.Context, cursor string) ([]Transaction, string, error) {
	reqURL, err := url.Parse(c.baseURL + "/transactions")
	if err != nil {
		return nil, "", fmt.Errorf("invalid provider URL: %w", err)
	}

	if cursor != "" {
		query := reqURL.Query()
		query.Set("cursor", cursor)
		reqURL.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, "", err
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching transactions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching transactions: provider returned HTTP %d", resp.StatusCode)
	}

	var body transactionsResponse
	err = json.NewDecoder(resp.Body).Decode(&body)
	if err != nil {
		return nil, "", fmt.Errorf("decoding provider response: %w", err)
	}

	return body.Transactions, body.NextCursor, nil
}
