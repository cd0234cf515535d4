package client

import (
	"context"
	"net/http"
	"time"

	"github.com/reviewkit/klavex/internal/ratelimit"
)

const (
	// DefaultBaseURL is the Klaviyo API root.
	DefaultBaseURL = "https://a.klaviyo.com/api"

	// DefaultRevision is the API revision sent with every request.
	DefaultRevision = "2024-10-15"
)

// Client talks to the Klaviyo JSON:API. All requests carry the private API
// key and revision headers and are paced through the rate limiter.
type Client struct {
	baseURL  string
	apiKey   string
	revision string
	client   *http.Client
	limiter  *ratelimit.Limiter
}

// New creates a Client for the given base URL and private API key.
func New(baseURL, apiKey, revision string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if revision == "" {
		revision = DefaultRevision
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		revision: revision,
		client:   &http.Client{Timeout: 30 * time.Second},
		limiter:  ratelimit.New(),
	}
}

// Client exposes the underlying http.Client for specialized calls.
func (c *Client) Client() *http.Client { return c.client }

// get issues a rate-limited GET against a fully formed URL. The caller owns
// the response body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	c.limiter.Wait()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Klaviyo-API-Key "+c.apiKey)
	req.Header.Set("Accept", "application/vnd.api+json")
	req.Header.Set("revision", c.revision)

	return c.client.Do(req)
}
