// Package compsource fetches competitor price observations from the external
// search provider. Retry and backoff live here, not in the pricing core: the
// core performs no I/O and nothing inside it is worth retrying.
package compsource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/crosslist/pricer/internal/comps"
)

// Client talks to the comp provider's HTTP API. Construct it explicitly and
// inject it into the fetch layer; nothing lazily builds one.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries uint64
}

// New returns a Client for the provider at baseURL. A nil httpClient gets a
// sane default with a request timeout.
func New(baseURL, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
		maxRetries: 3,
	}
}

// Fetch queries the provider for competitor observations matching the query
// string. Transient failures (5xx, network errors) are retried with
// exponential backoff; 4xx responses fail immediately.
func (c *Client) Fetch(ctx context.Context, query string) ([]comps.Observation, error) {
	u, err := url.Parse(c.baseURL + "/v1/search")
	if err != nil {
		return nil, fmt.Errorf("parse provider url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	var observations []comps.Observation
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(500*time.Millisecond))

	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("provider returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return fmt.Errorf("provider returned %d: %s", resp.StatusCode, body)
		}

		observations = observations[:0]
		if err := json.NewDecoder(resp.Body).Decode(&observations); err != nil {
			return fmt.Errorf("decode provider response: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch comps for %q: %w", query, err)
	}
	return observations, nil
}
