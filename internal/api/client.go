package api

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"entregas/internal/deliveries"
	"entregas/internal/metrics"

	"github.com/rs/zerolog/log"
)

// Config holds the connection settings for the delivery API.
type Config struct {
	URL     string
	Key     string
	Timeout time.Duration

	// TolerantShape turns unexpected top-level JSON shapes into an empty
	// record list with a warning instead of a DecodeError.
	TolerantShape bool
}

// Client fetches the raw delivery dataset from the configured endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a delivery API client. The fetch timeout defaults to 60s.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
				MaxIdleConns:        10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// FetchRaw performs one synchronous GET against the delivery API and returns
// the decoded raw records. Transport and status failures surface as
// *FetchError, undecodable bodies as *DecodeError.
func (c *Client) FetchRaw(ctx context.Context) ([]deliveries.RawRecord, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("api-key", c.cfg.Key)
	req.Header.Set("Accept", "application/json, text/csv")

	log.Info().Msg("Requesting dataset from delivery API")
	log.Debug().Str("url", c.cfg.URL).Msg("Delivery API request details")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return nil, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("authentication failed (401/403), check the configured api-key")}
		case http.StatusTooManyRequests:
			return nil, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("rate limit exceeded (429)")}
		default:
			return nil, &FetchError{Status: resp.StatusCode, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	records, err := DecodeBody(body, c.cfg.TolerantShape)
	if err != nil {
		return nil, err
	}

	metrics.FetchDuration.Observe(time.Since(start).Seconds())
	log.Info().Int("records", len(records)).Dur("elapsed", time.Since(start)).Msg("Dataset fetched")
	return records, nil
}
