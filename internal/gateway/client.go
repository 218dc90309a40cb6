// Package gateway is the thin authenticated client for the admin REST
// backend. It issues bearer-authenticated GET requests, unwraps the
// {success, data} response envelope and maps HTTP failures onto the
// domain error taxonomy.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/gosuda/taskdeck/internal/domain"
)

// ErrBadEnvelope is returned when a 2xx response does not carry a valid
// {success: true, data: ...} envelope.
var ErrBadEnvelope = errors.New("gateway: malformed response envelope")

// Options configures a Client.
type Options struct {
	BaseURL string

	// TokenSource supplies the bearer token for every request. May be
	// nil for unauthenticated development backends.
	TokenSource oauth2.TokenSource

	// Timeout bounds each request end to end. Zero means no timeout.
	Timeout time.Duration

	// RequestsPerSecond throttles outbound requests so rapid filter
	// changes cannot turn into a request storm. Zero disables
	// throttling.
	RequestsPerSecond float64
	Burst             int

	Logger zerolog.Logger
}

// Client wraps http.Client with envelope decoding and error mapping.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     zerolog.Logger
}

func New(ctx context.Context, opts Options) (*Client, error) {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("gateway.New: base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("gateway.New: base URL: %w", err)
	}

	hc := &http.Client{Timeout: opts.Timeout}
	if opts.TokenSource != nil {
		hc = oauth2.NewClient(ctx, opts.TokenSource)
		hc.Timeout = opts.Timeout
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	return &Client{
		baseURL: base,
		http:    hc,
		limiter: limiter,
		log:     opts.Logger,
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// get issues one authenticated GET and decodes the envelope's data field
// into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("gateway: GET %s: %w", path, err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("gateway: GET %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Str("path", path).Str("request_id", requestID).Err(err).Msg("gateway request failed")
		return fmt.Errorf("gateway: GET %s: %w: %v", path, domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("gateway request")

	if err := statusError(path, resp.StatusCode); err != nil {
		return err
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("gateway: GET %s: %w: %v", path, ErrBadEnvelope, err)
	}
	if !env.Success {
		return fmt.Errorf("gateway: GET %s: %w: success=false", path, ErrBadEnvelope)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("gateway: GET %s: %w: %v", path, ErrBadEnvelope, err)
	}
	return nil
}

// statusError maps a non-2xx status onto the domain error taxonomy.
// 403 means the caller lacks the admin capability and should be routed
// away; 5xx is transient and recoverable by manual retry.
func statusError(path string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusForbidden:
		return fmt.Errorf("gateway: GET %s: %w", path, domain.ErrForbidden)
	case code == http.StatusNotFound:
		return fmt.Errorf("gateway: GET %s: %w", path, domain.ErrNotFound)
	case code >= 500:
		return fmt.Errorf("gateway: GET %s: %w: status %d", path, domain.ErrUnavailable, code)
	default:
		return fmt.Errorf("gateway: GET %s: unexpected status %d", path, code)
	}
}
