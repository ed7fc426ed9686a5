// Package httpx provides the outbound HTTP client shared by every module
// that talks to an external analysis service.
//
// The client layers resty on top of a retryable transport and guards calls
// with a rate limiter and a circuit breaker, so a misbehaving external
// service degrades into fast failures instead of piled-up timeouts.
package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/time/rate"

	"github.com/inkwell-nlp/inkwell/internal/resilience"
)

const userAgent = "inkwell/1.0"

// Client wraps resty with retries, rate limiting, and a circuit breaker.
type Client struct {
	Resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
}

// New creates a client for the named external service. The name scopes the
// circuit breaker so one service's outage does not trip another's.
func New(name string) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil

	// The transport supplies pooling; the retry loop itself runs in resty,
	// so the retry settings must be mirrored there.
	restyClient := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(10 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("User-Agent", userAgent).
		SetTransport(retryClient.HTTPClient.Transport)

	return &Client{
		Resty:   restyClient,
		limiter: rate.NewLimiter(rate.Inf, 0),
		breaker: resilience.New(name, resilience.Settings{
			FailureThreshold: 8,
			Cooldown:         30 * time.Second,
		}),
	}
}

// SetTimeout configures the per-request timeout.
func (c *Client) SetTimeout(d time.Duration) *Client {
	c.Resty.SetTimeout(d)
	return c
}

// SetRateLimit caps outbound requests per second.
func (c *Client) SetRateLimit(rps float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// BreakerState exposes the circuit breaker state for health reporting.
func (c *Client) BreakerState() resilience.State {
	return c.breaker.State()
}

// Do executes one request through the limiter and breaker. fn receives a
// context-bound request and performs the call. Transport failures count
// against the breaker; HTTP error statuses are the caller's to interpret.
func (c *Client) Do(ctx context.Context, fn func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var resp *resty.Response
	err := c.breaker.Do(func() error {
		var callErr error
		resp, callErr = fn(c.Resty.R().SetContext(ctx))
		return callErr
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
