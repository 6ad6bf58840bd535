package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

var (
	errRateLimited  = errors.New("rate limited")
	errServerError  = errors.New("server error")
	errCircuitOpen  = errors.New("circuit breaker open")
	errNoHTTPClient = errors.New("http client not configured")
)

// statusError is a non-retryable upstream response (4xx other than 429).
// The body is kept so callers can inspect provider error payloads.
type statusError struct {
	code int
	body []byte
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status code %d", e.code)
}

// backoffPolicy controls the retry schedule for transient failures.
type backoffPolicy struct {
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
}

func defaultBackoff() backoffPolicy {
	return backoffPolicy{
		maxRetries:      3,
		initialInterval: 500 * time.Millisecond,
		maxInterval:     5 * time.Second,
	}
}

// apiClient wraps a shared HTTP client with a per-provider circuit
// breaker and backoff. Rate limits and 5xx responses are retried;
// anything else fails fast.
type apiClient struct {
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
	backoff backoffPolicy
}

func newAPIClient(client *http.Client, name string) *apiClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &apiClient{
		http:    client,
		circuit: cb,
		backoff: defaultBackoff(),
	}
}

// getJSON performs a GET against url and decodes the 2xx response body
// into out, retrying transient failures with exponential backoff behind
// the circuit breaker.
func (c *apiClient) getJSON(ctx context.Context, url string, out any) error {
	if c.http == nil {
		return errNoHTTPClient
	}

	var attempt int
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		body, err := c.doOnce(ctx, url)
		if err == nil {
			if out == nil {
				return nil
			}
			return json.Unmarshal(body, out)
		}

		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", errCircuitOpen, err)
		}

		var se *statusError
		if errors.As(err, &se) {
			return err
		}

		if attempt >= c.backoff.maxRetries {
			return err
		}

		delay := c.backoff.initialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if c.backoff.maxInterval > 0 && delay > c.backoff.maxInterval {
			delay = c.backoff.maxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		attempt++
	}
}

func (c *apiClient) doOnce(ctx context.Context, url string) ([]byte, error) {
	result, err := c.circuit.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if reqErr != nil {
			return nil, reqErr
		}

		resp, execErr := c.http.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		defer resp.Body.Close()

		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return nil, readErr
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			return nil, errRateLimited
		case resp.StatusCode >= 500:
			return nil, errServerError
		case resp.StatusCode < 200 || resp.StatusCode >= 300:
			return nil, &statusError{code: resp.StatusCode, body: body}
		}

		return body, nil
	})
	if err != nil {
		return nil, err
	}

	body, ok := result.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return body, nil
}
