package transport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strconv"
	"time"
)

const (
	DefaultMaxRetries   = 3
	DefaultInitialDelay = 1 * time.Second
	DefaultMaxDelay     = 30 * time.Second
)

// RetryConfig configures retry behavior for compute API requests.
type RetryConfig struct {
	MaxRetries   int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// Logger receives a debug record per retried attempt. Nil disables it.
	Logger *slog.Logger
}

// DefaultRetryConfig returns a RetryConfig with sensible defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:   DefaultMaxRetries,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
	}
}

// RequestFunc builds a request for a retry attempt.
type RequestFunc func(ctx context.Context) (*http.Request, error)

// RetryDecision determines if a response should be retried.
type RetryDecision func(attempt int, resp *http.Response) (bool, error)

// RetryOnStatus is a RetryDecision that retries the statuses reported by
// IsRetriableStatus.
func RetryOnStatus(_ int, resp *http.Response) (bool, error) {
	return IsRetriableStatus(resp.StatusCode), nil
}

// DoWithRetry executes a request with retry behavior for transient failures.
func DoWithRetry(ctx context.Context, client *http.Client, cfg RetryConfig, reqFn RequestFunc, shouldRetry RetryDecision) (*http.Response, error) {
	cfg = normalizeRetryConfig(cfg)
	if shouldRetry == nil {
		shouldRetry = func(int, *http.Response) (bool, error) { return false, nil }
	}

	var lastErr error
	var retryResp *http.Response
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		req, err := reqFn(ctx)
		if err != nil {
			return nil, err
		}

		retryResp = nil
		resp, err := client.Do(req)
		if err != nil {
			if !IsRetriableError(err) {
				return nil, err
			}
			lastErr = err
		} else {
			retry, decisionErr := shouldRetry(attempt, resp)
			if decisionErr != nil {
				_ = resp.Body.Close()
				return nil, decisionErr
			}
			if !retry {
				return resp, nil
			}
			_ = resp.Body.Close()
			retryResp = resp
			lastErr = &HTTPError{
				Op:         req.Method + " " + req.URL.Path,
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				RequestID:  resp.Header.Get(RequestIDHeader),
			}
		}

		if attempt < cfg.MaxRetries {
			delay := RetryDelay(cfg, attempt, retryResp)
			if cfg.Logger != nil {
				cfg.Logger.Debug("retrying request",
					"method", req.Method,
					"path", req.URL.Path,
					"attempt", attempt+1,
					"delay", delay,
					"error", lastErr,
				)
			}
			select {
			case <-time.After(delay):
				continue
			case <-ctx.Done():
				return nil, fmt.Errorf("context cancelled during retry: %w", ctx.Err())
			}
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("request failed")
	}
	return nil, fmt.Errorf("request failed after %d retries: %w", cfg.MaxRetries, lastErr)
}

// RetryDelay calculates the delay before the next retry attempt.
func RetryDelay(cfg RetryConfig, attempt int, resp *http.Response) time.Duration {
	cfg = normalizeRetryConfig(cfg)

	if resp != nil {
		if retryAfter, ok := ParseRetryAfter(resp); ok {
			if retryAfter > cfg.MaxDelay {
				return cfg.MaxDelay
			}
			return retryAfter
		}
	}

	delay := cfg.InitialDelay * (1 << uint(attempt))

	// Jitter of up to 20% either way.
	jitterRange := int64(delay) / 5
	if jitterRange > 0 {
		jitter := time.Duration(rand.Int63n(jitterRange*2) - jitterRange)
		delay += jitter
	}

	if delay > cfg.MaxDelay {
		delay = cfg.MaxDelay
	}

	return delay
}

// ParseRetryAfter parses the Retry-After header if present.
func ParseRetryAfter(resp *http.Response) (time.Duration, bool) {
	if resp == nil {
		return 0, false
	}
	value := resp.Header.Get("Retry-After")
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second, true
	}
	if t, err := http.ParseTime(value); err == nil {
		d := time.Until(t)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// IsRetriableStatus reports if an HTTP status code is retriable. The compute
// API reports rate limiting as 413 overLimit with a Retry-After header.
func IsRetriableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestEntityTooLarge,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// IsRetriableError reports if an error should be retried.
func IsRetriableError(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func normalizeRetryConfig(cfg RetryConfig) RetryConfig {
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultInitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultMaxDelay
	}
	return cfg
}
