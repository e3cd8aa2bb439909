// Package compute is a small client for the compute API (servers, flavors,
// images, floating IPs, key pairs, security groups, quotas and limits).
// Its HTTP layer is a pluggable http.RoundTripper, so tests and the CLI run
// it against the fake transport.
package compute

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/salmonumbrella/computefake/internal/logging"
	"github.com/salmonumbrella/computefake/internal/transport"
)

const (
	// DefaultAPIVersion is the API version used when none is configured.
	DefaultAPIVersion = "v1.1"

	// MinAPIVersion is the oldest API version this client speaks.
	MinAPIVersion = "v1.1"

	// maxResponseSize bounds the bytes read from a single reply (10MB).
	maxResponseSize = 10 * 1024 * 1024
)

// Client talks to one project of a compute endpoint.
type Client struct {
	endpoint string
	project  string
	version  string
	baseURL  string
	http     *http.Client
	retry    transport.RetryConfig
	logger   *slog.Logger
}

// Compile-time interface compliance checks
var (
	_ ServerService  = (*Client)(nil)
	_ CatalogService = (*Client)(nil)
	_ NetworkService = (*Client)(nil)
	_ AccountService = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client) error

// WithTransport replaces the HTTP round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) error {
		c.http.Transport = rt
		return nil
	}
}

// WithAPIVersion selects the API version, for example "v1.1" or "2.1".
func WithAPIVersion(version string) Option {
	return func(c *Client) error {
		v, err := parseVersion(version)
		if err != nil {
			return err
		}
		c.version = v
		return nil
	}
}

// WithRetryConfig sets the retry policy for transient failures.
func WithRetryConfig(cfg transport.RetryConfig) Option {
	return func(c *Client) error {
		c.retry = cfg
		return nil
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// NewClient creates a client for project at endpoint.
func NewClient(endpoint, project string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}
	if strings.TrimSpace(project) == "" {
		return nil, ErrMissingProject
	}

	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		project:  project,
		version:  DefaultAPIVersion,
		http:     &http.Client{Timeout: 30 * time.Second},
		retry:    transport.DefaultRetryConfig(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.retry.Logger == nil {
		c.retry.Logger = c.logger
	}
	c.baseURL = c.endpoint + "/" + c.version + "/" + url.PathEscape(c.project)
	return c, nil
}

// APIVersion returns the negotiated API version path segment.
func (c *Client) APIVersion() string {
	return c.version
}

// BaseURL returns <endpoint>/<version>/<project>.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// parseVersion accepts "1.1" or "v1.1" and returns the major.minor form.
func parseVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	if semver.Compare(v, MinAPIVersion) < 0 {
		return "", fmt.Errorf("%w: %s is older than %s", ErrInvalidVersion, version, MinAPIVersion)
	}
	return semver.MajorMinor(v), nil
}

// do sends one request under the project base URL. A nil in sends no body;
// a nil out discards the reply. Statuses of 400 and above become
// *transport.HTTPError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (http.Header, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, path, err)
		}
	}

	reqFn := func(ctx context.Context) (*http.Request, error) {
		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req, nil
	}

	start := time.Now()
	resp, err := transport.DoWithRetry(ctx, c.http, c.retry, reqFn, transport.RetryOnStatus)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", method, path, err)
	}

	c.logger.Debug("compute request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", resp.Header.Get(transport.RequestIDHeader),
		"duration", time.Since(start),
	)

	if resp.StatusCode >= 400 {
		return nil, transport.NewHTTPError(method+" "+path, resp, data)
	}
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.Header, nil
}

func idPath(prefix string, id ID) string {
	return prefix + "/" + url.PathEscape(string(id))
}
