package fakes

import (
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/salmonumbrella/computefake/internal/logging"
)

// Call is one intercepted request as recorded in the call log.
type Call struct {
	Method string `json:"method"`
	URL    string `json:"url"`
	Body   any    `json:"body"`
}

// Transport is a fake compute API. It satisfies http.RoundTripper for
// clients and http.Handler for serving the fixtures over a socket.
//
// Create one Transport per test; the call log is never reset.
type Transport struct {
	routes     table
	extra      []Route
	prefix     string
	extensions []string
	logger     *slog.Logger

	mu    sync.Mutex
	calls []Call
}

// Option configures a Transport.
type Option func(*Transport)

// WithExtensions records the names of the optional API extensions the
// client under test has enabled.
func WithExtensions(names ...string) Option {
	return func(t *Transport) {
		t.extensions = append(t.extensions, names...)
	}
}

// WithPrefix sets a path prefix (for example "/v1.1/project_id") that
// RoundTrip and ServeHTTP strip before dispatching. The prefix may be given
// escaped or not; it is stored in its escaped wire form.
func WithPrefix(prefix string) Option {
	return func(t *Transport) {
		p := "/" + strings.Trim(prefix, "/")
		if p == "/" {
			t.prefix = ""
			return
		}
		if unescaped, err := url.PathUnescape(p); err == nil {
			p = (&url.URL{Path: unescaped}).EscapedPath()
		}
		t.prefix = p
	}
}

// WithLogger sets the logger used for dispatch records.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithRoutes adds routes on top of the built-in table. A route whose key is
// already registered replaces the built-in handler for this Transport only.
func WithRoutes(routes ...Route) Option {
	return func(t *Transport) {
		t.extra = append(t.extra, routes...)
	}
}

// New creates a Transport answering from the built-in handler table.
func New(opts ...Option) *Transport {
	t := &Transport{
		routes: builtin,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(t)
	}

	if len(t.extra) > 0 {
		t.routes = builtin.clone()
		for _, r := range t.extra {
			key := r.Key()
			if prev, ok := t.routes[key]; ok {
				t.logger.Debug("overriding handler", "key", key, "family", prev.Family)
			}
			if r.Family == "" {
				r.Family = "custom"
			}
			t.routes[key] = r
		}
		t.extra = nil
	}
	return t
}

// Dispatch resolves method and rawURL to a handler and returns its canned
// response. body is nil when the request has none; otherwise it may be any
// JSON-encodable value and is recorded in its decoded JSON form.
//
// rawURL is a path with an optional query, escaped as on the wire. A rawURL
// that net/url cannot parse, such as one holding a bare "%zz", fails with a
// *PreconditionError before any lookup and is not recorded. RoundTrip and
// ServeHTTP always pass the escaped request path, so this only concerns
// direct callers.
func (t *Transport) Dispatch(method, rawURL string, body any) (*Response, any, error) {
	body, err := normalize(body)
	if err != nil {
		return nil, nil, &PreconditionError{Method: method, URL: rawURL, Reason: "body is not JSON encodable: " + err.Error()}
	}

	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodDelete:
		if body != nil {
			return nil, nil, &PreconditionError{Method: method, URL: rawURL, Reason: method + " request must not carry a body"}
		}
	case http.MethodPut:
		if body == nil {
			return nil, nil, &PreconditionError{Method: method, URL: rawURL, Reason: "PUT request requires a body"}
		}
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, nil, &PreconditionError{Method: method, URL: rawURL, Reason: "malformed URL: " + err.Error()}
	}
	params := queryParams(u.Query())

	key := HandlerKey(method, rawURL)
	route, ok := t.routes[key]
	if !ok {
		t.logger.Debug("unknown API method", "method", method, "url", rawURL, "key", key)
		return nil, nil, &UnknownMethodError{Method: method, URL: rawURL, Key: key}
	}

	t.record(Call{Method: method, URL: rawURL, Body: body})

	// The handler gets its own copy so the log entry stays untouched.
	reqBody, _ := normalize(body)
	req := &Request{
		Method: method,
		URL:    rawURL,
		Path:   u.Path,
		Key:    key,
		Params: params,
		Body:   reqBody,
	}

	status, out, err := route.Handler(req)
	if err != nil {
		t.logger.Debug("handler rejected request", "key", key, "error", err)
		return nil, nil, err
	}
	out, err = normalize(out)
	if err != nil {
		return nil, nil, &PreconditionError{Method: method, URL: rawURL, Key: key, Reason: "response is not JSON encodable: " + err.Error()}
	}

	resp := status.response()
	t.logger.Debug("dispatched", "method", method, "url", rawURL, "key", key, "status", resp.StatusCode)
	return resp, out, nil
}

// queryParams flattens query values; the last non-empty value wins.
func queryParams(values url.Values) map[string]string {
	params := make(map[string]string, len(values))
	for k, vs := range values {
		for _, v := range vs {
			if v != "" {
				params[k] = v
			}
		}
	}
	return params
}

func (t *Transport) record(c Call) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls = append(t.calls, c)
}

// Calls returns a copy of the call log in call order.
func (t *Transport) Calls() []Call {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.calls)
}

// LastCall returns the most recent call, or false when none was made.
func (t *Transport) LastCall() (Call, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.calls) == 0 {
		return Call{}, false
	}
	return t.calls[len(t.calls)-1], true
}

// Extensions returns the configured extension names, sorted.
func (t *Transport) Extensions() []string {
	out := slices.Clone(t.extensions)
	sort.Strings(out)
	return slices.Compact(out)
}

// HasExtension reports whether name was configured with WithExtensions.
func (t *Transport) HasExtension(name string) bool {
	return slices.Contains(t.extensions, name)
}

// Prefix returns the path prefix stripped from incoming requests.
func (t *Transport) Prefix() string {
	return t.prefix
}

// Routes describes every route this Transport answers, sorted by family
// and key.
func (t *Transport) Routes() []RouteInfo {
	return t.routes.infos()
}

// HasRoute reports whether a handler is registered for method and rawURL.
func (t *Transport) HasRoute(method, rawURL string) bool {
	_, ok := t.routes[HandlerKey(method, rawURL)]
	return ok
}
