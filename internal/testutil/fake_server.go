package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/salmonumbrella/computefake/internal/fakes"
)

// FakeServer serves a fakes.Transport over HTTP.
type FakeServer struct {
	Server *httptest.Server
	fake   *fakes.Transport
	mu     sync.Mutex
	faults map[string]map[string]http.HandlerFunc // method -> path -> handler
}

// NewFakeServer starts a server backed by a fresh fakes.Transport.
func NewFakeServer(opts ...fakes.Option) *FakeServer {
	fs := &FakeServer{
		fake:   fakes.New(opts...),
		faults: make(map[string]map[string]http.HandlerFunc),
	}

	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.mu.Lock()
		handler, ok := fs.faults[r.Method][r.URL.Path]
		fs.mu.Unlock()

		if ok {
			handler(w, r)
			return
		}
		fs.fake.ServeHTTP(w, r)
	}))

	return fs
}

// Close shuts down the server.
func (f *FakeServer) Close() {
	f.Server.Close()
}

// URL returns the server URL.
func (f *FakeServer) URL() string {
	return f.Server.URL
}

// Fake returns the transport answering requests, for call log assertions.
func (f *FakeServer) Fake() *fakes.Transport {
	return f.fake
}

// Handle registers a handler for an exact method and path that takes
// precedence over the fake. Such requests are not recorded in the call log.
func (f *FakeServer) Handle(method, path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.faults[method] == nil {
		f.faults[method] = make(map[string]http.HandlerFunc)
	}
	f.faults[method][path] = handler
}

// HandleFault registers a compute fault reply, for example a 413 overLimit.
func (f *FakeServer) HandleFault(method, path string, statusCode int, message string) {
	f.Handle(method, path, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		//nolint:errcheck // test utility: encoding errors not actionable
		json.NewEncoder(w).Encode(map[string]any{
			faultName(statusCode): map[string]any{
				"message": message,
				"code":    statusCode,
			},
		})
	})
}

// Reset removes every registered fault handler.
func (f *FakeServer) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.faults)
}

func faultName(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "badRequest"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "itemNotFound"
	case http.StatusConflict:
		return "conflictingRequest"
	case http.StatusRequestEntityTooLarge, http.StatusTooManyRequests:
		return "overLimit"
	case http.StatusNotImplemented:
		return "notImplemented"
	case http.StatusServiceUnavailable:
		return "serviceUnavailable"
	default:
		return "computeFault"
	}
}
