package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// RequestIDHeader carries the compute API request id on every response.
const RequestIDHeader = "X-Compute-Request-Id"

// HTTPError represents a failed compute API call.
type HTTPError struct {
	Op         string
	StatusCode int
	Status     string
	// Fault is the message of the compute fault body, when it had one.
	Fault     string
	RequestID string
	Body      string
}

func (e *HTTPError) Error() string {
	detail := e.Fault
	if detail == "" {
		detail = e.Body
	}
	msg := fmt.Sprintf("http status %d", e.StatusCode)
	if e.Op != "" {
		msg = fmt.Sprintf("%s failed with status %d", e.Op, e.StatusCode)
	}
	if detail != "" {
		msg += ": " + detail
	}
	if e.RequestID != "" {
		msg += " (request " + e.RequestID + ")"
	}
	return msg
}

// NewHTTPError constructs an HTTPError from a response and its body.
func NewHTTPError(op string, resp *http.Response, body []byte) *HTTPError {
	e := &HTTPError{
		Op:    op,
		Body:  string(body),
		Fault: faultMessage(body),
	}
	if resp != nil {
		e.Status = resp.Status
		e.StatusCode = resp.StatusCode
		e.RequestID = resp.Header.Get(RequestIDHeader)
	}
	return e
}

// faultMessage extracts the message of a compute fault body. Faults are a
// single-key object naming the fault kind, for example
// {"itemNotFound": {"message": "...", "code": 404}}.
func faultMessage(body []byte) string {
	var fault map[string]struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &fault); err != nil || len(fault) != 1 {
		return ""
	}
	for _, f := range fault {
		return f.Message
	}
	return ""
}

// IsHTTPStatus checks whether an error represents a specific HTTP status.
func IsHTTPStatus(err error, status int) bool {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.StatusCode == status
	}
	return false
}

// IsUnauthorized checks for 401/403 HTTP errors.
func IsUnauthorized(err error) bool {
	return IsHTTPStatus(err, http.StatusUnauthorized) || IsHTTPStatus(err, http.StatusForbidden)
}

// IsNotFound checks for 404 HTTP errors.
func IsNotFound(err error) bool {
	return IsHTTPStatus(err, http.StatusNotFound)
}
