package fakes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/salmonumbrella/computefake/internal/transport"
)

// Status is the metadata half of a handler result. A bare status has only
// Code; Fields holds extra response metadata such as a Location.
type Status struct {
	Code   int
	Fields map[string]string
}

// Code returns a bare status.
func Code(code int) Status {
	return Status{Code: code}
}

// Response is the normalised response metadata returned by Dispatch.
type Response struct {
	StatusCode int
	Header     http.Header
}

// Status returns the status line text, e.g. "202 Accepted".
func (r *Response) Status() string {
	return fmt.Sprintf("%d %s", r.StatusCode, http.StatusText(r.StatusCode))
}

// Location returns the Location header, if any.
func (r *Response) Location() string {
	return r.Header.Get("Location")
}

func (s Status) response() *Response {
	resp := &Response{
		StatusCode: s.Code,
		Header:     make(http.Header),
	}
	for k, v := range s.Fields {
		if strings.EqualFold(k, "status") {
			continue
		}
		resp.Header.Set(k, v)
	}
	// Every reply is tagged with a fresh request id, the way the compute API does.
	resp.Header.Set(transport.RequestIDHeader, "req-"+uuid.NewString())
	return resp
}

// normalize converts v to its plain JSON form. The result shares nothing
// with v, so fixtures and callers never alias each other.
func normalize(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
