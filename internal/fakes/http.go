package fakes

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

var (
	_ http.RoundTripper = (*Transport)(nil)
	_ http.Handler      = (*Transport)(nil)
)

// RoundTrip dispatches req without touching the network. Dispatch errors
// are returned as is; http.Client wraps them in a *url.Error, which still
// matches ErrPrecondition and ErrUnknownMethod through errors.Is.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := readJSONBody(req.Body)
	if err != nil {
		return nil, &PreconditionError{Method: req.Method, URL: req.URL.String(), Reason: err.Error()}
	}

	resp, out, err := t.Dispatch(req.Method, t.relativeURL(req.URL), body)
	if err != nil {
		return nil, err
	}

	var payload []byte
	if out != nil {
		if payload, err = json.Marshal(out); err != nil {
			return nil, fmt.Errorf("encode response: %w", err)
		}
	}

	header := resp.Header.Clone()
	if payload != nil {
		header.Set("Content-Type", "application/json")
	}
	header.Set("Content-Length", strconv.Itoa(len(payload)))

	return &http.Response{
		Status:        resp.Status(),
		StatusCode:    resp.StatusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(payload)),
		ContentLength: int64(len(payload)),
		Request:       req,
	}, nil
}

// ServeHTTP answers r from the handler table. Precondition failures become
// 400 and unknown handler keys 501, each with a JSON error body.
func (t *Transport) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := readJSONBody(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err, "")
		return
	}

	resp, out, err := t.Dispatch(r.Method, t.relativeURL(r.URL), body)
	if err != nil {
		var ue *UnknownMethodError
		switch {
		case errors.As(err, &ue):
			writeError(w, http.StatusNotImplemented, err, ue.Key)
		case IsPrecondition(err):
			writeError(w, http.StatusBadRequest, err, "")
		default:
			writeError(w, http.StatusInternalServerError, err, "")
		}
		return
	}

	for k, vs := range resp.Header {
		w.Header()[k] = vs
	}
	// 204 and 304 responses cannot carry a body on the wire.
	if out == nil || resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusNotModified {
		w.WriteHeader(resp.StatusCode)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(out)
}

func writeError(w http.ResponseWriter, status int, err error, key string) {
	detail := map[string]any{
		"message": err.Error(),
		"code":    status,
	}
	if key != "" {
		detail["expected_key"] = key
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // response already committed
	json.NewEncoder(w).Encode(map[string]any{"error": detail})
}

// relativeURL strips the configured prefix and returns path?query. Both
// sides are compared in escaped form, so an escaped "?" or "%" in a path
// segment stays part of the path.
func (t *Transport) relativeURL(u *url.URL) string {
	path := u.EscapedPath()
	if t.prefix != "" && (path == t.prefix || strings.HasPrefix(path, t.prefix+"/")) {
		path = strings.TrimPrefix(path, t.prefix)
	}
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		return path + "?" + u.RawQuery
	}
	return path
}

// readJSONBody decodes and closes rc. An absent or empty body is nil.
func readJSONBody(rc io.ReadCloser) (any, error) {
	if rc == nil || rc == http.NoBody {
		return nil, nil
	}
	defer rc.Close() //nolint:errcheck

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var body any
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("request body is not JSON: %w", err)
	}
	return body, nil
}
