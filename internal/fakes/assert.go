package fakes

import (
	"fmt"
	"reflect"

	"github.com/salmonumbrella/computefake/internal/filter"
)

// Called checks the call at position pos of the call log; a negative pos
// counts from the end, so -1 is the most recent call. A nil body skips the
// body comparison.
func (t *Transport) Called(method, rawURL string, body any, pos int) error {
	calls := t.Calls()
	if len(calls) == 0 {
		return fmt.Errorf("%w: expected %s %s but no calls were made", ErrCallMismatch, method, rawURL)
	}

	i := pos
	if i < 0 {
		i += len(calls)
	}
	if i < 0 || i >= len(calls) {
		return fmt.Errorf("%w: no call at position %d (%d calls made)", ErrCallMismatch, pos, len(calls))
	}

	got := calls[i]
	if got.Method != method || got.URL != rawURL {
		return fmt.Errorf("%w: expected %s %s; got %s %s", ErrCallMismatch, method, rawURL, got.Method, got.URL)
	}
	return compareBody(got, body)
}

// CalledAnywhere checks that method and rawURL appear somewhere in the call
// log. When body is non-nil it is compared with the first matching call.
func (t *Transport) CalledAnywhere(method, rawURL string, body any) error {
	for _, c := range t.Calls() {
		if c.Method == method && c.URL == rawURL {
			return compareBody(c, body)
		}
	}
	return fmt.Errorf("%w: expected %s %s; not in call log", ErrCallMismatch, method, rawURL)
}

// CallsMatching returns the recorded calls for which the jq expression is
// truthy. Each call is presented as {"method", "url", "body"}.
func (t *Transport) CallsMatching(expression string) ([]Call, error) {
	var out []Call
	for _, c := range t.Calls() {
		ok, err := filter.Match(map[string]any{
			"method": c.Method,
			"url":    c.URL,
			"body":   c.Body,
		}, expression)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func compareBody(c Call, want any) error {
	if want == nil {
		return nil
	}
	want, err := normalize(want)
	if err != nil {
		return fmt.Errorf("encode expected body: %w", err)
	}
	if !reflect.DeepEqual(c.Body, want) {
		return fmt.Errorf("%w: %s %s body = %v, want %v", ErrCallMismatch, c.Method, c.URL, c.Body, want)
	}
	return nil
}
