package fakes

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Request is what a handler sees of an intercepted call.
// Handlers must treat Body as read-only.
type Request struct {
	Method string
	URL    string
	Path   string
	Key    string
	Params map[string]string
	Body   any
}

// Param returns the query parameter name, or fallback when it is absent.
func (r *Request) Param(name, fallback string) string {
	if v, ok := r.Params[name]; ok {
		return v
	}
	return fallback
}

func (r *Request) fail(format string, args ...any) error {
	return &PreconditionError{
		Method: r.Method,
		URL:    r.URL,
		Key:    r.Key,
		Reason: fmt.Sprintf(format, args...),
	}
}

// requireBody fails when the request carries no body.
func (r *Request) requireBody() error {
	if r.Body == nil {
		return r.fail("request body is required")
	}
	return nil
}

// bodyObject returns the body as a JSON object.
func (r *Request) bodyObject() (map[string]any, error) {
	return r.object(r.Body, "body")
}

// member returns obj[key] as a JSON object.
func (r *Request) member(obj map[string]any, key string) (map[string]any, error) {
	v, ok := obj[key]
	if !ok {
		return nil, r.fail("missing %q", key)
	}
	return r.object(v, key)
}

func (r *Request) object(v any, what string) (map[string]any, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, r.fail("%s must be an object, got %s", what, describe(v))
	}
	return obj, nil
}

// requireKeys fails when any of keys is missing from obj.
func (r *Request) requireKeys(obj map[string]any, what string, keys ...string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return r.fail("%s is missing required keys %v (has %v)", what, missing, sortedKeys(obj))
	}
	return nil
}

// subsetKeys fails when obj has a key outside allowed.
func (r *Request) subsetKeys(obj map[string]any, what string, allowed ...string) error {
	var extra []string
	for _, k := range sortedKeys(obj) {
		if !slices.Contains(allowed, k) {
			extra = append(extra, k)
		}
	}
	if len(extra) > 0 {
		return r.fail("%s has unexpected keys %v (allowed %v)", what, extra, allowed)
	}
	return nil
}

// exactKeys fails unless the keys of obj are exactly required plus any
// subset of optional.
func (r *Request) exactKeys(obj map[string]any, what string, required []string, optional ...string) error {
	if err := r.subsetKeys(obj, what, append(slices.Clone(required), optional...)...); err != nil {
		return err
	}
	return r.requireKeys(obj, what, required...)
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func describe(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return strings.TrimPrefix(fmt.Sprintf("%T", v), "*")
	}
}
