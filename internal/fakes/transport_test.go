package fakes

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmonumbrella/computefake/internal/logging"
	"github.com/salmonumbrella/computefake/internal/transport"
)

func TestDispatch_ListServers(t *testing.T) {
	tr := New()

	resp, body, err := tr.Dispatch("GET", "/servers", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	servers := body.(map[string]any)["servers"].([]any)
	require.Len(t, servers, 2)
	assert.Equal(t, float64(1234), servers[0].(map[string]any)["id"])
	assert.Equal(t, float64(5678), servers[1].(map[string]any)["id"])
}

func TestDispatch_Deterministic(t *testing.T) {
	tr := New()

	for _, route := range tr.Routes() {
		if route.Method != http.MethodGet {
			continue
		}
		t.Run(route.Key, func(t *testing.T) {
			first, firstBody, err := tr.Dispatch(route.Method, route.Path, nil)
			require.NoError(t, err)
			second, secondBody, err := tr.Dispatch(route.Method, route.Path, nil)
			require.NoError(t, err)

			assert.Equal(t, first.StatusCode, second.StatusCode)
			assert.Equal(t, firstBody, secondBody)
		})
	}
}

func TestDispatch_ReturnedBodyIsACopy(t *testing.T) {
	tr := New()

	_, body, err := tr.Dispatch("GET", "/servers/1234", nil)
	require.NoError(t, err)
	body.(map[string]any)["server"].(map[string]any)["name"] = "changed"

	_, again, err := tr.Dispatch("GET", "/servers/1234", nil)
	require.NoError(t, err)
	assert.Equal(t, "sample-server", again.(map[string]any)["server"].(map[string]any)["name"])
}

func TestDispatch_UnknownMethod(t *testing.T) {
	tr := New()

	for _, tc := range []struct{ method, url, key string }{
		{"GET", "/nonexistent", "get_nonexistent"},
		{"POST", "/servers/9999/action", "post_servers_9999_action"},
		{"PATCH", "/servers/1234?x=1", "patch_servers_1234"},
	} {
		resp, body, err := tr.Dispatch(tc.method, tc.url, nil)
		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Nil(t, body)
		assert.True(t, errors.Is(err, ErrUnknownMethod))
		assert.True(t, IsUnknownMethod(err))
		assert.Contains(t, err.Error(), tc.method+" "+tc.url)
		assert.Contains(t, err.Error(), tc.key)

		key, ok := ExpectedKey(err)
		assert.True(t, ok)
		assert.Equal(t, tc.key, key)
	}
	assert.Empty(t, tr.Calls())
}

func TestDispatch_Preconditions(t *testing.T) {
	tests := []struct {
		name   string
		method string
		url    string
		body   any
	}{
		{"GET with body", "GET", "/servers", map[string]any{"x": 1}},
		{"DELETE with body", "DELETE", "/servers/1234", map[string]any{}},
		{"PUT without body", "PUT", "/servers/1234", nil},
		{"PUT with typed nil", "PUT", "/os-quota-sets/test", (*struct{})(nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			_, _, err := tr.Dispatch(tt.method, tt.url, tt.body)
			require.Error(t, err)
			assert.True(t, IsPrecondition(err))
			assert.Empty(t, tr.Calls(), "precondition failures are not recorded")
		})
	}
}

func TestDispatch_CallLog(t *testing.T) {
	tr := New()

	requests := []Call{
		{Method: "GET", URL: "/servers"},
		{Method: "POST", URL: "/servers/1234/action", Body: map[string]any{"reboot": map[string]any{"type": "SOFT"}}},
		{Method: "GET", URL: "/flavors/detail?is_public=true"},
		{Method: "DELETE", URL: "/servers/1234"},
	}
	for _, c := range requests {
		_, _, err := tr.Dispatch(c.Method, c.URL, c.Body)
		require.NoError(t, err)
	}

	assert.Equal(t, requests, tr.Calls())

	last, ok := tr.LastCall()
	require.True(t, ok)
	assert.Equal(t, requests[3], last)
}

func TestDispatch_RecordsBeforeHandlerRuns(t *testing.T) {
	tr := New()

	body := map[string]any{"quota_set": map[string]any{"volumes": 2}}
	resp, out, err := tr.Dispatch("PUT", "/os-quota-sets/test", body)
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
	assert.Contains(t, err.Error(), "tenant_id")
	assert.Nil(t, resp)
	assert.Nil(t, out)

	calls := tr.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/os-quota-sets/test", calls[0].URL)
}

func TestDispatch_NormalisesStructBodies(t *testing.T) {
	type server struct {
		Name      string `json:"name"`
		ImageRef  int    `json:"imageRef"`
		FlavorRef int    `json:"flavorRef"`
	}
	tr := New()

	_, _, err := tr.Dispatch("POST", "/servers", map[string]any{"server": server{Name: "s", ImageRef: 1, FlavorRef: 2}})
	require.NoError(t, err)

	require.NoError(t, tr.Called("POST", "/servers", map[string]any{
		"server": map[string]any{"name": "s", "imageRef": float64(1), "flavorRef": float64(2)},
	}, -1))
}

func TestDispatch_UnencodableBody(t *testing.T) {
	tr := New()
	_, _, err := tr.Dispatch("POST", "/servers", map[string]any{"server": make(chan int)})
	require.Error(t, err)
	assert.True(t, IsPrecondition(err))
}

func TestDispatch_RequestIDHeader(t *testing.T) {
	tr := New()

	first, _, err := tr.Dispatch("GET", "/limits", nil)
	require.NoError(t, err)
	second, _, err := tr.Dispatch("GET", "/limits", nil)
	require.NoError(t, err)

	id := first.Header.Get(transport.RequestIDHeader)
	assert.True(t, strings.HasPrefix(id, "req-"), id)
	assert.NotEqual(t, id, second.Header.Get(transport.RequestIDHeader))
}

func TestDispatch_StatusMapping(t *testing.T) {
	tr := New()

	resp, body, err := tr.Dispatch("POST", "/servers/1234/action", map[string]any{
		"createImage": map[string]any{"name": "snap", "metadata": map[string]any{}},
	})
	require.NoError(t, err)
	assert.Equal(t, 202, resp.StatusCode)
	assert.Equal(t, "202 Accepted", resp.Status())
	assert.Equal(t, "http://blah/images/456", resp.Location())
	assert.Empty(t, resp.Header.Get("Status"))
	assert.Nil(t, body)
}

func TestWithRoutes(t *testing.T) {
	var logs bytes.Buffer
	tr := New(
		WithLogger(logging.New(&logs, true)),
		WithRoutes(
			Route{Method: "GET", Path: "/servers", Handler: func(*Request) (Status, any, error) {
				return Code(200), map[string]any{"servers": []any{}}, nil
			}},
			Route{Method: "GET", Path: "/os-custom/1", Handler: func(r *Request) (Status, any, error) {
				return Code(200), map[string]any{"key": r.Key}, nil
			}},
		),
	)

	_, body, err := tr.Dispatch("GET", "/servers", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"servers": []any{}}, body)

	_, body, err = tr.Dispatch("GET", "/os-custom/1", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"key": "get_os_custom_1"}, body)

	assert.Contains(t, logs.String(), "overriding handler")

	// The built-in table is untouched.
	_, body, err = New().Dispatch("GET", "/servers", nil)
	require.NoError(t, err)
	assert.Len(t, body.(map[string]any)["servers"], 2)
	assert.False(t, New().HasRoute("GET", "/os-custom/1"))
	assert.True(t, tr.HasRoute("GET", "/os-custom/1?x=1"))
}

func TestExtensions(t *testing.T) {
	tr := New(WithExtensions("os-hosts", "os-agents"), WithExtensions("os-hosts"))

	assert.Equal(t, []string{"os-agents", "os-hosts"}, tr.Extensions())
	assert.True(t, tr.HasExtension("os-agents"))
	assert.False(t, tr.HasExtension("os-networks"))
	assert.Empty(t, New().Extensions())
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/v1.1/project_id", "/v1.1/project_id"},
		{"v1.1/project_id/", "/v1.1/project_id"},
		{"/", ""},
		{"", ""},
		{"/v1.1/my project", "/v1.1/my%20project"},
		{"/v1.1/my%20project/", "/v1.1/my%20project"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(WithPrefix(tt.in)).Prefix(), tt.in)
	}
}

func TestDispatch_UnparsableURL(t *testing.T) {
	tr := New()

	_, _, err := tr.Dispatch("GET", "/servers/50%zz", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrecondition))
	assert.Contains(t, err.Error(), "malformed URL")
	assert.Empty(t, tr.Calls())

	_, _, err = tr.Dispatch("GET", "/servers/50%25zz", nil)
	assert.True(t, errors.Is(err, ErrUnknownMethod), "the escaped form parses and reaches the lookup")
}
