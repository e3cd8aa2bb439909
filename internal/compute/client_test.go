package compute_test

import (
	"context"
	"errors"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmonumbrella/computefake/internal/compute"
	"github.com/salmonumbrella/computefake/internal/fakes"
	"github.com/salmonumbrella/computefake/internal/transport"
)

const (
	endpoint = "http://nova.example:8774"
	project  = "project_id"
)

func newClient(t *testing.T, opts ...fakes.Option) (*compute.Client, *fakes.Transport) {
	t.Helper()
	fake := fakes.New(append([]fakes.Option{fakes.WithPrefix("/v1.1/" + project)}, opts...)...)
	client, err := compute.NewClient(endpoint, project,
		compute.WithTransport(fake),
		compute.WithRetryConfig(transport.RetryConfig{MaxRetries: 2, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond}),
	)
	require.NoError(t, err)
	return client, fake
}

func TestNewClient(t *testing.T) {
	client, err := compute.NewClient(endpoint+"/", project)
	require.NoError(t, err)
	assert.Equal(t, "v1.1", client.APIVersion())
	assert.Equal(t, endpoint+"/v1.1/project_id", client.BaseURL())

	client, err = compute.NewClient(endpoint, project, compute.WithAPIVersion("2.1"))
	require.NoError(t, err)
	assert.Equal(t, endpoint+"/v2.1/project_id", client.BaseURL())
}

func TestNewClient_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		project  string
		opts     []compute.Option
		want     error
	}{
		{"relative endpoint", "/v1.1", project, nil, compute.ErrInvalidEndpoint},
		{"no host", "http://", project, nil, compute.ErrInvalidEndpoint},
		{"missing project", endpoint, " ", nil, compute.ErrMissingProject},
		{"garbage version", endpoint, project, []compute.Option{compute.WithAPIVersion("latest")}, compute.ErrInvalidVersion},
		{"old version", endpoint, project, []compute.Option{compute.WithAPIVersion("v1.0")}, compute.ErrInvalidVersion},
		{"major only", endpoint, project, []compute.Option{compute.WithAPIVersion("1")}, compute.ErrInvalidVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compute.NewClient(tt.endpoint, tt.project, tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_HTTPErrors(t *testing.T) {
	client, fake := newClient(t, fakes.WithRoutes(fakes.Route{
		Method: "GET",
		Path:   "/flavors/9",
		Handler: func(*fakes.Request) (fakes.Status, any, error) {
			return fakes.Code(404), map[string]any{
				"itemNotFound": map[string]any{"message": "Flavor 9 could not be found.", "code": 404},
			}, nil
		},
	}))

	_, err := client.GetFlavor(context.Background(), "9")
	require.Error(t, err)
	assert.True(t, transport.IsNotFound(err))

	var he *transport.HTTPError
	require.True(t, errors.As(err, &he))
	assert.Equal(t, "GET /flavors/9", he.Op)
	assert.Equal(t, "Flavor 9 could not be found.", he.Fault)
	assert.Contains(t, he.RequestID, "req-")
	assert.Len(t, fake.Calls(), 1, "404 is not retried")
}

func TestClient_UnknownEndpointSurfacesFakeError(t *testing.T) {
	client, err := compute.NewClient(endpoint, project,
		compute.WithTransport(fakes.New(fakes.WithPrefix("/v1.1/"+project))),
		compute.WithAPIVersion("v2.1"),
	)
	require.NoError(t, err)

	_, err = client.ListServers(context.Background(), false)
	require.Error(t, err)
	assert.True(t, fakes.IsUnknownMethod(err))

	key, ok := fakes.ExpectedKey(err)
	require.True(t, ok)
	assert.Equal(t, "get_v2_1_project_id_servers", key)
}

func TestClient_RetriesOverLimit(t *testing.T) {
	var attempts atomic.Int32
	client, fake := newClient(t, fakes.WithRoutes(fakes.Route{
		Method: "GET",
		Path:   "/limits",
		Handler: func(*fakes.Request) (fakes.Status, any, error) {
			if attempts.Add(1) == 1 {
				return fakes.Status{Code: 413, Fields: map[string]string{"retry-after": "0"}}, map[string]any{
					"overLimit": map[string]any{"message": "This request was rate-limited.", "code": 413},
				}, nil
			}
			return fakes.Code(200), map[string]any{"limits": map[string]any{"rate": []any{}, "absolute": map[string]any{"maxServerMeta": 5}}}, nil
		},
	}))

	limits, err := client.GetLimits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, limits.Absolute["maxServerMeta"])
	assert.EqualValues(t, 2, attempts.Load())
	assert.Len(t, fake.Calls(), 2)
}

func TestClient_UnregisteredResources(t *testing.T) {
	client, fake := newClient(t)

	_, err := client.UpdateQuota(context.Background(), "nobody", map[string]int{"volumes": 2})
	require.Error(t, err)
	assert.True(t, fakes.IsUnknownMethod(err))

	err = client.Reboot(context.Background(), "5678", true)
	require.Error(t, err)
	assert.True(t, fakes.IsUnknownMethod(err))
	assert.Empty(t, fake.Calls())
}

func TestClient_EscapedPathSegments(t *testing.T) {
	const spaced = "my project"
	fake := fakes.New(
		fakes.WithPrefix("/v1.1/"+url.PathEscape(spaced)),
		fakes.WithRoutes(fakes.Route{Method: "GET", Path: "/servers/a%3Fb", Handler: func(*fakes.Request) (fakes.Status, any, error) {
			return fakes.Code(200), map[string]any{"server": map[string]any{"id": "a?b", "name": "odd"}}, nil
		}}),
	)
	client, err := compute.NewClient(endpoint, spaced, compute.WithTransport(fake))
	require.NoError(t, err)
	ctx := context.Background()

	servers, err := client.ListServers(ctx, false)
	require.NoError(t, err)
	assert.Len(t, servers, 2)
	require.NoError(t, fake.Called("GET", "/servers", nil, 0))

	server, err := client.GetServer(ctx, "a?b")
	require.NoError(t, err)
	assert.Equal(t, "odd", server.Name)
	require.NoError(t, fake.Called("GET", "/servers/a%3Fb", nil, -1))

	_, err = client.GetServer(ctx, "50%zz")
	require.Error(t, err)
	assert.False(t, errors.Is(err, fakes.ErrPrecondition))
	key, ok := fakes.ExpectedKey(err)
	require.True(t, ok)
	assert.Equal(t, "get_servers_50%25zz", key)
}
