// Package testutil runs the fake compute API over real HTTP for tests.
//
// FakeServer wraps a fakes.Transport in an httptest.Server. Requests reach
// the fake's handler table, land in its call log, and can be asserted on
// afterwards. It supports:
//   - Fault injection that bypasses the handler table
//   - A path prefix, so clients can use their normal base URL
//   - Thread-safe registration while requests are in flight
//
// Example usage:
//
//	fs := testutil.NewFakeServer(fakes.WithPrefix("/v1.1/project_id"))
//	defer fs.Close()
//
//	fs.HandleFault("GET", "/v1.1/project_id/limits", http.StatusRequestEntityTooLarge, "rate limited")
//
//	client, _ := compute.NewClient(fs.URL(), "project_id")
//	servers, err := client.ListServers(ctx, false)
//	err = fs.Fake().Called("GET", "/servers", nil, -1)
package testutil
