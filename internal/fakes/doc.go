// Package fakes provides a fake compute API transport for client tests.
//
// A Transport answers every request from a static handler table instead of
// a socket. Requests are resolved by a handler key derived from the method
// and URL path:
//
//	GET /servers/1234/os-virtual-interfaces?x=1  ->  get_servers_1234_os_virtual_interfaces
//
// Query parameters are handed to the handler, the call is appended to the
// transport's call log and the handler's canned response is returned. A
// request with no matching handler fails with ErrUnknownMethod instead of
// falling back to a default response, so drift between a client and the
// fixtures shows up as a test failure.
//
// Example usage:
//
//	tr := fakes.New(fakes.WithPrefix("/v1.1/project_id"))
//	client := &http.Client{Transport: tr}
//
//	resp, err := client.Get("http://compute.local/v1.1/project_id/servers")
//	// ...
//	if err := tr.Called("GET", "/servers", nil, -1); err != nil {
//		t.Fatal(err)
//	}
//
// Canned bodies live in fixtures/*.json and are embedded into the binary.
package fakes
