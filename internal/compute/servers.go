package compute

import (
	"context"
	"net/http"
)

// ListServers lists servers; detailed selects /servers/detail.
func (c *Client) ListServers(ctx context.Context, detailed bool) ([]Server, error) {
	path := "/servers"
	if detailed {
		path += "/detail"
	}
	var reply struct {
		Servers []Server `json:"servers"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Servers, nil
}

// GetServer fetches one server.
func (c *Client) GetServer(ctx context.Context, id ID) (*Server, error) {
	return c.serverReply(ctx, http.MethodGet, idPath("/servers", id), nil)
}

// CreateServer boots a server.
func (c *Client) CreateServer(ctx context.Context, opts CreateServerOpts) (*Server, error) {
	server := map[string]any{
		"name":      opts.Name,
		"imageRef":  opts.ImageRef,
		"flavorRef": opts.FlavorRef,
	}
	if len(opts.Metadata) > 0 {
		server["metadata"] = opts.Metadata
	}
	if len(opts.Personality) > 0 {
		server["personality"] = opts.Personality
	}
	body := map[string]any{"server": server}
	if len(opts.SchedulerHints) > 0 {
		body["os:scheduler_hints"] = opts.SchedulerHints
	}
	return c.serverReply(ctx, http.MethodPost, "/servers", body)
}

// UpdateServer renames a server.
func (c *Client) UpdateServer(ctx context.Context, id ID, name string) error {
	body := map[string]any{"server": map[string]any{"name": name}}
	_, err := c.do(ctx, http.MethodPut, idPath("/servers", id), body, nil)
	return err
}

// DeleteServer deletes a server.
func (c *Client) DeleteServer(ctx context.Context, id ID) error {
	_, err := c.do(ctx, http.MethodDelete, idPath("/servers", id), nil, nil)
	return err
}

// Reboot reboots a server, hard or soft.
func (c *Client) Reboot(ctx context.Context, id ID, hard bool) error {
	kind := "SOFT"
	if hard {
		kind = "HARD"
	}
	_, err := c.action(ctx, id, "reboot", map[string]any{"type": kind}, nil)
	return err
}

// Resize moves a server to another flavor. The resize must be confirmed.
func (c *Client) Resize(ctx context.Context, id ID, flavorRef string) error {
	_, err := c.action(ctx, id, "resize", map[string]any{"flavorRef": flavorRef}, nil)
	return err
}

// ConfirmResize commits a pending resize.
func (c *Client) ConfirmResize(ctx context.Context, id ID) error {
	_, err := c.action(ctx, id, "confirmResize", nil, nil)
	return err
}

// CreateImage snapshots a server and returns the Location of the new image.
func (c *Client) CreateImage(ctx context.Context, id ID, name string, metadata map[string]string) (string, error) {
	if metadata == nil {
		metadata = map[string]string{}
	}
	header, err := c.action(ctx, id, "createImage", map[string]any{"name": name, "metadata": metadata}, nil)
	if err != nil {
		return "", err
	}
	return header.Get("Location"), nil
}

// ConsoleOutput returns the last length lines of the server console.
func (c *Client) ConsoleOutput(ctx context.Context, id ID, length int) (string, error) {
	var reply struct {
		Output string `json:"output"`
	}
	if _, err := c.action(ctx, id, "os-getConsoleOutput", map[string]any{"length": length}, &reply); err != nil {
		return "", err
	}
	return reply.Output, nil
}

// action posts {name: args} to the server action endpoint. A nil args map
// encodes as JSON null.
func (c *Client) action(ctx context.Context, id ID, name string, args map[string]any, out any) (http.Header, error) {
	return c.do(ctx, http.MethodPost, idPath("/servers", id)+"/action", map[string]any{name: args}, out)
}

func (c *Client) serverReply(ctx context.Context, method, path string, body any) (*Server, error) {
	var reply struct {
		Server *Server `json:"server"`
	}
	if _, err := c.do(ctx, method, path, body, &reply); err != nil {
		return nil, err
	}
	if reply.Server == nil {
		return nil, ErrEmptyReply
	}
	return reply.Server, nil
}
