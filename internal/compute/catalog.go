package compute

import (
	"context"
	"net/http"
)

// ListFlavors lists flavors; detailed selects /flavors/detail.
func (c *Client) ListFlavors(ctx context.Context, detailed bool) ([]Flavor, error) {
	path := "/flavors"
	if detailed {
		path += "/detail"
	}
	var reply struct {
		Flavors []Flavor `json:"flavors"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Flavors, nil
}

// GetFlavor fetches one flavor.
func (c *Client) GetFlavor(ctx context.Context, id ID) (*Flavor, error) {
	var reply struct {
		Flavor *Flavor `json:"flavor"`
	}
	if _, err := c.do(ctx, http.MethodGet, idPath("/flavors", id), nil, &reply); err != nil {
		return nil, err
	}
	if reply.Flavor == nil {
		return nil, ErrEmptyReply
	}
	return reply.Flavor, nil
}

// ListImages lists images; detailed selects /images/detail.
func (c *Client) ListImages(ctx context.Context, detailed bool) ([]Image, error) {
	path := "/images"
	if detailed {
		path += "/detail"
	}
	var reply struct {
		Images []Image `json:"images"`
	}
	if _, err := c.do(ctx, http.MethodGet, path, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Images, nil
}
