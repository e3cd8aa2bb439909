package compute

import (
	"context"
	"net/http"
	"net/url"
)

// GetQuota fetches the quota set of tenantID.
func (c *Client) GetQuota(ctx context.Context, tenantID string) (*QuotaSet, error) {
	return c.quotaReply(ctx, http.MethodGet, tenantID, nil)
}

// UpdateQuota sets the given quota values for tenantID and returns the
// resulting quota set.
func (c *Client) UpdateQuota(ctx context.Context, tenantID string, values map[string]int) (*QuotaSet, error) {
	set := make(map[string]any, len(values)+1)
	for k, v := range values {
		set[k] = v
	}
	set["tenant_id"] = tenantID
	return c.quotaReply(ctx, http.MethodPut, tenantID, map[string]any{"quota_set": set})
}

func (c *Client) quotaReply(ctx context.Context, method, tenantID string, body any) (*QuotaSet, error) {
	var reply struct {
		QuotaSet *QuotaSet `json:"quota_set"`
	}
	if _, err := c.do(ctx, method, "/os-quota-sets/"+url.PathEscape(tenantID), body, &reply); err != nil {
		return nil, err
	}
	if reply.QuotaSet == nil {
		return nil, ErrEmptyReply
	}
	return reply.QuotaSet, nil
}

// ListExtensions lists the API extensions the endpoint advertises.
func (c *Client) ListExtensions(ctx context.Context) ([]Extension, error) {
	var reply struct {
		Extensions []Extension `json:"extensions"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/extensions", nil, &reply); err != nil {
		return nil, err
	}
	return reply.Extensions, nil
}

// GetLimits fetches the rate and absolute limits.
func (c *Client) GetLimits(ctx context.Context) (*Limits, error) {
	var reply struct {
		Limits *Limits `json:"limits"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/limits", nil, &reply); err != nil {
		return nil, err
	}
	if reply.Limits == nil {
		return nil, ErrEmptyReply
	}
	return reply.Limits, nil
}
