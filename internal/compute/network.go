package compute

import (
	"context"
	"net/http"
)

// ListFloatingIPs lists the floating IPs allocated to the project.
func (c *Client) ListFloatingIPs(ctx context.Context) ([]FloatingIP, error) {
	var reply struct {
		FloatingIPs []FloatingIP `json:"floating_ips"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/os-floating-ips", nil, &reply); err != nil {
		return nil, err
	}
	return reply.FloatingIPs, nil
}

// CreateFloatingIP allocates a floating IP, from pool when it is non-empty.
func (c *Client) CreateFloatingIP(ctx context.Context, pool string) (*FloatingIP, error) {
	var p any
	if pool != "" {
		p = pool
	}
	var reply struct {
		FloatingIP *FloatingIP `json:"floating_ip"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/os-floating-ips", map[string]any{"pool": p}, &reply); err != nil {
		return nil, err
	}
	if reply.FloatingIP == nil {
		return nil, ErrEmptyReply
	}
	return reply.FloatingIP, nil
}

// ListKeypairs lists the registered key pairs.
func (c *Client) ListKeypairs(ctx context.Context) ([]Keypair, error) {
	var reply struct {
		Keypairs []Keypair `json:"keypairs"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/os-keypairs", nil, &reply); err != nil {
		return nil, err
	}
	return reply.Keypairs, nil
}

// CreateKeypair registers publicKey under name, or has the server generate
// a key pair when publicKey is empty.
func (c *Client) CreateKeypair(ctx context.Context, name, publicKey string) (*Keypair, error) {
	keypair := map[string]any{"name": name}
	if publicKey != "" {
		keypair["public_key"] = publicKey
	}
	var reply struct {
		Keypair *Keypair `json:"keypair"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/os-keypairs", map[string]any{"keypair": keypair}, &reply); err != nil {
		return nil, err
	}
	if reply.Keypair == nil {
		return nil, ErrEmptyReply
	}
	return reply.Keypair, nil
}

// ListSecurityGroups lists the security groups of the project.
func (c *Client) ListSecurityGroups(ctx context.Context) ([]SecurityGroup, error) {
	var reply struct {
		SecurityGroups []SecurityGroup `json:"security_groups"`
	}
	if _, err := c.do(ctx, http.MethodGet, "/os-security-groups", nil, &reply); err != nil {
		return nil, err
	}
	return reply.SecurityGroups, nil
}

// CreateSecurityGroup creates a security group.
func (c *Client) CreateSecurityGroup(ctx context.Context, name, description string) (*SecurityGroup, error) {
	body := map[string]any{"security_group": map[string]any{
		"name":        name,
		"description": description,
	}}
	var reply struct {
		SecurityGroup *SecurityGroup `json:"security_group"`
	}
	if _, err := c.do(ctx, http.MethodPost, "/os-security-groups", body, &reply); err != nil {
		return nil, err
	}
	if reply.SecurityGroup == nil {
		return nil, ErrEmptyReply
	}
	return reply.SecurityGroup, nil
}
