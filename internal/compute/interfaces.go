package compute

import "context"

// ServerService covers server lifecycle and server actions.
type ServerService interface {
	ListServers(ctx context.Context, detailed bool) ([]Server, error)
	GetServer(ctx context.Context, id ID) (*Server, error)
	CreateServer(ctx context.Context, opts CreateServerOpts) (*Server, error)
	UpdateServer(ctx context.Context, id ID, name string) error
	DeleteServer(ctx context.Context, id ID) error
	Reboot(ctx context.Context, id ID, hard bool) error
	Resize(ctx context.Context, id ID, flavorRef string) error
	ConfirmResize(ctx context.Context, id ID) error
	// CreateImage snapshots a server and returns the Location of the image.
	CreateImage(ctx context.Context, id ID, name string, metadata map[string]string) (string, error)
	ConsoleOutput(ctx context.Context, id ID, length int) (string, error)
}

// CatalogService covers flavors and images.
type CatalogService interface {
	ListFlavors(ctx context.Context, detailed bool) ([]Flavor, error)
	GetFlavor(ctx context.Context, id ID) (*Flavor, error)
	ListImages(ctx context.Context, detailed bool) ([]Image, error)
}

// NetworkService covers floating IPs, key pairs and security groups.
type NetworkService interface {
	ListFloatingIPs(ctx context.Context) ([]FloatingIP, error)
	CreateFloatingIP(ctx context.Context, pool string) (*FloatingIP, error)
	ListKeypairs(ctx context.Context) ([]Keypair, error)
	CreateKeypair(ctx context.Context, name, publicKey string) (*Keypair, error)
	ListSecurityGroups(ctx context.Context) ([]SecurityGroup, error)
	CreateSecurityGroup(ctx context.Context, name, description string) (*SecurityGroup, error)
}

// AccountService covers quotas, extensions and limits.
type AccountService interface {
	GetQuota(ctx context.Context, tenantID string) (*QuotaSet, error)
	UpdateQuota(ctx context.Context, tenantID string, values map[string]int) (*QuotaSet, error)
	ListExtensions(ctx context.Context) ([]Extension, error)
	GetLimits(ctx context.Context) (*Limits, error)
}
