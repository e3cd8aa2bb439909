package compute

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a resource identifier. The API mixes numeric and string ids (flavor
// "aa1" next to flavor 2), so both decode into ID.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// IntID converts a numeric id.
func IntID(n int) ID {
	return ID(strconv.Itoa(n))
}

// Ref is a reference to another resource embedded in a record. Servers
// booted from a volume carry an empty string instead of an image ref.
type Ref struct {
	ID   ID     `json:"id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON accepts an object, an empty string or null.
func (r *Ref) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case `""`, "null":
		*r = Ref{}
		return nil
	}
	type plain Ref
	return json.Unmarshal(data, (*plain)(r))
}

// IsZero reports whether the reference is absent.
func (r Ref) IsZero() bool {
	return r.ID == "" && r.Name == ""
}

// Address is one IP address of a server network.
type Address struct {
	Version int    `json:"version"`
	Addr    string `json:"addr"`
}

// Server is a compute instance.
type Server struct {
	ID        ID                   `json:"id"`
	Name      string               `json:"name"`
	Status    string               `json:"status,omitempty"`
	Progress  int                  `json:"progress,omitempty"`
	HostID    string               `json:"hostId,omitempty"`
	Image     Ref                  `json:"image"`
	Flavor    Ref                  `json:"flavor"`
	Addresses map[string][]Address `json:"addresses,omitempty"`
	Metadata  map[string]string    `json:"metadata,omitempty"`
}

// PersonalityFile is a file injected into a server at boot.
type PersonalityFile struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

// CreateServerOpts describes a server to boot.
type CreateServerOpts struct {
	Name           string
	ImageRef       string
	FlavorRef      string
	Metadata       map[string]string
	Personality    []PersonalityFile
	SchedulerHints map[string]any
}

// Flavor is a hardware template.
type Flavor struct {
	ID        ID     `json:"id"`
	Name      string `json:"name"`
	RAM       int    `json:"ram,omitempty"`
	Disk      int    `json:"disk,omitempty"`
	Ephemeral *int   `json:"OS-FLV-EXT-DATA:ephemeral,omitempty"`
	IsPublic  *bool  `json:"os-flavor-access:is_public,omitempty"`
}

// Image is a bootable image.
type Image struct {
	ID       ID                `json:"id"`
	Name     string            `json:"name"`
	Status   string            `json:"status,omitempty"`
	Progress int               `json:"progress,omitempty"`
	ServerID ID                `json:"serverId,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FloatingIP is a public address that can be attached to a server.
type FloatingIP struct {
	ID      ID      `json:"id"`
	IP      string  `json:"ip"`
	FixedIP string  `json:"fixed_ip,omitempty"`
	Pool    *string `json:"pool,omitempty"`
}

// Keypair is an SSH key registered with the project.
type Keypair struct {
	Name        string `json:"name"`
	Fingerprint string `json:"fingerprint,omitempty"`
	PublicKey   string `json:"public_key,omitempty"`
}

// SecurityGroup is a named set of firewall rules.
type SecurityGroup struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TenantID    string `json:"tenant_id,omitempty"`
}

// QuotaSet holds the per-tenant resource limits.
type QuotaSet struct {
	TenantID                 string `json:"tenant_id"`
	Instances                int    `json:"instances"`
	Cores                    int    `json:"cores"`
	RAM                      int    `json:"ram"`
	Volumes                  int    `json:"volumes"`
	Gigabytes                int    `json:"gigabytes"`
	FloatingIPs              int    `json:"floating_ips"`
	Keypairs                 int    `json:"keypairs"`
	SecurityGroups           int    `json:"security_groups"`
	SecurityGroupRules       int    `json:"security_group_rules"`
	InjectedFiles            int    `json:"injected_files"`
	InjectedFileContentBytes int    `json:"injected_file_content_bytes"`
	InjectedFilePathBytes    int    `json:"injected_file_path_bytes"`
}

// Extension is an API extension advertised by the endpoint.
type Extension struct {
	Alias       string `json:"alias"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Namespace   string `json:"namespace"`
	Updated     string `json:"updated"`
}

// RateLimit is one entry of a rate limit group.
type RateLimit struct {
	Verb          string `json:"verb"`
	Value         int    `json:"value"`
	Remaining     int    `json:"remaining"`
	Unit          string `json:"unit"`
	NextAvailable string `json:"next-available"`
}

// RateLimitGroup applies limits to the URIs matching Regex.
type RateLimitGroup struct {
	URI    string      `json:"uri"`
	Regex  string      `json:"regex"`
	Limits []RateLimit `json:"limit"`
}

// Limits reports the rate and absolute limits of the project.
type Limits struct {
	Rate     []RateLimitGroup `json:"rate"`
	Absolute map[string]int   `json:"absolute"`
}
