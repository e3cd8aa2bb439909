package fakes

import (
	"maps"
	"net/http"
)

func registerFloatingIPs(b *builder) {
	b.family = "floating-ips"

	b.static(http.MethodGet, "/os-floating-ip-pools", 200, "floating_ips/pools")
	b.static(http.MethodGet, "/os-floating-ips", 200, "floating_ips/list")
	b.static(http.MethodGet, "/os-floating-ips/1", 200, "floating_ips/ip_1")
	b.handle(http.MethodPost, "/os-floating-ips", postFloatingIP)
	b.empty(http.MethodDelete, "/os-floating-ips/1", 204)

	b.static(http.MethodGet, "/os-floating-ip-dns", 205, "floating_ips/dns_domains")
	b.handle(http.MethodGet, "/os-floating-ip-dns/testdomain/entries", getDNSEntries)
	b.static(http.MethodGet, "/os-floating-ip-dns/testdomain/entries/testname", 205, "floating_ips/dns_entry")
	b.handle(http.MethodPut, "/os-floating-ip-dns/testdomain", putDNSDomain)
	b.handle(http.MethodPut, "/os-floating-ip-dns/testdomain/entries/testname", func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		entry, err := r.member(obj, "dns_entry")
		if err != nil {
			return Status{}, nil, err
		}
		if err := r.requireKeys(entry, "dns_entry", "ip", "dns_type"); err != nil {
			return Status{}, nil, err
		}
		return Code(205), nil, nil
	})
	b.empty(http.MethodDelete, "/os-floating-ip-dns/testdomain", 200)
	b.empty(http.MethodDelete, "/os-floating-ip-dns/testdomain/entries/testname", 200)

	b.static(http.MethodGet, "/os-floating-ips-bulk", 200, "floating_ips/bulk")
	b.static(http.MethodGet, "/os-floating-ips-bulk/testHost", 200, "floating_ips/bulk")
	b.handle(http.MethodPost, "/os-floating-ips-bulk", postFloatingIPsBulk)
	b.handle(http.MethodPut, "/os-floating-ips-bulk/delete", func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		return Code(200), wrap("floating_ips_bulk_delete", obj["ip_range"]), nil
	})
}

// postFloatingIP reports pool "nova" when the request names any pool.
func postFloatingIP(r *Request) (Status, any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return Status{}, nil, err
	}
	ip := maps.Clone(pluck("floating_ips/ip_1", "floating_ip").(map[string]any))
	ip["pool"] = nil
	if pool, _ := obj["pool"].(string); pool != "" {
		ip["pool"] = "nova"
	}
	return Code(200), wrap("floating_ip", ip), nil
}

// getDNSEntries looks entries up by the ip query parameter and answers 404
// without one.
func getDNSEntries(r *Request) (Status, any, error) {
	ip := r.Param("ip", "")
	if ip == "" {
		return Code(404), nil, nil
	}
	entries := make([]any, 0, 2)
	for _, name := range []string{"host1", "host2"} {
		entries = append(entries, wrap("dns_entry", map[string]any{
			"ip":     ip,
			"name":   name,
			"type":   "A",
			"domain": "testdomain",
		}))
	}
	return Code(205), wrap("dns_entries", entries), nil
}

// putDNSDomain: private domains are scoped to an availability zone, every
// other scope to a project.
func putDNSDomain(r *Request) (Status, any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return Status{}, nil, err
	}
	entry, err := r.member(obj, "domain_entry")
	if err != nil {
		return Status{}, nil, err
	}
	if err := r.requireKeys(entry, "domain_entry", "scope"); err != nil {
		return Status{}, nil, err
	}
	owner := "project"
	if entry["scope"] == "private" {
		owner = "availability_zone"
	}
	if err := r.requireKeys(entry, "domain_entry", owner, "scope"); err != nil {
		return Status{}, nil, err
	}
	return Code(205), nil, nil
}

func postFloatingIPsBulk(r *Request) (Status, any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return Status{}, nil, err
	}
	params, err := r.member(obj, "floating_ips_bulk_create")
	if err != nil {
		return Status{}, nil, err
	}
	result := map[string]any{
		"ip_range":  "192.168.1.0/30",
		"pool":      "defaultPool",
		"interface": "defaultInterface",
	}
	for _, k := range []string{"pool", "interface"} {
		if v, ok := params[k]; ok {
			result[k] = v
		}
	}
	return Code(200), wrap("floating_ips_bulk_create", result), nil
}
