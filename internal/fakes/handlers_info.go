package fakes

import "net/http"

func registerExtensions(b *builder) {
	b.family = "extensions"
	b.static(http.MethodGet, "/extensions", 200, "extensions/list")
}

func registerLimits(b *builder) {
	b.family = "limits"
	b.static(http.MethodGet, "/limits", 200, "limits/limits")
}

func registerUsage(b *builder) {
	b.family = "usage"
	b.static(http.MethodGet, "/os-simple-tenant-usage", 200, "usage/list")
	b.static(http.MethodGet, "/os-simple-tenant-usage/tenantfoo", 200, "usage/tenant")
}

func registerCertificates(b *builder) {
	b.family = "certificates"
	b.static(http.MethodGet, "/os-certificates/root", 200, "certificates/root")
	b.static(http.MethodPost, "/os-certificates", 200, "certificates/created")
}
