package fakes

import "net/http"

func registerQuotas(b *builder) {
	b.family = "quotas"

	b.static(http.MethodGet, "/os-quota-sets/test", 200, "quotas/quota_set")
	b.static(http.MethodGet, "/os-quota-sets/test/defaults", 200, "quotas/quota_set")
	b.handle(http.MethodPut, "/os-quota-sets/test", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "quota_set", "tenant_id"); err != nil {
			return Status{}, nil, err
		}
		return Code(200), fixture("quotas/quota_set_updated"), nil
	})

	b.static(http.MethodGet, "/os-quota-class-sets/test", 200, "quotas/quota_class_set")
	b.handle(http.MethodPut, "/os-quota-class-sets/test", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "quota_class_set", "class_name"); err != nil {
			return Status{}, nil, err
		}
		return Code(200), fixture("quotas/quota_class_set_updated"), nil
	})
}
