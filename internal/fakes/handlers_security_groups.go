package fakes

import "net/http"

func registerSecurityGroups(b *builder) {
	b.family = "security-groups"

	b.static(http.MethodGet, "/os-security-groups", 200, "security_groups/list")
	b.static(http.MethodGet, "/os-security-groups/1", 200, "security_groups/group_1")
	b.empty(http.MethodDelete, "/os-security-groups/1", 202)
	b.handle(http.MethodPost, "/os-security-groups", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "security_group", "name", "description"); err != nil {
			return Status{}, nil, err
		}
		return Code(202), wrap("security_group", pluck("security_groups/list", "security_groups", 0)), nil
	})

	b.static(http.MethodGet, "/os-security-group-rules", 200, "security_groups/rules")
	b.empty(http.MethodDelete, "/os-security-group-rules/1", 202)
	b.handle(http.MethodPost, "/os-security-group-rules", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "security_group_rule", "parent_group_id"); err != nil {
			return Status{}, nil, err
		}
		return Code(202), wrap("security_group_rule", pluck("security_groups/rules", "security_group_rules", 0)), nil
	})
}
