package fakes

import "net/http"

func registerFlavors(b *builder) {
	b.family = "flavors"

	b.static(http.MethodGet, "/flavors", 200, "flavors/list")
	b.static(http.MethodGet, "/flavors/detail", 200, "flavors/detail")
	for i, id := range []string{"1", "2", "aa1"} {
		b.handle(http.MethodGet, "/flavors/"+id, func(*Request) (Status, any, error) {
			return Code(200), flavor(i), nil
		})
	}
	// Flavor 3 predates the ephemeral disk extension.
	b.static(http.MethodGet, "/flavors/3", 200, "flavors/flavor_3")
	b.empty(http.MethodDelete, "/flavors/flavordelete", 202)
	b.withBody(http.MethodPost, "/flavors", 202, func() any { return flavor(0) })

	b.static(http.MethodGet, "/flavors/1/os-extra_specs", 200, "flavors/extra_specs_1")
	b.static(http.MethodGet, "/flavors/2/os-extra_specs", 200, "flavors/extra_specs_2")
	b.static(http.MethodGet, "/flavors/aa1/os-extra_specs", 200, "flavors/extra_specs_aa1")
	b.handle(http.MethodPost, "/flavors/1/os-extra_specs", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "extra_specs", "k1"); err != nil {
			return Status{}, nil, err
		}
		return Code(200), fixture("flavors/extra_specs_1"), nil
	})
	b.empty(http.MethodDelete, "/flavors/1/os-extra_specs/k1", 204)

	b.empty(http.MethodGet, "/flavors/1/os-flavor-access", 404)
	b.static(http.MethodGet, "/flavors/2/os-flavor-access", 200, "flavors/access_2")
	b.withBody(http.MethodPost, "/flavors/2/action", 202, func() any { return fixture("flavors/access_2") })
}

func flavor(i int) map[string]any {
	return wrap("flavor", pluck("flavors/detail", "flavors", i))
}
