package fakes

import "net/http"

func registerNetworks(b *builder) {
	b.family = "networks"

	b.static(http.MethodGet, "/os-networks", 200, "networks/list")
	b.static(http.MethodGet, "/os-networks/1", 200, "networks/network_1")
	// Creation echoes the request back: query parameters plus the body
	// under "body".
	b.handle(http.MethodPost, "/os-networks", func(r *Request) (Status, any, error) {
		network := make(map[string]any, len(r.Params)+1)
		for k, v := range r.Params {
			network[k] = v
		}
		if r.Body != nil {
			network["body"] = r.Body
		}
		return Code(202), wrap("network", network), nil
	})
	for _, id := range []string{"1", "2", "networktest", "networkdisassociate"} {
		b.empty(http.MethodPost, "/os-networks/"+id+"/action", 202)
	}
	b.empty(http.MethodPost, "/os-networks/add", 202)
	b.empty(http.MethodDelete, "/os-networks/networkdelete", 202)
}

func registerFping(b *builder) {
	b.family = "fping"

	b.static(http.MethodGet, "/os-fping", 200, "fping/list")
	b.static(http.MethodGet, "/os-fping/1", 200, "fping/server_1")
}
