package fakes

import "net/http"

func registerServers(b *builder) {
	b.family = "servers"

	b.static(http.MethodGet, "/servers", 200, "servers/list")
	b.static(http.MethodGet, "/servers/detail", 200, "servers/detail")
	b.handle(http.MethodPost, "/servers", postServers)
	b.handle(http.MethodPost, "/os-volumes_boot", postVolumesBoot)

	for i, id := range []string{"1234", "5678", "9012"} {
		b.handle(http.MethodGet, "/servers/"+id, func(*Request) (Status, any, error) {
			return Code(200), server(i), nil
		})
	}
	b.handle(http.MethodPut, "/servers/1234", func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		if err := r.exactKeys(obj, "body", []string{"server"}); err != nil {
			return Status{}, nil, err
		}
		if _, err := r.member(obj, "server"); err != nil {
			return Status{}, nil, err
		}
		return Code(204), nil, nil
	})
	b.empty(http.MethodDelete, "/servers/1234", 202)

	b.empty(http.MethodDelete, "/servers/1234/metadata/test_key", 204)
	b.empty(http.MethodDelete, "/servers/1234/metadata/key1", 204)
	b.empty(http.MethodDelete, "/servers/1234/metadata/key2", 204)
	b.static(http.MethodPost, "/servers/1234/metadata", 204, "servers/metadata")
	b.static(http.MethodGet, "/servers/1234/diagnostics", 200, "servers/diagnostics")
	b.static(http.MethodGet, "/servers/1234/actions", 200, "servers/actions")

	b.handle(http.MethodGet, "/servers/1234/ips", func(*Request) (Status, any, error) {
		return Code(200), wrap("addresses", pluck("servers/detail", "servers", 0, "addresses")), nil
	})
	for _, network := range []string{"public", "private"} {
		b.handle(http.MethodGet, "/servers/1234/ips/"+network, func(*Request) (Status, any, error) {
			return Code(200), wrap(network, pluck("servers/detail", "servers", 0, "addresses", network)), nil
		})
	}
	b.empty(http.MethodDelete, "/servers/1234/ips/public/1.2.3.4", 202)

	b.static(http.MethodGet, "/servers/1234/os-virtual-interfaces", 200, "servers/virtual_interfaces")
}

// server returns {"server": <i-th detailed server>}.
func server(i int) map[string]any {
	return wrap("server", pluck("servers/detail", "servers", i))
}

func postServers(r *Request) (Status, any, error) {
	srv, err := createServerBody(r, "imageRef")
	if err != nil {
		return Status{}, nil, err
	}
	if files, ok := srv["personality"]; ok {
		list, ok := files.([]any)
		if !ok {
			return Status{}, nil, r.fail("personality must be an array, got %s", describe(files))
		}
		for _, f := range list {
			file, err := r.object(f, "personality file")
			if err != nil {
				return Status{}, nil, err
			}
			if err := r.requireKeys(file, "personality file", "path", "contents"); err != nil {
				return Status{}, nil, err
			}
		}
	}
	return Code(202), server(0), nil
}

func postVolumesBoot(r *Request) (Status, any, error) {
	if _, err := createServerBody(r, "block_device_mapping"); err != nil {
		return Status{}, nil, err
	}
	return Code(202), server(2), nil
}

// createServerBody checks the envelope shared by both server create calls
// and returns the "server" member.
func createServerBody(r *Request, source string) (map[string]any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return nil, err
	}
	if err := r.subsetKeys(obj, "body", "server", "os:scheduler_hints"); err != nil {
		return nil, err
	}
	srv, err := r.member(obj, "server")
	if err != nil {
		return nil, err
	}
	if err := r.requireKeys(srv, "server", "name", source, "flavorRef"); err != nil {
		return nil, err
	}
	return srv, nil
}
