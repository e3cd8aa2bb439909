package fakes

import "net/http"

func registerImages(b *builder) {
	b.family = "images"

	b.static(http.MethodGet, "/images", 200, "images/list")
	b.static(http.MethodGet, "/images/detail", 200, "images/detail")
	b.handle(http.MethodGet, "/images/1", func(*Request) (Status, any, error) {
		return Code(200), image(0), nil
	})
	b.handle(http.MethodGet, "/images/2", func(*Request) (Status, any, error) {
		return Code(200), image(1), nil
	})
	b.handle(http.MethodPost, "/images", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "image", "serverId", "name"); err != nil {
			return Status{}, nil, err
		}
		return Code(202), image(0), nil
	})
	b.handle(http.MethodPost, "/images/1/metadata", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "metadata", "test_key"); err != nil {
			return Status{}, nil, err
		}
		return Code(200), wrap("metadata", pluck("images/detail", "images", 0, "metadata")), nil
	})
	b.empty(http.MethodDelete, "/images/1", 204)
	b.empty(http.MethodDelete, "/images/1/metadata/test_key", 204)
}

func registerKeypairs(b *builder) {
	b.family = "keypairs"

	b.static(http.MethodGet, "/os-keypairs", 200, "keypairs/list")
	b.empty(http.MethodDelete, "/os-keypairs/test", 202)
	b.handle(http.MethodPost, "/os-keypairs", func(r *Request) (Status, any, error) {
		if _, err := wrappedObject(r, "keypair", "name"); err != nil {
			return Status{}, nil, err
		}
		return Code(202), wrap("keypair", pluck("keypairs/list", "keypairs", 0)), nil
	})
}

func image(i int) map[string]any {
	return wrap("image", pluck("images/detail", "images", i))
}

// wrappedObject checks a body of the form {key: {...}} whose only member is
// key and whose object holds every required key, and returns that object.
func wrappedObject(r *Request, key string, required ...string) (map[string]any, error) {
	obj, err := r.bodyObject()
	if err != nil {
		return nil, err
	}
	if err := r.exactKeys(obj, "body", []string{key}); err != nil {
		return nil, err
	}
	inner, err := r.member(obj, key)
	if err != nil {
		return nil, err
	}
	if err := r.requireKeys(inner, key, required...); err != nil {
		return nil, err
	}
	return inner, nil
}
