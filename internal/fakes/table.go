package fakes

import (
	"fmt"
	"sort"
)

// HandlerFunc produces the canned response for a request. A non-nil error
// is returned to the caller of Dispatch as is.
type HandlerFunc func(r *Request) (Status, any, error)

// Route binds a handler to the key derived from Method and Path. Path is a
// literal example URL path such as "/servers/1234/action".
type Route struct {
	Method  string
	Path    string
	Family  string
	Handler HandlerFunc
}

// Key returns the handler key the route answers to.
func (r Route) Key() string {
	return HandlerKey(r.Method, r.Path)
}

type table map[string]Route

// builtin is the default handler table, built once at initialisation and
// never modified afterwards.
var builtin = buildTable(
	registerAgents,
	registerExtensions,
	registerLimits,
	registerServers,
	registerServerActions,
	registerCloudpipe,
	registerFlavors,
	registerFloatingIPs,
	registerImages,
	registerKeypairs,
	registerQuotas,
	registerSecurityGroups,
	registerUsage,
	registerCertificates,
	registerAggregates,
	registerServices,
	registerFixedIPs,
	registerHosts,
	registerHypervisors,
	registerNetworks,
	registerFping,
)

type registrar func(b *builder)

type builder struct {
	family string
	routes table
}

func buildTable(families ...registrar) table {
	b := &builder{routes: make(table)}
	for _, register := range families {
		register(b)
	}
	return b.routes
}

// handle registers h. Two routes deriving the same key is a bug in the
// table, so it panics rather than letting the later one win.
func (b *builder) handle(method, path string, h HandlerFunc) {
	route := Route{Method: method, Path: path, Family: b.family, Handler: h}
	key := route.Key()
	if prev, ok := b.routes[key]; ok {
		panic(fmt.Sprintf("fakes: duplicate handler %s: %s %s already registered by %s %s",
			key, method, path, prev.Method, prev.Path))
	}
	b.routes[key] = route
}

// static registers a handler returning a fixture unchanged.
func (b *builder) static(method, path string, code int, name string) {
	fixture(name)
	b.handle(method, path, func(*Request) (Status, any, error) {
		return Code(code), fixture(name), nil
	})
}

// empty registers a handler returning code without a body.
func (b *builder) empty(method, path string, code int) {
	b.handle(method, path, func(*Request) (Status, any, error) {
		return Code(code), nil, nil
	})
}

// withBody registers a handler that only insists on a request body.
func (b *builder) withBody(method, path string, code int, reply func() any) {
	b.handle(method, path, func(r *Request) (Status, any, error) {
		if err := r.requireBody(); err != nil {
			return Status{}, nil, err
		}
		return Code(code), reply(), nil
	})
}

func (t table) clone() table {
	out := make(table, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}

// RouteInfo describes a registered route.
type RouteInfo struct {
	Key    string `json:"key"`
	Method string `json:"method"`
	Path   string `json:"path"`
	Family string `json:"family"`
}

func (t table) infos() []RouteInfo {
	out := make([]RouteInfo, 0, len(t))
	for key, r := range t {
		out = append(out, RouteInfo{Key: key, Method: r.Method, Path: r.Path, Family: r.Family})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Key < out[j].Key
	})
	return out
}
