package fakes

import (
	"maps"
	"net/http"
)

func registerAgents(b *builder) {
	b.family = "agents"

	b.handle(http.MethodGet, "/os-agents", func(r *Request) (Status, any, error) {
		hypervisor := r.Param("hypervisor", "kvm")
		agents := records("agents/list", "agents")
		for _, a := range agents {
			a["hypervisor"] = hypervisor
		}
		return Code(200), wrap("agents", agents), nil
	})
	b.handle(http.MethodPost, "/os-agents", func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		agent, err := r.member(obj, "agent")
		if err != nil {
			return Status{}, nil, err
		}
		if err := r.requireKeys(agent, "agent", "hypervisor"); err != nil {
			return Status{}, nil, err
		}
		created := maps.Clone(pluck("agents/created", "agent").(map[string]any))
		created["hypervisor"] = agent["hypervisor"]
		return Code(200), wrap("agent", created), nil
	})
	b.empty(http.MethodDelete, "/os-agents/1", 202)
	b.static(http.MethodPut, "/os-agents/1", 200, "agents/updated")
}

func registerCloudpipe(b *builder) {
	b.family = "cloudpipe"

	b.static(http.MethodGet, "/os-cloudpipe", 200, "cloudpipe/list")
	b.static(http.MethodPost, "/os-cloudpipe", 202, "cloudpipe/created")
	b.empty(http.MethodPut, "/os-cloudpipe/configure-project", 202)
}

func registerAggregates(b *builder) {
	b.family = "aggregates"

	aggregate := func() any {
		return wrap("aggregate", pluck("aggregates/list", "aggregates", 0))
	}
	b.static(http.MethodGet, "/os-aggregates", 200, "aggregates/list")
	b.handle(http.MethodGet, "/os-aggregates/1", func(*Request) (Status, any, error) {
		return Code(200), aggregate(), nil
	})
	b.withBody(http.MethodPost, "/os-aggregates", 200, aggregate)
	b.withBody(http.MethodPut, "/os-aggregates/1", 200, aggregate)
	b.withBody(http.MethodPut, "/os-aggregates/2", 200, aggregate)
	b.withBody(http.MethodPost, "/os-aggregates/1/action", 200, aggregate)
	b.withBody(http.MethodPost, "/os-aggregates/2/action", 200, aggregate)
	b.empty(http.MethodDelete, "/os-aggregates/1", 202)
}

func registerServices(b *builder) {
	b.family = "services"

	b.handle(http.MethodGet, "/os-services", func(r *Request) (Status, any, error) {
		host := r.Param("host", "host1")
		binary := r.Param("service", "nova-compute")
		services := records("services/list", "services")
		for _, s := range services {
			s["host"] = host
			s["binary"] = binary
		}
		return Code(200), wrap("services", services), nil
	})
	b.handle(http.MethodPut, "/os-services/enable", toggleService(false))
	b.handle(http.MethodPut, "/os-services/disable", toggleService(true))
}

func toggleService(disabled bool) HandlerFunc {
	return func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		if err := r.requireKeys(obj, "body", "host", "service"); err != nil {
			return Status{}, nil, err
		}
		return Code(200), map[string]any{
			"host":     obj["host"],
			"service":  obj["service"],
			"disabled": disabled,
		}, nil
	}
}

func registerFixedIPs(b *builder) {
	b.family = "fixed-ips"

	b.static(http.MethodGet, "/os-fixed-ips/192.168.1.1", 200, "fixed_ips/fixed_ip")
	b.withBody(http.MethodPost, "/os-fixed-ips/192.168.1.1/action", 202, func() any { return nil })
}

func registerHosts(b *builder) {
	b.family = "hosts"

	b.handle(http.MethodGet, "/os-hosts", func(r *Request) (Status, any, error) {
		zone := r.Param("zone", "nova1")
		hosts := records("hosts/list", "hosts")
		for _, h := range hosts {
			h["zone"] = zone
		}
		return Code(200), wrap("hosts", hosts), nil
	})
	b.static(http.MethodGet, "/os-hosts/host", 200, "hosts/host")
	b.static(http.MethodGet, "/os-hosts/sample_host", 200, "hosts/sample_host")
	b.handle(http.MethodPut, "/os-hosts/sample_host", func(r *Request) (Status, any, error) {
		obj, err := r.bodyObject()
		if err != nil {
			return Status{}, nil, err
		}
		result := map[string]any{"host": "dummy"}
		maps.Copy(result, obj)
		return Code(200), result, nil
	})
	b.static(http.MethodPut, "/os-hosts/sample_host/1", 200, "hosts/sample_host_1")
	b.static(http.MethodPut, "/os-hosts/sample_host/2", 200, "hosts/sample_host_2")
	b.static(http.MethodPut, "/os-hosts/sample_host/3", 200, "hosts/sample_host_3")
	for _, action := range []string{"startup", "reboot", "shutdown"} {
		b.handle(http.MethodGet, "/os-hosts/sample_host/"+action, func(*Request) (Status, any, error) {
			return Code(200), map[string]any{"host": "sample_host", "power_action": action}, nil
		})
	}
}

func registerHypervisors(b *builder) {
	b.family = "hypervisors"

	b.static(http.MethodGet, "/os-hypervisors", 200, "hypervisors/list")
	b.static(http.MethodGet, "/os-hypervisors/detail", 200, "hypervisors/detail")
	b.static(http.MethodGet, "/os-hypervisors/statistics", 200, "hypervisors/statistics")
	b.static(http.MethodGet, "/os-hypervisors/hyper/search", 200, "hypervisors/search")
	b.static(http.MethodGet, "/os-hypervisors/hyper/servers", 200, "hypervisors/servers")
	b.static(http.MethodGet, "/os-hypervisors/1234", 200, "hypervisors/hypervisor_1234")
	b.static(http.MethodGet, "/os-hypervisors/1234/uptime", 200, "hypervisors/uptime_1234")
}
