// Package config loads the TOML file that shapes a served fake: listen
// address, path prefix, advertised extensions and extra canned routes.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/salmonumbrella/computefake/internal/fakes"
)

const (
	// AppName is used for the config directory and environment prefix.
	AppName = "computefake"

	// DefaultListen is the address the fake serves on by default.
	DefaultListen = "127.0.0.1:8774"
)

var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
}

// Config is the decoded config file.
type Config struct {
	Server     ServerConfig  `toml:"server"`
	Extensions []string      `toml:"extensions"`
	Routes     []RouteConfig `toml:"route"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Listen string `toml:"listen"`
	Prefix string `toml:"prefix"`
}

// RouteConfig is a canned route added to (or replacing one of) the
// built-in handlers.
type RouteConfig struct {
	Method string `toml:"method"`
	Path   string `toml:"path"`
	Status int    `toml:"status"`
	// Body is an inline JSON document; BodyFile names a JSON file relative
	// to the config file. At most one may be set.
	Body     string            `toml:"body"`
	BodyFile string            `toml:"body_file"`
	Location string            `toml:"location"`
	Headers  map[string]string `toml:"headers"`

	body any
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{Server: ServerConfig{Listen: DefaultListen}}
}

// Load reads, decodes and validates the config file at path. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("decode config: %s", strict.String())
		}
		return nil, fmt.Errorf("decode config: %w", err)
	}

	dir := filepath.Dir(path)
	for i := range cfg.Routes {
		r := &cfg.Routes[i]
		if r.BodyFile != "" && r.Body != "" {
			return nil, fmt.Errorf("route %d (%s %s): body and body_file are mutually exclusive", i, r.Method, r.Path)
		}
		if r.BodyFile != "" {
			file := r.BodyFile
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, file)
			}
			raw, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("route %d: read body_file: %w", i, err)
			}
			r.Body = string(raw)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the config and parses route bodies.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Listen == "" {
		c.Server.Listen = DefaultListen
	}
	if c.Server.Prefix != "" && !strings.HasPrefix(c.Server.Prefix, "/") {
		return fmt.Errorf("server.prefix %q must start with /", c.Server.Prefix)
	}

	seen := make(map[string]int, len(c.Routes))
	for i := range c.Routes {
		r := &c.Routes[i]
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		if !slices.Contains(routeMethods, r.Method) {
			return fmt.Errorf("route %d: unsupported method %q", i, r.Method)
		}
		if !strings.HasPrefix(r.Path, "/") {
			return fmt.Errorf("route %d: path %q must be absolute", i, r.Path)
		}
		if r.Status == 0 {
			r.Status = http.StatusOK
		}
		if r.Status < 100 || r.Status > 599 {
			return fmt.Errorf("route %d (%s %s): status %d out of range", i, r.Method, r.Path, r.Status)
		}

		key := fakes.HandlerKey(r.Method, r.Path)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("route %d (%s %s): duplicate handler key %s, also defined by route %d", i, r.Method, r.Path, key, prev)
		}
		seen[key] = i

		r.body = nil
		if strings.TrimSpace(r.Body) != "" {
			if err := json.Unmarshal([]byte(r.Body), &r.body); err != nil {
				return fmt.Errorf("route %d (%s %s): body is not JSON: %w", i, r.Method, r.Path, err)
			}
		}
	}
	return nil
}

// Key returns the handler key the route is registered under.
func (r RouteConfig) Key() string {
	return fakes.HandlerKey(r.Method, r.Path)
}

// Route converts r into a fake route answering with its canned reply.
func (r RouteConfig) Route() fakes.Route {
	fields := make(map[string]string, len(r.Headers)+1)
	for k, v := range r.Headers {
		fields[k] = v
	}
	if r.Location != "" {
		fields["location"] = r.Location
	}
	status := fakes.Status{Code: r.Status, Fields: fields}
	body := r.body

	return fakes.Route{
		Method: r.Method,
		Path:   r.Path,
		Family: "config",
		Handler: func(*fakes.Request) (fakes.Status, any, error) {
			return status, body, nil
		},
	}
}

// Options returns the fake transport options the config describes.
func (c *Config) Options() []fakes.Option {
	routes := make([]fakes.Route, 0, len(c.Routes))
	for _, r := range c.Routes {
		routes = append(routes, r.Route())
	}
	opts := []fakes.Option{
		fakes.WithExtensions(c.Extensions...),
		fakes.WithRoutes(routes...),
	}
	// An unset prefix leaves one chosen elsewhere in place.
	if c.Server.Prefix != "" {
		opts = append(opts, fakes.WithPrefix(c.Server.Prefix))
	}
	return opts
}
