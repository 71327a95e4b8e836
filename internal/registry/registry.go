package registry

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint is one monitored host: a display name and the base URL of its
// Glances REST API (for example http://10.0.0.5:61208/api/4/).
type Endpoint struct {
	Name    string `yaml:"name"`
	BaseURL string `yaml:"glances_api_url"`
}

// Registry is the ordered, read-only set of endpoints. It is built once at
// startup and shared by every request without locking.
type Registry struct {
	endpoints []Endpoint
	index     map[string]int
}

func New(endpoints []Endpoint) (*Registry, error) {
	r := &Registry{
		endpoints: make([]Endpoint, 0, len(endpoints)),
		index:     make(map[string]int, len(endpoints)),
	}
	for i, ep := range endpoints {
		ep.Name = strings.TrimSpace(ep.Name)
		ep.BaseURL = strings.TrimSpace(ep.BaseURL)
		if err := validateEndpoint(ep); err != nil {
			return nil, fmt.Errorf("server #%d: %w", i+1, err)
		}
		if _, dup := r.index[ep.Name]; dup {
			return nil, fmt.Errorf("server #%d: duplicate name %q", i+1, ep.Name)
		}
		r.index[ep.Name] = len(r.endpoints)
		r.endpoints = append(r.endpoints, ep)
	}
	return r, nil
}

// Empty returns a registry with no endpoints.
func Empty() *Registry {
	return &Registry{index: map[string]int{}}
}

// All returns a copy of the endpoints in configuration order.
func (r *Registry) All() []Endpoint {
	out := make([]Endpoint, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

func (r *Registry) Lookup(name string) (Endpoint, bool) {
	i, ok := r.index[name]
	if !ok {
		return Endpoint{}, false
	}
	return r.endpoints[i], true
}

func (r *Registry) Len() int {
	return len(r.endpoints)
}

func validateEndpoint(ep Endpoint) error {
	if ep.Name == "" {
		return fmt.Errorf("name is required")
	}
	if ep.BaseURL == "" {
		return fmt.Errorf("glances_api_url is required for %q", ep.Name)
	}
	u, err := url.Parse(ep.BaseURL)
	if err != nil {
		return fmt.Errorf("glances_api_url for %q: %w", ep.Name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("glances_api_url for %q must use http or https, got %q", ep.Name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("glances_api_url for %q has no host", ep.Name)
	}
	return nil
}
