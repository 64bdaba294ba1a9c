package search

import "strings"

// Registry holds all registered search providers
type Registry struct {
	providers []SearchProvider
}

// NewRegistry creates a new provider registry
func NewRegistry() *Registry {
	return &Registry{
		providers: []SearchProvider{},
	}
}

// Register adds a provider to the registry
func (r *Registry) Register(provider SearchProvider) {
	r.providers = append(r.providers, provider)
}

// GetAll returns all registered providers
func (r *Registry) GetAll() []SearchProvider {
	return r.providers
}

// Count returns the number of registered providers
func (r *Registry) Count() int {
	return len(r.providers)
}

// Get returns the provider registered under name
func (r *Registry) Get(name string) (SearchProvider, bool) {
	for _, p := range r.providers {
		if strings.EqualFold(p.Name(), name) {
			return p, true
		}
	}
	return nil, false
}

// Primary returns the preferred provider if registered, otherwise the first
// one registered. It reports false when the registry is empty.
func (r *Registry) Primary(preferred string) (SearchProvider, bool) {
	if preferred != "" {
		if p, ok := r.Get(preferred); ok {
			return p, true
		}
	}
	if len(r.providers) == 0 {
		return nil, false
	}
	return r.providers[0], true
}
