package provider

import (
	"sort"

	"github.com/rios0rios0/gitmeta/domain"
)

// Registry manages all registered hosting-platform implementations.
type Registry struct {
	factories map[string]Factory
}

// Factory is a constructor that creates a Provider for one project on one
// configured platform.
type Factory func(cfg domain.ProviderConfig, projectID string) domain.Provider

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a provider factory under the given platform id (e.g. "github").
func (r *Registry) Register(platform string, factory Factory) {
	r.factories[platform] = factory
}

// Get returns a provider for the config's platform bound to the given project.
// An unregistered platform yields a domain.ConfigError.
func (r *Registry) Get(cfg domain.ProviderConfig, projectID string) (domain.Provider, error) {
	factory, ok := r.factories[cfg.Platform]
	if !ok {
		return nil, &domain.ConfigError{Platform: cfg.Platform, Reason: "unknown platform"}
	}
	return factory(cfg, projectID), nil
}

// Names returns the sorted list of registered platform ids.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
