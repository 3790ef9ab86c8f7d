package source

import (
	"fmt"
	"sync"

	"mcw/internal/domain"
)

// Registry manages available catalogs
type Registry struct {
	mu       sync.RWMutex
	catalogs map[domain.Provider]Catalog
}

// NewRegistry creates an empty catalog registry
func NewRegistry() *Registry {
	return &Registry{
		catalogs: make(map[domain.Provider]Catalog),
	}
}

// Register adds a catalog to the registry
func (r *Registry) Register(c Catalog) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catalogs[c.ID()] = c
}

// Get retrieves a catalog by provider
func (r *Registry) Get(id domain.Provider) (Catalog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.catalogs[id]
	if !ok {
		return nil, fmt.Errorf("catalog not registered: %s", id)
	}
	return c, nil
}

// List returns all registered catalogs
func (r *Registry) List() []Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Catalog, 0, len(r.catalogs))
	for _, c := range r.catalogs {
		out = append(out, c)
	}
	return out
}
