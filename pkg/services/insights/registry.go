package insights

import (
	"fmt"
	"sync"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// GroupingContext carries the collections a key selector may need to
// resolve names.
type GroupingContext struct {
	Projects []domain.Project
}

// KeyFactory builds a grouping key selector from context.
type KeyFactory func(GroupingContext) GroupKey

// KeyRegistry manages the named grouping dimensions exposed on the API
// and CLI surfaces.
type KeyRegistry interface {
	// Register adds a new grouping dimension
	Register(name string, factory KeyFactory) error
	// Create instantiates the selector for the named dimension
	Create(name string, gctx GroupingContext) (GroupKey, error)
	// ListKeys returns the registered dimension names
	ListKeys() []string
}

type keyRegistry struct {
	mu        sync.RWMutex
	factories map[string]KeyFactory
}

// NewKeyRegistry creates a registry preloaded with the standard
// dimensions: project, user, date, sprint and type.
func NewKeyRegistry() KeyRegistry {
	r := &keyRegistry{factories: make(map[string]KeyFactory)}
	_ = r.Register("project", func(gctx GroupingContext) GroupKey { return ByProject(gctx.Projects) })
	_ = r.Register("user", func(GroupingContext) GroupKey { return ByUser() })
	_ = r.Register("date", func(GroupingContext) GroupKey { return ByDate() })
	_ = r.Register("sprint", func(GroupingContext) GroupKey { return BySprint() })
	_ = r.Register("type", func(GroupingContext) GroupKey { return ByWorkType() })
	return r
}

func (r *keyRegistry) Register(name string, factory KeyFactory) error {
	if name == "" {
		return fmt.Errorf("dimension name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("dimension %q is already registered", name)
	}

	r.factories[name] = factory
	return nil
}

func (r *keyRegistry) Create(name string, gctx GroupingContext) (GroupKey, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("dimension %q is not registered", name)
	}

	return factory(gctx), nil
}

func (r *keyRegistry) ListKeys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.factories))
	for name := range r.factories {
		keys = append(keys, name)
	}
	return keys
}
