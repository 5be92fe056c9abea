package render

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps output format names ("vanilla", "tui") to renderers. A Form
// renders its current View through whichever entry the caller names, falling
// back to its default renderer.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Renderer
}

// NewRegistry returns a registry with no formats.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Renderer)}
}

// Register adds every renderer under its Name(). The batch is all or
// nothing: a nil or unnamed renderer, or a name already taken (in the
// registry or earlier in the batch), leaves the registry unchanged.
func (r *Registry) Register(renderers ...Renderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	batch := make(map[string]Renderer, len(renderers))
	for i, renderer := range renderers {
		if renderer == nil {
			return fmt.Errorf("%w: renderer %d is nil", ErrInvalidRenderer, i)
		}
		name := renderer.Name()
		if name == "" {
			return fmt.Errorf("%w: renderer %d has no name", ErrInvalidRenderer, i)
		}
		if _, taken := r.byName[name]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
		}
		if _, taken := batch[name]; taken {
			return fmt.Errorf("%w: %q", ErrDuplicateRenderer, name)
		}
		batch[name] = renderer
	}

	for name, renderer := range batch {
		r.byName[name] = renderer
	}
	return nil
}

// MustRegister is Register for wiring code that cannot recover.
func (r *Registry) MustRegister(renderers ...Renderer) {
	if err := r.Register(renderers...); err != nil {
		panic(err)
	}
}

// Get resolves a format name. Misses wrap ErrRendererNotFound and list the
// formats that are available.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	renderer, ok := r.byName[name]
	r.mu.RUnlock()
	if ok {
		return renderer, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrRendererNotFound, name, strings.Join(r.Names(), ", "))
}

// Names returns the registered format names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
