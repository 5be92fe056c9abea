package components

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-dynform/pkg/render"
	rendertemplate "github.com/goliatone/go-dynform/pkg/render/template"
)

// Renderer writes the control markup for a single field into buf.
type Renderer func(buf *bytes.Buffer, field render.FieldView, data ComponentData) error

// ComponentData carries the template engine and the class names that controls
// need when they flag validation errors.
type ComponentData struct {
	Template rendertemplate.TemplateRenderer
	// ControlID is the id attribute shared by the control and its label.
	ControlID string
	// ErrorClass is appended to the control class list when the field has an
	// error.
	ErrorClass string
}

// Descriptor bundles a renderer with the name it was registered under.
type Descriptor struct {
	Name     string
	Renderer Renderer
}

// Registry maps render controls to component renderers. Callers can override
// the built-in controls.
type Registry struct {
	mu         sync.RWMutex
	components map[string]Descriptor
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
	}
}

// Clone returns a copy that can be changed without affecting r.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := New()
	for name, descriptor := range r.components {
		cloned.components[name] = descriptor
	}
	return cloned
}

// Register associates a descriptor with the provided control. Existing entries
// are replaced.
func (r *Registry) Register(control render.Control, descriptor Descriptor) error {
	name := normalize(string(control))
	if name == "" {
		return fmt.Errorf("components: control name is required")
	}
	if descriptor.Renderer == nil {
		return fmt.Errorf("components: renderer for %q is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	descriptor.Name = name
	r.components[name] = descriptor
	return nil
}

// MustRegister mirrors Register but panics on error.
func (r *Registry) MustRegister(control render.Control, descriptor Descriptor) {
	if err := r.Register(control, descriptor); err != nil {
		panic(err)
	}
}

// Descriptor fetches the descriptor for control.
func (r *Registry) Descriptor(control render.Control) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	descriptor, ok := r.components[normalize(string(control))]
	return descriptor, ok
}

// Names returns the registered control names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
