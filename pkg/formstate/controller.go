package formstate

import (
	"sort"
	"sync"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Listener receives a snapshot of the values after every change.
type Listener func(model.Values)

// Controller tracks values and errors for a single form instance. It is safe
// for concurrent use.
type Controller struct {
	mu        sync.RWMutex
	values    model.Values
	errors    map[string]string
	listeners map[int]Listener
	nextID    int
}

// New seeds a Controller with defaults. Every field name in fields gets a key
// so hidden fields stay registered; names without a default start as "".
func New(fields *model.FieldList, defaults model.Values) *Controller {
	c := &Controller{
		values:    defaults.Clone(),
		errors:    make(map[string]string),
		listeners: make(map[int]Listener),
	}
	if c.values == nil {
		c.values = model.Values{}
	}
	c.register(fields)
	return c
}

// Register adds keys for field names the controller has not seen yet.
// Existing values are kept.
func (c *Controller) Register(fields *model.FieldList) {
	c.mu.Lock()
	c.register(fields)
	c.mu.Unlock()
}

func (c *Controller) register(fields *model.FieldList) {
	for _, name := range fields.Names() {
		if _, ok := c.values[name]; !ok {
			c.values[name] = ""
		}
	}
}

// Values returns a copy of every tracked value.
func (c *Controller) Values() model.Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values.Clone()
}

// Value returns the value stored under name.
func (c *Controller) Value(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[name]
	return v, ok
}

// SetValue stores a single value, clears the error recorded for that field and
// notifies listeners.
func (c *Controller) SetValue(name string, value any) {
	c.mu.Lock()
	c.values[name] = value
	delete(c.errors, name)
	snapshot := c.values.Clone()
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, snapshot)
}

// SetValues merges values into the tracked set with a single notification.
func (c *Controller) SetValues(values model.Values) {
	if len(values) == 0 {
		return
	}
	c.mu.Lock()
	for name, value := range values {
		c.values[name] = value
		delete(c.errors, name)
	}
	snapshot := c.values.Clone()
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, snapshot)
}

// Reset replaces all values and clears every error.
func (c *Controller) Reset(fields *model.FieldList, values model.Values) {
	c.mu.Lock()
	c.values = values.Clone()
	if c.values == nil {
		c.values = model.Values{}
	}
	c.register(fields)
	c.errors = make(map[string]string)
	snapshot := c.values.Clone()
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, snapshot)
}

// Errors returns a copy of the per-field errors.
func (c *Controller) Errors() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.errors))
	for name, msg := range c.errors {
		out[name] = msg
	}
	return out
}

// Error returns the message recorded for name, if any.
func (c *Controller) Error(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.errors[name]
}

// SetErrors replaces the recorded errors.
func (c *Controller) SetErrors(errs map[string]string) {
	c.mu.Lock()
	c.errors = make(map[string]string, len(errs))
	for name, msg := range errs {
		c.errors[name] = msg
	}
	c.mu.Unlock()
}

// ClearErrors drops every recorded error.
func (c *Controller) ClearErrors() {
	c.SetErrors(nil)
}

// Subscribe registers fn for change notifications. The returned function
// removes it again and is safe to call more than once.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// snapshotListeners must be called with c.mu held. Listeners run in
// subscription order.
func (c *Controller) snapshotListeners() []Listener {
	if len(c.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(c.listeners))
	for id := range c.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.listeners[id])
	}
	return out
}

func notify(listeners []Listener, values model.Values) {
	for _, fn := range listeners {
		fn(values.Clone())
	}
}
