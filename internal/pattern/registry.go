package pattern

import (
	"fmt"
	"sort"
)

// Factory constructs a pattern from options.
type Factory func(opts Options) (Pattern, error)

type entry struct {
	factory     Factory
	description string
}

// Registry maps pattern names to constructors.
type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name, description string, f Factory) {
	if name == "" || f == nil {
		return
	}
	r.entries[name] = entry{factory: f, description: description}
}

// New constructs the named pattern.
func (r *Registry) New(name string, opts Options) (Pattern, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPattern, name)
	}
	return e.factory(opts)
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Describe returns the one-line description of name.
func (r *Registry) Describe(name string) string {
	return r.entries[name].description
}

// Names returns registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Neighbor returns the name offset steps away from name in sorted order,
// wrapping around.
func (r *Registry) Neighbor(name string, offset int) string {
	names := r.Names()
	if len(names) == 0 {
		return ""
	}
	idx := sort.SearchStrings(names, name)
	if idx >= len(names) || names[idx] != name {
		idx = 0
		if offset > 0 {
			offset--
		}
	}
	n := len(names)
	return names[((idx+offset)%n+n)%n]
}
