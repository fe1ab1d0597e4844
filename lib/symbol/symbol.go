// Package symbol provides the identifier registry that uniqued strings refer
// back to. Interning policy — which strings get uniqued at all — stays with
// callers; the registry only assigns and resolves identifiers.
package symbol

// ID identifies an interned name. The zero value is never assigned.
type ID uint32

// Invalid is the unassigned identifier.
const Invalid ID = 0

// Valid reports whether id refers to a registry entry.
func (id ID) Valid() bool { return id != Invalid }

// Registry assigns dense IDs to names with reverse lookup. The engine runs a
// single mutator thread, so the registry is unsynchronized.
type Registry struct {
	ids   map[string]ID
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[string]ID),
		// Index 0 is reserved so that Invalid never resolves.
		names: make([]string, 1),
	}
}

// Intern returns the ID for name, assigning one on first sight.
func (r *Registry) Intern(name string) ID {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := ID(len(r.names))
	r.ids[name] = id
	r.names = append(r.names, name)
	return id
}

// Name resolves an ID back to its name.
func (r *Registry) Name(id ID) (string, bool) {
	if id == Invalid || int(id) >= len(r.names) {
		return "", false
	}
	return r.names[id], true
}

// Len returns the number of interned names.
func (r *Registry) Len() int {
	return len(r.names) - 1
}
