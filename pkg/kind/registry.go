package kind

import (
	"slices"
	"sync"
)

// Predicate reports whether a value is a member of a primitive kind.
type Predicate func(value any) bool

// Registry maps primitive kinds to their membership predicates.
// It is meant to be filled at init time and read afterwards.
type Registry struct {
	mu         sync.RWMutex
	predicates map[Kind]Predicate
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		predicates: make(map[Kind]Predicate),
	}
}

// Register associates a predicate with a kind.
// If the kind is already registered, it is overwritten.
func (r *Registry) Register(k Kind, p Predicate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.predicates[k] = p
}

// Lookup returns the predicate for marker when marker is a registered Kind.
func (r *Registry) Lookup(marker any) (Predicate, bool) {
	k, ok := marker.(Kind)
	if !ok {
		return nil, false
	}

	r.mu.RLock()
	p, ok := r.predicates[k]
	r.mu.RUnlock()
	return p, ok
}

// Kinds returns the registered kinds in name order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.predicates))
	for k := range r.predicates {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Boolean, IsBoolean)
	r.Register(Number, IsNumber)
	r.Register(String, IsString)
	return r
}

// Default returns the process-wide registry holding Boolean, Number and String.
func Default() *Registry {
	return defaultRegistry
}

// Lookup searches the default registry.
func Lookup(marker any) (Predicate, bool) {
	return defaultRegistry.Lookup(marker)
}
