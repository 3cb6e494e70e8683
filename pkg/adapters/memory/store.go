package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
)

// Store implements ports.DeclarationStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*dsl.Config
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*dsl.Config),
	}
}

// Save stores a copy of cfg.
func (s *Store) Save(ctx context.Context, name string, cfg *dsl.Config) error {
	copied := clone(cfg)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load retrieves a copy of the set, so the caller can't mutate the store.
func (s *Store) Load(ctx context.Context, name string) (*dsl.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, ok := s.data[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ports.ErrSetNotFound, name)
	}
	return clone(cfg), nil
}

// Delete removes the set.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns the stored set names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func clone(cfg *dsl.Config) *dsl.Config {
	copied := &dsl.Config{
		Production: cfg.Production,
		Types:      make(map[string]map[string]string, len(cfg.Types)),
	}
	for name, fields := range cfg.Types {
		f := make(map[string]string, len(fields))
		for k, v := range fields {
			f[k] = v
		}
		copied.Types[name] = f
	}
	return copied
}
