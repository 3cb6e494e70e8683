package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned when a declaration set does not exist.
var ErrNotFound = ports.ErrSetNotFound

var _ ports.DeclarationStore = (*Store)(nil)

// Store keeps named declaration sets in Redis as YAML documents, so that
// several servers can share the same types.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration of saved sets.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for declaration sets.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "cantype:decl:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save stores cfg under name.
func (s *Store) Save(ctx context.Context, name string, cfg *dsl.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal declarations: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(name), data, s.ttl)
	// All members share score 0, so the index is ordered by name.
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: 0, Member: name})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the declaration set stored under name.
func (s *Store) Load(ctx context.Context, name string) (*dsl.Config, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}
	return dsl.Parse(val)
}

// Delete removes a declaration set.
func (s *Store) Delete(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// List returns the names of the stored sets in lexical order. Sets whose
// key expired are dropped from the index.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list declaration sets: %w", err)
	}

	live := names[:0]
	for _, name := range names {
		n, err := s.client.Exists(ctx, s.key(name)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to check declaration set: %w", err)
		}
		if n == 0 {
			s.client.ZRem(ctx, s.indexKey(), name)
			continue
		}
		live = append(live, name)
	}
	return live, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
