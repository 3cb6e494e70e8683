package ports

import (
	"context"
	"errors"

	"github.com/aretw0/cantype/pkg/dsl"
)

// ErrSetNotFound is returned by Load when no declaration set has the
// requested name.
var ErrSetNotFound = errors.New("declaration set not found")

// DeclarationStore persists named declaration sets.
type DeclarationStore interface {
	// Save stores cfg under name, replacing any previous set.
	Save(ctx context.Context, name string, cfg *dsl.Config) error

	// Load retrieves the set stored under name.
	// Returns ErrSetNotFound if the set does not exist.
	Load(ctx context.Context, name string) (*dsl.Config, error)

	// Delete removes the set. Deleting a missing set is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of the stored sets in lexical order.
	List(ctx context.Context) ([]string, error)
}

// DeclarationSource produces one declaration set.
type DeclarationSource interface {
	Load(ctx context.Context) (*dsl.Config, error)
}
