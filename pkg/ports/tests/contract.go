package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
)

// DeclarationStoreContractTest is a reusable test suite that verifies if an adapter complies with ports.DeclarationStore.
// The store must be empty.
func DeclarationStoreContractTest(t *testing.T, store ports.DeclarationStore) {
	t.Helper()
	ctx := context.Background()

	cfg := &dsl.Config{
		Production: true,
		Types: map[string]map[string]string{
			"Point": {"x": "Number", "y": "maybe(Number)"},
		},
	}

	// 1. Load (NotFound)
	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		if !errors.Is(err, ports.ErrSetNotFound) {
			t.Fatalf("expected ErrSetNotFound, got %v", err)
		}
	})

	// 2. Save and Load
	t.Run("SaveLoad", func(t *testing.T) {
		if err := store.Save(ctx, "geo", cfg); err != nil {
			t.Fatalf("unexpected error saving: %v", err)
		}
		got, err := store.Load(ctx, "geo")
		if err != nil {
			t.Fatalf("unexpected error loading: %v", err)
		}
		if !got.Production {
			t.Error("production flag was lost")
		}
		if got.Types["Point"]["y"] != "maybe(Number)" {
			t.Errorf("field mismatch, got %q", got.Types["Point"]["y"])
		}
	})

	// 3. Saved sets are isolated from later changes to the caller's value
	t.Run("Isolation", func(t *testing.T) {
		local := &dsl.Config{Types: map[string]map[string]string{"A": {"v": "String"}}}
		if err := store.Save(ctx, "iso", local); err != nil {
			t.Fatalf("unexpected error saving: %v", err)
		}
		local.Types["A"]["v"] = "Number"

		got, err := store.Load(ctx, "iso")
		if err != nil {
			t.Fatalf("unexpected error loading: %v", err)
		}
		if got.Types["A"]["v"] != "String" {
			t.Errorf("stored set changed with the caller's value: %q", got.Types["A"]["v"])
		}
	})

	// 4. List
	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing: %v", err)
		}
		if len(names) != 2 || names[0] != "geo" || names[1] != "iso" {
			t.Errorf("expected [geo iso], got %v", names)
		}
	})

	// 5. Delete
	t.Run("Delete", func(t *testing.T) {
		if err := store.Delete(ctx, "iso"); err != nil {
			t.Fatalf("unexpected error deleting: %v", err)
		}
		if err := store.Delete(ctx, "iso"); err != nil {
			t.Fatalf("deleting a missing set failed: %v", err)
		}
		if _, err := store.Load(ctx, "iso"); !errors.Is(err, ports.ErrSetNotFound) {
			t.Errorf("expected ErrSetNotFound after delete, got %v", err)
		}
		names, err := store.List(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing: %v", err)
		}
		if len(names) != 1 || names[0] != "geo" {
			t.Errorf("expected [geo], got %v", names)
		}
	})
}
