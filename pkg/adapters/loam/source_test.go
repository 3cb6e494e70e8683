package loam

import (
	"context"
	"testing"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/internal/testutils"
	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSource(t *testing.T, docs ...core.Document) *Source {
	t.Helper()

	_, repo := testutils.SetupTestRepo(t)
	testutils.SaveDocuments(t, repo, docs...)
	return New(loam.NewTypedRepository[RecordMetadata](repo))
}

func TestSource_Load(t *testing.T) {
	src := setupSource(t,
		testutils.RecordDocument("person.md", "Person", map[string]string{
			"name":    "String",
			"address": "maybeConvert(Address)",
		}, "A person with an optional address."),
		testutils.RecordDocument("Address.md", "", map[string]string{
			"street": "String",
		}, "Where a person lives."),
	)

	cfg, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{
		"Person":  {"name": "String", "address": "maybeConvert(Address)"},
		"Address": {"street": "String"},
	}, cfg.Types)

	decls, err := cfg.Declare(cantype.NewFactory())
	require.NoError(t, err)
	assert.Equal(t, []string{"Address", "Person"}, decls.Names())

	doc, err := src.Describe(context.Background(), "person")
	require.NoError(t, err)
	assert.Contains(t, doc, "A person with an optional address.")
}

func TestSource_Collision(t *testing.T) {
	src := setupSource(t,
		testutils.RecordDocument("a.md", "Same", nil, ""),
		testutils.RecordDocument("b.md", "Same", nil, ""),
	)

	_, err := src.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
	assert.Contains(t, err.Error(), "Same")
}

func TestTrimExtension(t *testing.T) {
	assert.Equal(t, "Person", trimExtension("Person.md"))
	assert.Equal(t, "Person", trimExtension("Person"))
}
