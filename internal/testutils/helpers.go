package testutils

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/loam/pkg/core"
	"github.com/stretchr/testify/require"
)

// SetupTestRepo creates a temporary directory and initializes a Loam repository in it.
// It returns the absolute path to the temp dir and the initialized repository.
// It fails the test immediately on error.
func SetupTestRepo(t *testing.T, opts ...loam.Option) (string, core.Repository) {
	t.Helper()

	tmpDir := t.TempDir()

	absPath, err := filepath.Abs(tmpDir)
	require.NoError(t, err, "Failed to get absolute path for temp dir")

	if len(opts) == 0 {
		opts = []loam.Option{loam.WithVersioning(false)}
	}
	repo, err := loam.Init(absPath, opts...)
	require.NoError(t, err, "Failed to init loam repo")

	return absPath, repo
}

// RecordDocument renders a record document with the given frontmatter name,
// fields and body. An empty name leaves the name to the file.
func RecordDocument(id, name string, fields map[string]string, body string) core.Document {
	var b strings.Builder
	b.WriteString("---\n")
	if name != "" {
		fmt.Fprintf(&b, "name: %s\n", name)
	}
	if len(fields) > 0 {
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		b.WriteString("fields:\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "  %s: %s\n", k, fields[k])
		}
	}
	b.WriteString("---\n")
	b.WriteString(body)

	return core.Document{ID: id, Content: b.String()}
}

// SaveDocuments saves docs into repo.
func SaveDocuments(t *testing.T, repo core.Repository, docs ...core.Document) {
	t.Helper()

	ctx := context.Background()
	for _, doc := range docs {
		require.NoError(t, repo.Save(ctx, doc), "Failed to save %s", doc.ID)
	}
}
