package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/cantype/pkg/dsl"
	"github.com/aretw0/cantype/pkg/ports"
	"github.com/aretw0/loam"
)

// RecordMetadata is the frontmatter of a record document. The body of the
// document is free-form documentation.
type RecordMetadata struct {
	// Name defaults to the document file name without extension.
	Name   string            `json:"name" mapstructure:"name"`
	Fields map[string]string `json:"fields" mapstructure:"fields"`
}

var _ ports.DeclarationSource = (*Source)(nil)

// Source reads record declarations from a Loam repository, one document
// per record.
type Source struct {
	Repo *loam.TypedRepository[RecordMetadata]
}

// New creates a new Loam source.
func New(repo *loam.TypedRepository[RecordMetadata]) *Source {
	return &Source{
		Repo: repo,
	}
}

// Open opens dir as a read-only Loam repository.
func Open(dir string) (*Source, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open loam repository: %w", err)
	}
	return New(loam.NewTypedRepository[RecordMetadata](repo)), nil
}

// Load reads every document as a record declaration.
func (s *Source) Load(ctx context.Context) (*dsl.Config, error) {
	docs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	cfg := &dsl.Config{Types: make(map[string]map[string]string, len(docs))}
	seen := make(map[string]string)

	for _, doc := range docs {
		name := doc.Data.Name
		if name == "" {
			name = trimExtension(filepath.Base(doc.ID))
		}

		// Collision Detection
		if existingPath, ok := seen[name]; ok {
			return nil, fmt.Errorf("collision detected: record '%s' is defined in both '%s' and '%s'", name, existingPath, doc.ID)
		}
		seen[name] = doc.ID

		fields := make(map[string]string, len(doc.Data.Fields))
		for field, expr := range doc.Data.Fields {
			fields[field] = expr
		}
		cfg.Types[name] = fields
	}

	return cfg, nil
}

// Describe returns the documentation body of a record document.
func (s *Source) Describe(ctx context.Context, id string) (string, error) {
	doc, err := s.Repo.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("loam get failed for %s: %w", id, err)
	}
	return strings.TrimSpace(doc.Content), nil
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
