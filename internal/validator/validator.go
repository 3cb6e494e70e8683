package validator

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/cantype/pkg/dsl"
)

// ValidateConfig checks every declaration of cfg and reports all problems
// at once: reserved record names, malformed expressions, unknown type names
// and records that can only be satisfied by infinite values.
func ValidateConfig(cfg *dsl.Config) error {
	var errors []string

	for _, name := range slices.Sorted(maps.Keys(cfg.Types)) {
		if dsl.IsBuiltin(name) {
			errors = append(errors, fmt.Sprintf("Record '%s' uses a reserved name", name))
		}

		fields := cfg.Types[name]
		for _, field := range slices.Sorted(maps.Keys(fields)) {
			e, err := dsl.ParseExpr(fields[field])
			if err != nil {
				errors = append(errors, fmt.Sprintf("%s.%s: %v", name, field, err))
				continue
			}
			if _, declared := cfg.Types[e.Name]; !declared && !dsl.IsBuiltin(e.Name) {
				errors = append(errors, fmt.Sprintf("%s.%s: unknown type '%s'", name, field, e.Name))
			}
		}
	}

	for _, cycle := range requiredCycles(cfg) {
		errors = append(errors, fmt.Sprintf("Records require themselves: %s", strings.Join(cycle, " -> ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// requiredCycles finds cycles of references through non-nullable fields.
// Each cycle is reported once, starting from its smallest record name.
func requiredCycles(cfg *dsl.Config) [][]string {
	edges := make(map[string][]string)
	for _, ref := range cfg.References() {
		if ref.Expr.Wrapped && ref.Expr.Policy.Nullable() {
			continue
		}
		edges[ref.From] = append(edges[ref.From], ref.To)
	}

	var cycles [][]string
	seen := make(map[string]bool)
	for _, start := range slices.Sorted(maps.Keys(edges)) {
		// Crawl from start, only through records not yet used as a start.
		type step struct {
			name string
			path []string
		}
		queue := []step{{name: start, path: []string{start}}}
		visited := map[string]bool{}

		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]

			for _, next := range edges[current.name] {
				if next == start {
					cycles = append(cycles, append(slices.Clone(current.path), start))
					continue
				}
				if seen[next] || visited[next] {
					continue
				}
				visited[next] = true
				queue = append(queue, step{name: next, path: append(slices.Clone(current.path), next)})
			}
		}
		seen[start] = true
	}
	return cycles
}
