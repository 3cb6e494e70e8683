package graph

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/aretw0/cantype/pkg/dsl"
)

// GenerateMermaid produces a Mermaid flowchart of the records declared in
// cfg and the fields that reference other records.
// It applies semantic styling:
// - Record: [Rectangle]
// - Required reference: solid arrow
// - Nullable reference (maybe, maybeConvert): dotted arrow
// Every arrow is labelled with the field name and, when given, its policy.
func GenerateMermaid(cfg *dsl.Config) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, name := range slices.Sorted(maps.Keys(cfg.Types)) {
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", sanitizeMermaidID(name), name))
	}

	for _, ref := range cfg.References() {
		label := ref.Field
		if ref.Expr.Wrapped {
			label = fmt.Sprintf("%s: %s", ref.Field, ref.Expr.Policy)
		}

		arrow := fmt.Sprintf("-- \"%s\" -->", label)
		if ref.Expr.Wrapped && ref.Expr.Policy.Nullable() {
			arrow = fmt.Sprintf("-. \"%s\" .->", label)
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(ref.From), arrow, sanitizeMermaidID(ref.To)))
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
