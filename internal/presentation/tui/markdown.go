package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/schema"
)

// SchemaMarkdown documents typ as markdown: a table of fields for record
// types, the list of accepted values otherwise.
func SchemaMarkdown(typ cantype.TypeObject) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", typ.Name())

	flags := []string{"lenient"}
	if typ.IsStrict() {
		flags[0] = "strict"
	}
	if typ.IsNullable() {
		flags = append(flags, "nullable")
	}
	fmt.Fprintf(&sb, "_%s_\n\n", strings.Join(flags, ", "))

	s := typ.Schema()
	switch s.Type {
	case schema.TypeMap:
		sb.WriteString("| Field | Type | Nullable |\n")
		sb.WriteString("|---|---|---|\n")
		for _, key := range s.KeyNames() {
			sub := s.Keys[key]
			name, nullable := describeField(sub)
			fmt.Fprintf(&sb, "| %s | `%s` | %s |\n", key, name, yesNo(nullable))
		}
	case schema.TypeOr:
		sb.WriteString("Accepted values:\n\n")
		for _, v := range s.Values {
			fmt.Fprintf(&sb, "- `%v`\n", describeValue(v))
		}
	default:
		sb.WriteString("Accepts any value.\n")
	}

	return sb.String()
}

func describeField(sub any) (string, bool) {
	if t, ok := sub.(cantype.TypeObject); ok {
		return t.Name(), t.IsNullable()
	}
	return fmt.Sprint(schema.Describe(sub)), false
}

func describeValue(v any) any {
	if v == nil {
		return "null"
	}
	return schema.Describe(v)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
