package schema

import (
	"maps"
	"slices"

	"github.com/aretw0/cantype/pkg/kind"
)

const (
	TypeOr  = "Or"
	TypeMap = "map"
	TypeAny = "Any"
)

// Schema is the externally visible description of acceptable values.
// Values is set for TypeOr schemas, Keys for TypeMap schemas.
type Schema struct {
	Type   string
	Values []any
	Keys   map[string]any
}

// Or builds an enumeration of acceptable values.
func Or(values ...any) Schema {
	return Schema{Type: TypeOr, Values: slices.Clone(values)}
}

// Map builds a field-name to subtype schema.
func Map(keys map[string]any) Schema {
	return Schema{Type: TypeMap, Keys: maps.Clone(keys)}
}

// Any is the schema of a type accepting every value.
func Any() Schema {
	return Schema{Type: TypeAny}
}

// Extend returns a copy of s with values appended.
func (s Schema) Extend(values ...any) Schema {
	out := Schema{Type: s.Type, Keys: maps.Clone(s.Keys)}
	out.Values = make([]any, 0, len(s.Values)+len(values))
	out.Values = append(out.Values, s.Values...)
	out.Values = append(out.Values, values...)
	return out
}

// Nullable appends null and undefined to the values of s.
func Nullable(s Schema) Schema {
	return s.Extend(nil, kind.Undefined)
}

// RewriteKeys returns a copy of s where every subtype is replaced by fn(key, subtype).
func (s Schema) RewriteKeys(fn func(key string, subtype any) any) Schema {
	out := Schema{Type: s.Type, Values: slices.Clone(s.Values)}
	if s.Keys == nil {
		return out
	}
	out.Keys = make(map[string]any, len(s.Keys))
	for key, sub := range s.Keys {
		out.Keys[key] = fn(key, sub)
	}
	return out
}

// KeyNames returns the keys of a map schema in lexical order.
func (s Schema) KeyNames() []string {
	return slices.Sorted(maps.Keys(s.Keys))
}

// IsNullable reports whether null is one of the accepted values.
func (s Schema) IsNullable() bool {
	for _, v := range s.Values {
		if v == nil {
			return true
		}
	}
	return false
}
