package schema

import (
	"github.com/aretw0/cantype/pkg/kind"
	"github.com/getkin/kin-openapi/openapi3"
)

// Describer is implemented by types that expose their own schema.
type Describer interface {
	Schema() Schema
}

// OpenAPI exports s as an OpenAPI 3 schema. Subtypes of a map schema are
// described one level deep; nested records become titled objects.
func OpenAPI(s Schema) *openapi3.Schema {
	switch s.Type {
	case TypeMap:
		obj := openapi3.NewObjectSchema()
		for _, key := range s.KeyNames() {
			obj.WithProperty(key, property(s.Keys[key]))
		}
		return obj
	case TypeOr:
		return alternatives(s.Values)
	}
	return openapi3.NewSchema()
}

func property(sub any) *openapi3.Schema {
	if d, ok := sub.(Describer); ok {
		s := d.Schema()
		if s.Type == TypeOr {
			return alternatives(s.Values)
		}
		out := openapi3.NewObjectSchema()
		if n, ok := sub.(Namer); ok {
			out.Title = n.Name()
		}
		return out
	}
	return alternatives([]any{sub})
}

func alternatives(values []any) *openapi3.Schema {
	var (
		nullable bool
		sawBool  bool
		options  []*openapi3.Schema
	)

	for _, v := range values {
		switch t := v.(type) {
		case nil:
			nullable = true
		case bool:
			if !sawBool {
				sawBool = true
				options = append(options, openapi3.NewBoolSchema())
			}
		case kind.Kind:
			options = append(options, primitive(t))
		default:
			if v == kind.Undefined {
				nullable = true
				continue
			}
			obj := openapi3.NewObjectSchema()
			if name, ok := Describe(v).(string); ok {
				obj.Title = name
			}
			options = append(options, obj)
		}
	}

	var out *openapi3.Schema
	switch len(options) {
	case 0:
		out = openapi3.NewSchema()
	case 1:
		out = options[0]
	default:
		out = openapi3.NewOneOfSchema(options...)
	}
	if nullable {
		out.Nullable = true
	}
	return out
}

func primitive(k kind.Kind) *openapi3.Schema {
	switch k {
	case kind.Boolean:
		return openapi3.NewBoolSchema()
	case kind.Number:
		return openapi3.NewFloat64Schema()
	case kind.String:
		return openapi3.NewStringSchema()
	}
	return openapi3.NewSchema()
}
