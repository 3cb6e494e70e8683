// Package schema describes the values a type accepts.
//
// A Schema is either an enumeration of acceptable value shapes:
//
//	schema.Or(kind.Number)              // {type: Or, values: [Number]}
//	schema.Nullable(schema.Or(kind.Number))
//	                                    // {type: Or, values: [Number, null, undefined]}
//
// or a flat mapping of field names to subtypes, as exposed by record-like
// markers:
//
//	schema.Map(map[string]any{"a": kind.Number, "b": kind.String})
//
// Schemas render to JSON and YAML with markers replaced by their names, and
// can be exported as OpenAPI 3 schemas. Values of a map schema can be checked
// against a set of fields with Validate.
//
// The package never walks schemas recursively: a map schema points at its
// subtypes, it does not inline them.
package schema
