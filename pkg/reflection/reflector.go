package reflection

import (
	"github.com/aretw0/cantype/pkg/schema"
)

// Reflector performs membership tests, conversion, naming and construction
// for arbitrary type markers.
type Reflector interface {
	// IsMarker reports whether v can be used as a type marker.
	IsMarker(v any) bool
	// IsInstance reports whether value already is a value of marker.
	IsInstance(value, marker any) bool
	// Convert turns value into a value of marker.
	Convert(value, marker any) (any, error)
	// Name returns a human-readable name for marker.
	Name(marker any) string
	// Schema returns the field-name to subtype mapping declared by marker.
	// The boolean is false when marker declares no fields.
	Schema(marker any) (schema.Schema, bool)
	// Construct builds a new value of marker from already coerced fields.
	Construct(marker any, fields map[string]any) (any, error)
}
