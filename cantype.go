package cantype

import (
	"reflect"

	"github.com/aretw0/cantype/pkg/kind"
)

// Version is the library version reported by the CLI.
const Version = "0.3.0"

// Primitive markers.
const (
	Boolean = kind.Boolean
	Number  = kind.Number
	String  = kind.String
)

// TypeOf returns the marker of the Go type T.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Check returns the strict, non-nullable type of marker from the default factory.
func Check(marker any) TypeObject { return Default().Check(marker) }

// Convert returns the lenient, non-nullable type of marker from the default factory.
func Convert(marker any) TypeObject { return Default().Convert(marker) }

// Maybe returns the strict, nullable type of marker from the default factory.
func Maybe(marker any) TypeObject { return Default().Maybe(marker) }

// MaybeConvert returns the lenient, nullable type of marker from the default factory.
func MaybeConvert(marker any) TypeObject { return Default().MaybeConvert(marker) }

// Late defers resolution of a marker to first use. See Factory.Late.
func Late(thunk func() any) *LateType { return Default().Late(thunk) }

// Normalize turns a marker or type object into a TypeObject. See Factory.Normalize.
func Normalize(v any) (TypeObject, error) { return Default().Normalize(v) }

// All returns the composite type of marker with check fields.
func All(marker any) *Composite { return Default().All(marker) }

// ConvertAll returns the composite type of marker with convert fields.
func ConvertAll(marker any) *Composite { return Default().ConvertAll(marker) }

// AllOf returns the composite type of marker with fields of policy p.
func AllOf(p Policy, marker any) *Composite { return Default().AllOf(p, marker) }
