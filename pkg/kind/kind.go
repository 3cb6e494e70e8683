package kind

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// Kind is a primitive type marker.
type Kind string

const (
	Boolean Kind = "Boolean"
	Number  Kind = "Number"
	String  Kind = "String"
)

func (k Kind) String() string { return string(k) }

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that was never provided. It is distinct from nil,
// which plays the role of null.
var Undefined any = undefined{}

// IsNil reports whether v is null or undefined. Typed nil pointers, maps,
// slices, funcs, channels and interfaces count as null.
func IsNil(v any) bool {
	if v == nil || v == Undefined {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// IsNumber reports whether v holds any Go integer or floating point value.
func IsNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return true
	}
	return false
}

// IsString reports whether v is a string.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IsBoolean reports whether v is a bool.
func IsBoolean(v any) bool {
	_, ok := v.(bool)
	return ok
}

// Of returns the capitalized runtime classification of value:
// "Number", "String", "Boolean", "Function", "Null", "Undefined" or "Object".
func Of(value any) string {
	switch {
	case value == Undefined:
		return "Undefined"
	case value == nil:
		return "Null"
	case IsNumber(value):
		return Capitalize("number")
	case IsString(value):
		return Capitalize("string")
	case IsBoolean(value):
		return Capitalize("boolean")
	case reflect.TypeOf(value).Kind() == reflect.Func:
		return "Function"
	}
	return "Object"
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Format renders a value the way it appears in error messages.
func Format(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
	}
	if value == Undefined {
		return "undefined"
	}
	return fmt.Sprintf("%v", value)
}

// JSONSafe replaces values JSON cannot carry, at any depth of maps and
// slices: NaN and infinities become their Format string, undefined
// becomes null. Other values are returned unchanged.
func JSONSafe(value any) any {
	switch v := value.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Format(v)
		}
	case float32:
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return Format(float64(v))
		}
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, elem := range v {
			out[key] = JSONSafe(elem)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, elem := range v {
			out[i] = JSONSafe(elem)
		}
		return out
	}
	if value == Undefined {
		return nil
	}
	return value
}
