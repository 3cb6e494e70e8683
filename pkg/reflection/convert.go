package reflection

import (
	"math"
	"strconv"
	"strings"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/spf13/cast"
)

// ToNumber converts v to a float64. Blank strings and nil are 0; values
// that do not parse, including undefined, are NaN.
func ToNumber(v any) float64 {
	switch x := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	if v == kind.Undefined {
		return math.NaN()
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

// ToString converts v to its string form. nil is "null".
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case float64:
		if math.IsNaN(x) {
			return "NaN"
		}
	}
	if v == kind.Undefined {
		return "undefined"
	}

	s, err := cast.ToStringE(v)
	if err != nil {
		return kind.Format(v)
	}
	return s
}

// Truthy reports the boolean value of v: nil, undefined, false, 0, NaN and
// "" are false, everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	if v == kind.Undefined {
		return false
	}
	if kind.IsNumber(v) {
		f := cast.ToFloat64(v)
		return f != 0 && !math.IsNaN(f)
	}
	return true
}
