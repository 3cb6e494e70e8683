/*
Package cantype builds runtime type descriptors.

Given a type marker, a primitive kind such as Number or a Go type, it
produces a TypeObject that can tell whether a value already belongs to the
type, coerce other values into it, and describe the accepted values as a
schema.

# Policies

Every marker has four policy variants:

	check(Number)         strict: "33" fails with a *TypeMismatchError
	convert(Number)       lenient: "33" becomes 33, "foo" becomes NaN
	maybe(Number)         strict, but nil and undefined are members
	maybeConvert(Number)  lenient, nil and undefined pass through

The variants share one unqualified base type and only override what
differs. A factory returns the same TypeObject for the same marker and
policy for the whole life of the process, so types can be compared with ==.

	n := cantype.Convert(cantype.Number)
	v, _ := n.New("33") // 33.0

# Late binding

Late wraps a thunk returning a marker. The thunk runs once, on first use,
which lets declarations refer to each other:

	var Person = reflection.NewRecordType("Person", nil)
	manager := cantype.Late(func() any { return cantype.Maybe(Person) })
	Person.Define("manager", manager)

# Composite coercion

ConvertAll builds a type for a record-like marker that coerces every input
field through the field's declared subtype before the value is built:

	type Point struct {
		X float64 `mapstructure:"x"`
		Label string `mapstructure:"label"`
	}
	p, err := cantype.ConvertAll(cantype.TypeOf[Point]()).Build(map[string]any{"x": "5", "label": 7})
	// Point{X: 5, Label: "7"}

# Production mode

When CANTYPE_ENV=production, the default factory builds check as convert
and maybe as maybeConvert, so no strict test is ever performed. Use
NewFactory with WithProduction to decide explicitly.
*/
package cantype
