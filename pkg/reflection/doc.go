// Package reflection is the bridge between cantype and the values it
// describes. It answers the questions the type factory cannot answer by
// itself: is a value an instance of a marker, how is a value converted to a
// marker, what is a marker called, which fields does it declare and how is
// an instance built from coerced fields.
//
// Runtime implements Reflector for three families of markers:
//
//   - kind.Kind primitives (Boolean, Number, String), converted with loose
//     scripting-language rules: "33" becomes 33, "foo" becomes NaN;
//   - Go types (reflect.Type); structs are built from field maps with
//     mapstructure and time.Time accepts epoch milliseconds or RFC 3339;
//   - RecordType, a record shape declared at runtime (see package dsl),
//     whose instances are *Record values.
package reflection
