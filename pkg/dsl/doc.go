/*
Package dsl declares record types from text, either through a fluent builder
or from a YAML file, and resolves type names to cantype TypeObjects.

Field types are written as expressions:

	Number | String | Boolean | Any   primitive types
	Address                           a declared record
	maybe(Address)                    a policy applied to an expression

Records may refer to each other in any order, including cyclically. A record
wrapped in a policy becomes a composite type whose fields are coerced too,
and is resolved lazily so that the records it mentions can be declared
after it.

Example file:

	production: false
	types:
	  Person:
	    name: String
	    age: convert(Number)
	    address: maybeConvert(Address)
	  Address:
	    street: String
	    owner: maybe(Person)

Example usage:

	cfg, err := dsl.LoadFile("types.yaml")
	if err != nil {
		return err
	}
	decls, err := cfg.Declare(cantype.NewFactory())
	if err != nil {
		return err
	}
	person, err := decls.Resolve("Person", cantype.PolicyConvert)
*/
package dsl
