// Package kind holds the primitive kinds understood by cantype (Boolean,
// Number and String) together with the registry of membership predicates
// used to recognize values of those kinds at runtime.
//
// It also classifies arbitrary values for error reporting (see Of) and
// defines the Undefined sentinel that stands in for a missing value.
package kind
