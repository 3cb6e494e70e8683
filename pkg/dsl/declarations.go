package dsl

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/reflection"
)

// Declarations are the records built from a declaration set, bound to the
// factory they were declared on.
type Declarations struct {
	factory *cantype.Factory
	records map[string]*reflection.RecordType
}

// Factory returns the factory the records were declared on.
func (d *Declarations) Factory() *cantype.Factory { return d.factory }

// Names returns the declared record names in lexical order.
func (d *Declarations) Names() []string {
	return slices.Sorted(maps.Keys(d.records))
}

// Lookup returns the marker of a declared record.
func (d *Declarations) Lookup(name string) (*reflection.RecordType, bool) {
	rec, ok := d.records[name]
	return rec, ok
}

// Resolve returns the TypeObject of a type name under policy p. Primitive
// names give the plain variant, record names the composite type, and Any
// is returned as is.
func (d *Declarations) Resolve(name string, p cantype.Policy) (cantype.TypeObject, error) {
	if rec, ok := d.records[name]; ok {
		return d.factory.AllOf(p, rec), nil
	}
	m, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	if t, ok := m.(cantype.TypeObject); ok {
		return t, nil
	}
	return d.factory.Variant(p, m), nil
}

// Expr parses a single type expression against the declared records.
func (d *Declarations) Expr(expr string) (cantype.TypeObject, error) {
	m, err := d.parse(expr)
	if err != nil {
		return nil, err
	}
	t, err := d.factory.Normalize(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return t, nil
}
