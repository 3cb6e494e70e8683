package dsl

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/cantype"
	"github.com/aretw0/cantype/pkg/reflection"
)

// Builder collects record declarations.
type Builder struct {
	records map[string]*RecordBuilder
}

// New creates a new declaration builder.
func New() *Builder {
	return &Builder{
		records: make(map[string]*RecordBuilder),
	}
}

// Add declares a record.
// If the record already exists, it returns the existing builder.
func (b *Builder) Add(name string) *RecordBuilder {
	if rb, ok := b.records[name]; ok {
		return rb
	}
	rb := &RecordBuilder{
		name:    name,
		fields:  make(map[string]string),
		builder: b,
	}
	b.records[name] = rb
	return rb
}

// Build declares every record on f and parses the field expressions.
// All record names are known before any expression is parsed, so records
// can reference each other regardless of declaration order.
func (b *Builder) Build(f *cantype.Factory) (*Declarations, error) {
	d := &Declarations{
		factory: f,
		records: make(map[string]*reflection.RecordType, len(b.records)),
	}
	for name := range b.records {
		if IsBuiltin(name) {
			return nil, fmt.Errorf("record %q: %w", name, ErrReservedName)
		}
		d.records[name] = reflection.NewRecordType(name, nil)
	}

	for _, name := range slices.Sorted(maps.Keys(b.records)) {
		rb := b.records[name]
		rec := d.records[name]
		for _, field := range slices.Sorted(maps.Keys(rb.fields)) {
			subtype, err := d.parse(rb.fields[field])
			if err != nil {
				return nil, fmt.Errorf("record %q field %q: %w", name, field, err)
			}
			rec.Define(field, subtype)
		}
	}

	return d, nil
}

// RecordBuilder provides a fluent API for declaring the fields of a record.
type RecordBuilder struct {
	name    string
	fields  map[string]string
	builder *Builder
}

// Field declares a field and its type expression.
func (r *RecordBuilder) Field(name, expr string) *RecordBuilder {
	r.fields[name] = expr
	return r
}

// Fields declares several fields at once.
func (r *RecordBuilder) Fields(fields map[string]string) *RecordBuilder {
	maps.Copy(r.fields, fields)
	return r
}

// Add is a shortcut to declare the next record.
func (r *RecordBuilder) Add(name string) *RecordBuilder {
	return r.builder.Add(name)
}
