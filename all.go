package cantype

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/cantype/pkg/schema"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Composite is the type of a record-like marker whose fields are coerced
// one by one through their declared subtypes before the value is built.
type Composite struct {
	TypeObject

	factory *Factory
	policy  Policy
	fields  map[string]TypeObject
	schema  schema.Schema
}

// AllOf returns the composite type of marker, where every field subtype
// declared by marker is turned into a TypeObject with policy p. Subtypes
// that already are type objects are kept as declared. Subtypes with fields
// of their own become late composites, so nested values are coerced field
// by field too and cyclic records stay lazy.
func (f *Factory) AllOf(p Policy, marker any) *Composite {
	p = f.policies[p]
	m := f.markerOf(marker)
	c, created := f.composites[p].getOrCreate(m, func() *Composite {
		return f.newComposite(p, m)
	})
	if created {
		f.logger.Debug("composite type created", "type", c.Name(), "fields", len(c.fields))
	}
	return c
}

// All returns the composite type of marker with check fields.
func (f *Factory) All(marker any) *Composite { return f.AllOf(PolicyCheck, marker) }

// ConvertAll returns the composite type of marker with convert fields.
func (f *Factory) ConvertAll(marker any) *Composite { return f.AllOf(PolicyConvert, marker) }

func (f *Factory) newComposite(p Policy, marker any) *Composite {
	c := &Composite{
		TypeObject: f.variant(p, marker),
		factory:    f,
		policy:     p,
		fields:     make(map[string]TypeObject),
	}

	declared, ok := f.reflector.Schema(marker)
	if !ok {
		declared = schema.Map(nil)
	}
	c.schema = declared.RewriteKeys(func(key string, subtype any) any {
		t, isType := subtype.(TypeObject)
		switch {
		case isType:
		case f.hasFields(subtype):
			t = f.Late(func() any { return f.AllOf(p, subtype) })
		default:
			t = f.Variant(p, subtype)
		}
		c.fields[key] = t
		return t
	})

	return c
}

func (f *Factory) hasFields(marker any) bool {
	if !f.reflector.IsMarker(marker) {
		return false
	}
	_, ok := f.reflector.Schema(marker)
	return ok
}

func (c *Composite) Name() string {
	return fmt.Sprintf("all(%s)", c.TypeObject.Name())
}

// Schema returns the field mapping, with every subtype replaced by its TypeObject.
func (c *Composite) Schema() schema.Schema {
	return c.schema.RewriteKeys(func(_ string, t any) any { return t })
}

// Policy returns the policy applied to raw field markers.
func (c *Composite) Policy() Policy { return c.policy }

// Field returns the type of a declared field.
func (c *Composite) Field(key string) (TypeObject, bool) {
	t, ok := c.fields[key]
	return t, ok
}

// Fields returns the declared field names in lexical order.
func (c *Composite) Fields() []string {
	return slices.Sorted(maps.Keys(c.fields))
}

// New builds field maps through Build and hands other values to the
// underlying policy type.
func (c *Composite) New(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		return c.Build(v)
	case *orderedmap.OrderedMap[string, any]:
		return c.BuildOrdered(v)
	}
	return c.TypeObject.New(value)
}

// Build coerces every known field of values and constructs an instance of
// the marker from the result. Unknown keys are dropped. Fields are visited
// in lexical key order and the first failure is returned as a *FieldError.
func (c *Composite) Build(values map[string]any) (any, error) {
	coerced := make(map[string]any, len(values))
	for _, key := range slices.Sorted(maps.Keys(values)) {
		if err := c.coerceField(coerced, key, values[key]); err != nil {
			return nil, err
		}
	}
	return c.construct(coerced)
}

// BuildOrdered is Build visiting fields in the insertion order of values.
func (c *Composite) BuildOrdered(values *orderedmap.OrderedMap[string, any]) (any, error) {
	coerced := make(map[string]any, values.Len())
	for pair := values.Oldest(); pair != nil; pair = pair.Next() {
		if err := c.coerceField(coerced, pair.Key, pair.Value); err != nil {
			return nil, err
		}
	}
	return c.construct(coerced)
}

func (c *Composite) coerceField(out map[string]any, key string, value any) error {
	t, ok := c.fields[key]
	if !ok {
		return nil
	}
	v, err := t.New(value)
	if err != nil {
		return &FieldError{Key: key, Err: err}
	}
	out[key] = v
	return nil
}

func (c *Composite) construct(fields map[string]any) (any, error) {
	return c.factory.reflector.Construct(c.Marker(), fields)
}

// Validate checks, without coercing, that every declared field of data is
// already a member of its type. Failures are aggregated.
func (c *Composite) Validate(data map[string]any) error {
	fields := make(schema.Fields, len(c.fields))
	for key, t := range c.fields {
		fields[key] = t
	}
	return schema.Validate(fields, data)
}
