package cantype

import (
	"fmt"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/schema"
)

// Normalize returns v unchanged when it is a TypeObject and the check type
// of v when it is a marker. Values with only membership and coercion
// capabilities are wrapped. Anything else fails with a *NormalizationError.
func (f *Factory) Normalize(v any) (TypeObject, error) {
	if t, ok := v.(TypeObject); ok {
		return t, nil
	}
	if IsTypeObject(v) {
		return &capabilityType{impl: v}, nil
	}
	if f.reflector.IsMarker(v) {
		return f.Check(v), nil
	}
	return nil, &NormalizationError{Value: v}
}

// capabilityType adapts a value that can test membership and coerce but
// does not implement the rest of TypeObject.
type capabilityType struct {
	impl any
}

func (c *capabilityType) Name() string            { return fmt.Sprintf("%T", c.impl) }
func (c *capabilityType) IsMember(value any) bool { return c.impl.(Member).IsMember(value) }
func (c *capabilityType) New(value any) (any, error) {
	return c.impl.(Coercer).New(value)
}
func (c *capabilityType) Schema() schema.Schema { return schema.Or(c.impl) }
func (c *capabilityType) Marker() any           { return c.impl }
func (c *capabilityType) IsStrict() bool        { return false }
func (c *capabilityType) IsNullable() bool      { return c.IsMember(nil) || c.IsMember(kind.Undefined) }
