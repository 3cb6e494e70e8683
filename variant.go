package cantype

import (
	"fmt"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/schema"
)

// Variant returns the type of marker under policy p. marker may also be a
// TypeObject, in which case its underlying marker is used. A late type
// stays late: the policy is applied when it resolves. Any is returned as is.
//
// Variant panics with a *NormalizationError when marker is not a type
// marker. Types are declared once at startup; use Normalize to check
// arbitrary values.
func (f *Factory) Variant(p Policy, marker any) TypeObject {
	switch t := marker.(type) {
	case anyType:
		return t
	case *LateType:
		return f.lateVariant(f.policies[p], t)
	}
	return f.variant(f.policies[p], f.markerOf(marker))
}

func (f *Factory) variant(p Policy, marker any) *typeObject {
	t, created := f.variants[p].getOrCreate(marker, func() *typeObject {
		return f.newVariant(p, f.baseType(marker))
	})
	if created {
		f.logger.Debug("type object created", "type", t.name, "policy", p.String())
		emit(f.hooks.OnCreate, &TypeEvent{Policy: p.String(), Name: t.name})
	}
	return t
}

func (f *Factory) newVariant(p Policy, base *typeObject) *typeObject {
	t := &typeObject{
		base:     base,
		marker:   base.marker,
		name:     fmt.Sprintf("%s(%s)", p, base.name),
		strict:   p.Strict(),
		nullable: p.Nullable(),
	}

	if t.nullable {
		t.isMember = func(value any) bool {
			return kind.IsNil(value) || base.IsMember(value)
		}
		t.schema = func() schema.Schema {
			return schema.Nullable(base.Schema())
		}
	}

	switch {
	case t.strict:
		t.coerce = func(value any) (any, error) {
			if t.IsMember(value) {
				return value, nil
			}
			emit(f.hooks.OnMismatch, &TypeEvent{Policy: p.String(), Name: base.name, Value: value})
			return nil, &TypeMismatchError{Value: value, Expected: base.name}
		}
	case t.nullable:
		t.coerce = func(value any) (any, error) {
			if kind.IsNil(value) {
				return value, nil
			}
			return base.New(value)
		}
	}

	return t
}
