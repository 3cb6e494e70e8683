package cantype

import (
	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/schema"
)

// Base returns the unqualified type of marker: membership, default
// coercion and schema, with no policy applied.
func (f *Factory) Base(marker any) TypeObject {
	return f.baseType(f.markerOf(marker))
}

// markerOf resolves a type object back to its marker and rejects values
// that are not markers.
func (f *Factory) markerOf(v any) any {
	if l, ok := v.(*LateType); ok {
		if _, err := l.Resolve(); err != nil {
			panic(&NormalizationError{Err: err})
		}
	}
	if t, ok := v.(TypeObject); ok {
		v = t.Marker()
	}
	if !f.reflector.IsMarker(v) {
		panic(&NormalizationError{Value: v})
	}
	return v
}

func (f *Factory) baseType(marker any) *typeObject {
	t, created := f.bases.getOrCreate(marker, func() *typeObject {
		return f.newBaseType(marker)
	})
	if created {
		f.logger.Debug("type object created", "type", t.name, "policy", "base")
		emit(f.hooks.OnCreate, &TypeEvent{Policy: "base", Name: t.name})
	}
	return t
}

func (f *Factory) newBaseType(marker any) *typeObject {
	t := &typeObject{
		marker: marker,
		name:   f.reflector.Name(marker),
	}

	if p, ok := f.primitives.Lookup(marker); ok {
		t.isMember = p
	} else {
		t.isMember = func(value any) bool {
			return f.reflector.IsInstance(value, marker)
		}
	}

	t.coerce = func(value any) (any, error) {
		if t.isMember(value) {
			return value, nil
		}
		return f.reflector.Convert(value, marker)
	}
	t.schema = func() schema.Schema {
		return schema.Or(marker)
	}

	if marker == kind.Boolean {
		t.coerce = func(value any) (any, error) {
			if t.isMember(value) {
				return value, nil
			}
			if value == "false" || value == "0" {
				return false, nil
			}
			return f.reflector.Convert(value, marker)
		}
		t.schema = func() schema.Schema {
			return schema.Or(true, false)
		}
	}

	return t
}
