package reflection

import (
	"fmt"
	"maps"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

var timeType = reflect.TypeOf(time.Time{})

// Runtime is the default Reflector.
type Runtime struct {
	timeLayout string
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithTimeLayout sets the layout used to parse strings into time.Time (default: time.RFC3339).
func WithTimeLayout(layout string) Option {
	return func(r *Runtime) {
		r.timeLayout = layout
	}
}

// NewRuntime creates the default Reflector.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{timeLayout: time.RFC3339}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ Reflector = (*Runtime)(nil)

func (r *Runtime) IsMarker(v any) bool {
	switch m := v.(type) {
	case kind.Kind:
		_, ok := kind.Lookup(m)
		return ok
	case reflect.Type:
		return m != nil
	case *RecordType:
		return m != nil
	}
	return false
}

func (r *Runtime) IsInstance(value, marker any) bool {
	switch m := marker.(type) {
	case kind.Kind:
		p, ok := kind.Lookup(m)
		return ok && p(value)
	case reflect.Type:
		if value == nil {
			return false
		}
		vt := reflect.TypeOf(value)
		if vt == m {
			return true
		}
		return m.Kind() == reflect.Interface && vt.Implements(m)
	case *RecordType:
		rec, ok := value.(*Record)
		return ok && rec.Type == m
	}
	return false
}

func (r *Runtime) Convert(value, marker any) (any, error) {
	switch m := marker.(type) {
	case kind.Kind:
		return r.convertPrimitive(value, m)
	case reflect.Type:
		return r.convertGo(value, m)
	case *RecordType:
		if r.IsInstance(value, m) {
			return value, nil
		}
		// Field values are only known to be valid once a composite type
		// has coerced them, so records are built through Construct.
		return nil, &ConversionError{Value: value, Target: m.Name(), Reason: "records are built from coerced fields"}
	}
	return nil, &ConversionError{Value: value, Target: r.Name(marker), Reason: "not a type marker"}
}

func (r *Runtime) convertPrimitive(value any, k kind.Kind) (any, error) {
	switch k {
	case kind.Number:
		return ToNumber(value), nil
	case kind.String:
		return ToString(value), nil
	case kind.Boolean:
		return Truthy(value), nil
	}
	return nil, &ConversionError{Value: value, Target: k.String(), Reason: "unknown primitive"}
}

func (r *Runtime) convertGo(value any, t reflect.Type) (any, error) {
	if r.IsInstance(value, t) {
		return value, nil
	}

	if t == timeType {
		return r.convertTime(value)
	}

	target := t
	if target.Kind() == reflect.Pointer {
		target = target.Elem()
	}

	switch target.Kind() {
	case reflect.Struct:
		if fields, ok := value.(map[string]any); ok {
			return r.Construct(t, fields)
		}
	case reflect.String:
		return reflect.ValueOf(ToString(value)).Convert(t).Interface(), nil
	case reflect.Bool:
		return reflect.ValueOf(Truthy(value)).Convert(t).Interface(), nil
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(ToNumber(value)).Convert(t).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f := ToNumber(value)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &ConversionError{Value: value, Target: t.String(), Reason: "not a finite number"}
		}
		return reflect.ValueOf(f).Convert(t).Interface(), nil
	}

	if value != nil {
		if v := reflect.ValueOf(value); v.Type().ConvertibleTo(t) {
			return v.Convert(t).Interface(), nil
		}
	}
	return nil, &ConversionError{Value: value, Target: t.String(), Reason: "types not convertible"}
}

func (r *Runtime) convertTime(value any) (any, error) {
	switch v := value.(type) {
	case string:
		parsed, err := time.Parse(r.timeLayout, v)
		if err != nil {
			return nil, &ConversionError{Value: value, Target: timeType.String(), Reason: "invalid time", Wrapped: err}
		}
		return parsed, nil
	case *time.Time:
		if v != nil {
			return *v, nil
		}
	}
	if kind.IsNumber(value) {
		return time.UnixMilli(int64(ToNumber(value))), nil
	}
	return nil, &ConversionError{Value: value, Target: timeType.String(), Reason: "expected epoch milliseconds or a timestamp"}
}

func (r *Runtime) Name(marker any) string {
	switch m := marker.(type) {
	case kind.Kind:
		return m.String()
	case reflect.Type:
		if m.Name() != "" {
			return m.Name()
		}
		return m.String()
	case *RecordType:
		return m.Name()
	case schema.Namer:
		return m.Name()
	}
	return kind.Format(marker)
}

func (r *Runtime) Schema(marker any) (schema.Schema, bool) {
	switch m := marker.(type) {
	case *RecordType:
		return schema.Map(m.Fields()), true
	case reflect.Type:
		t := m
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct || t == timeType {
			return schema.Schema{}, false
		}
		keys := make(map[string]any, t.NumField())
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := fieldName(f)
			if name == "-" {
				continue
			}
			keys[name] = fieldMarker(f.Type)
		}
		return schema.Map(keys), true
	}
	return schema.Schema{}, false
}

// fieldName follows mapstructure: the tag name when present, the Go name otherwise.
func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("mapstructure")
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func fieldMarker(t reflect.Type) any {
	switch t.Kind() {
	case reflect.Bool:
		return kind.Boolean
	case reflect.String:
		return kind.String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return kind.Number
	}
	return t
}

func (r *Runtime) Construct(marker any, fields map[string]any) (any, error) {
	switch m := marker.(type) {
	case *RecordType:
		return &Record{Type: m, Fields: maps.Clone(fields)}, nil
	case reflect.Type:
		t := m
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return nil, &ConversionError{Value: fields, Target: m.String(), Reason: "not a struct type"}
		}

		target := reflect.New(t)
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:     target.Interface(),
			DecodeHook: mapstructure.StringToTimeHookFunc(r.timeLayout),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create decoder for %s: %w", m, err)
		}
		if err := decoder.Decode(fields); err != nil {
			return nil, err
		}

		if m.Kind() == reflect.Pointer {
			return target.Interface(), nil
		}
		return target.Elem().Interface(), nil
	}
	return nil, &ConversionError{Value: fields, Target: r.Name(marker), Reason: "cannot construct instances"}
}
