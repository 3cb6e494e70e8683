package schema

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/aretw0/cantype/pkg/kind"
)

// Namer is implemented by markers and types that carry a display name.
type Namer interface {
	Name() string
}

// Describe renders a schema value for serialization: null stays nil,
// undefined becomes "undefined", booleans stay booleans and every marker
// is replaced by its name.
func Describe(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		return v
	case kind.Kind:
		return v.String()
	case reflect.Type:
		return v.String()
	case Namer:
		return v.Name()
	case fmt.Stringer:
		return v.String()
	}
	return fmt.Sprintf("%v", value)
}

type wireSchema struct {
	Type   string         `json:"type" yaml:"type"`
	Values []any          `json:"values,omitempty" yaml:"values,omitempty"`
	Keys   map[string]any `json:"keys,omitempty" yaml:"keys,omitempty"`
}

func (s Schema) wire() wireSchema {
	w := wireSchema{Type: s.Type}
	if s.Values != nil {
		w.Values = make([]any, len(s.Values))
		for i, v := range s.Values {
			w.Values[i] = Describe(v)
		}
	}
	if s.Keys != nil {
		w.Keys = make(map[string]any, len(s.Keys))
		for key, sub := range s.Keys {
			w.Keys[key] = Describe(sub)
		}
	}
	return w
}

// MarshalJSON serializes the schema with markers replaced by their names.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.Type == "" {
		return []byte("null"), nil
	}
	return json.Marshal(s.wire())
}

// MarshalYAML serializes the schema with markers replaced by their names.
func (s Schema) MarshalYAML() (any, error) {
	if s.Type == "" {
		return nil, nil
	}
	return s.wire(), nil
}
