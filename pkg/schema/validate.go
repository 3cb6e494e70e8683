package schema

import (
	"fmt"
	"slices"

	"github.com/aretw0/cantype/pkg/kind"
)

// Member is the part of a type that Validate needs.
type Member interface {
	Name() string
	IsMember(value any) bool
}

// Fields maps field names to the types their values must belong to.
type Fields map[string]Member

// Validate checks that every field of data is already a member of its type,
// without coercing anything. A missing field is accepted only when its type
// accepts undefined. Keys of data that are not in fields are ignored.
// All failures are returned together as an *AggregateError.
func Validate(fields Fields, data map[string]any) error {
	if len(fields) == 0 {
		return nil
	}

	var errs []error

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	for _, key := range keys {
		typ := fields[key]
		value, exists := data[key]
		if !exists {
			if !typ.IsMember(kind.Undefined) {
				errs = append(errs, &ValidationError{
					Key:    key,
					Reason: "required",
					Value:  nil,
				})
			}
			continue
		}

		if !typ.IsMember(value) {
			errs = append(errs, &ValidationError{
				Key:    key,
				Reason: fmt.Sprintf("%s (%s) is not of type %s", kind.Format(value), kind.Of(value), typ.Name()),
				Value:  value,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
