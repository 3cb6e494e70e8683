package cantype

import (
	"errors"
	"fmt"

	"github.com/aretw0/cantype/pkg/kind"
)

var (
	// ErrTypeMismatch matches every *TypeMismatchError.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrNotNormalizable matches every *NormalizationError.
	ErrNotNormalizable = errors.New("not a type marker")
	// ErrUnresolved is returned by a late type whose thunk did not complete.
	ErrUnresolved = errors.New("late type did not resolve")
)

// TypeMismatchError is returned by strict types for values that are not members.
type TypeMismatchError struct {
	Value    any
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s (%s) is not of type %s.", kind.Format(e.Value), kind.Of(e.Value), e.Expected)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// NormalizationError reports a plain value used where a type marker was
// required. Err is set when the value came from a late type that failed
// to resolve.
type NormalizationError struct {
	Value any
	Err   error
}

func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("late type has no marker: %v", e.Err)
	}
	return fmt.Sprintf("%s (%s) is not a type marker and cannot be normalized", kind.Format(e.Value), kind.Of(e.Value))
}

func (e *NormalizationError) Is(target error) bool { return target == ErrNotNormalizable }

func (e *NormalizationError) Unwrap() error { return e.Err }

// FieldError ties a coercion failure to the field it happened in.
type FieldError struct {
	Key string
	Err error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Key, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
