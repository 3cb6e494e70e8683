package cantype

import (
	"github.com/aretw0/cantype/pkg/schema"
)

// TypeObject describes a type under a policy: which values already belong to
// it, how other values are coerced, and what its schema and name are.
type TypeObject interface {
	// Name returns a label such as "check(Number)".
	Name() string
	// IsMember reports whether value already satisfies the type.
	IsMember(value any) bool
	// New returns value if it is a member, or a coerced value.
	// Strict types fail with a *TypeMismatchError instead of coercing.
	New(value any) (any, error)
	// Schema describes the acceptable values.
	Schema() schema.Schema
	// Marker returns the underlying type marker.
	Marker() any
	IsStrict() bool
	IsNullable() bool
}

// Member is the membership capability of a type.
type Member interface {
	IsMember(value any) bool
}

// Coercer is the coercion capability of a type.
type Coercer interface {
	New(value any) (any, error)
}

// IsTypeObject reports whether candidate can both test membership and coerce.
func IsTypeObject(candidate any) bool {
	_, member := candidate.(Member)
	_, coercer := candidate.(Coercer)
	return member && coercer
}

// typeObject is both the base descriptor of a marker and its policy
// variants. A variant has a base and only sets the operations it overrides;
// the others fall through to the base.
type typeObject struct {
	base     *typeObject
	marker   any
	name     string
	strict   bool
	nullable bool

	isMember func(value any) bool
	coerce   func(value any) (any, error)
	schema   func() schema.Schema
}

var _ TypeObject = (*typeObject)(nil)

func (t *typeObject) Name() string     { return t.name }
func (t *typeObject) Marker() any      { return t.marker }
func (t *typeObject) IsStrict() bool   { return t.strict }
func (t *typeObject) IsNullable() bool { return t.nullable }
func (t *typeObject) String() string   { return t.name }

func (t *typeObject) IsMember(value any) bool {
	if t.isMember != nil {
		return t.isMember(value)
	}
	return t.base.IsMember(value)
}

func (t *typeObject) New(value any) (any, error) {
	if t.coerce != nil {
		return t.coerce(value)
	}
	return t.base.New(value)
}

func (t *typeObject) Schema() schema.Schema {
	if t.schema != nil {
		return t.schema()
	}
	return t.base.Schema()
}

// Base returns the unqualified descriptor this one was derived from.
func (t *typeObject) Base() TypeObject {
	if t.base == nil {
		return t
	}
	return t.base
}
