package cantype

import "github.com/aretw0/cantype/pkg/schema"

// Any accepts every value and returns it unchanged.
var Any TypeObject = anyType{}

type anyType struct{}

func (anyType) Name() string               { return "Any" }
func (anyType) IsMember(any) bool          { return true }
func (anyType) New(value any) (any, error) { return value, nil }
func (anyType) Schema() schema.Schema      { return schema.Any() }
func (anyType) Marker() any                { return nil }
func (anyType) IsStrict() bool             { return false }
func (anyType) IsNullable() bool           { return true }
