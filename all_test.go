package cantype

import (
	"errors"
	"testing"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/reflection"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type point struct {
	A float64 `mapstructure:"a"`
	B string  `mapstructure:"b"`
}

func TestConvertAll_CoercesFields(t *testing.T) {
	f := NewFactory()

	got, err := f.ConvertAll(TypeOf[point]()).Build(map[string]any{"a": "5", "b": 7})
	require.NoError(t, err)
	assert.Equal(t, point{A: 5, B: "7"}, got)
}

func TestConvertAll_DropsUnknownKeys(t *testing.T) {
	f := NewFactory()
	person := reflection.NewRecordType("Person", map[string]any{"name": kind.String})

	got, err := f.ConvertAll(person).Build(map[string]any{"name": 1, "nickname": "x"})
	require.NoError(t, err)

	rec := got.(*reflection.Record)
	assert.Equal(t, map[string]any{"name": "1"}, rec.Fields)
}

func TestAll_StrictFieldsFail(t *testing.T) {
	f := NewFactory()

	_, err := f.All(TypeOf[point]()).Build(map[string]any{"a": "5", "b": "x"})
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "a", fieldErr.Key)

	var mismatch *TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "5", mismatch.Value)
	assert.Equal(t, `field "a": 5 (String) is not of type Number.`, err.Error())

	got, err := f.All(TypeOf[point]()).Build(map[string]any{"a": 5, "b": "x"})
	require.NoError(t, err)
	assert.Equal(t, point{A: 5, B: "x"}, got)
}

func TestAll_FirstErrorFollowsInputOrder(t *testing.T) {
	f := NewFactory()
	all := f.All(TypeOf[point]())

	values := orderedmap.New[string, any]()
	values.Set("b", 7)
	values.Set("a", "5")

	_, err := all.BuildOrdered(values)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "b", fieldErr.Key, "ordered input reports the first inserted failure")

	_, err = all.Build(map[string]any{"b": 7, "a": "5"})
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "a", fieldErr.Key, "plain maps are visited in key order")

	_, err = all.New(values)
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "b", fieldErr.Key)
}

func TestAll_SchemaPointsAtTypeObjects(t *testing.T) {
	f := NewFactory()
	c := f.ConvertAll(TypeOf[point]())

	s := c.Schema()
	assert.Equal(t, schema.TypeMap, s.Type)
	assert.Same(t, f.Convert(Number), s.Keys["a"])
	assert.Same(t, f.Convert(String), s.Keys["b"])
	assert.Equal(t, []string{"a", "b"}, c.Fields())

	field, ok := c.Field("a")
	require.True(t, ok)
	assert.Same(t, f.Convert(Number), field)
	_, ok = c.Field("zzz")
	assert.False(t, ok)

	assert.Equal(t, "all(convert(point))", c.Name())
	assert.Equal(t, PolicyConvert, c.Policy())
	assert.Same(t, f.All(TypeOf[point]()), f.All(TypeOf[point]()))
	assert.NotSame(t, f.All(TypeOf[point]()), c)
}

func TestAll_KeepsDeclaredTypeObjects(t *testing.T) {
	f := NewFactory()
	late := f.Late(func() any { return Number })
	rec := reflection.NewRecordType("R", map[string]any{
		"late":  late,
		"maybe": f.Maybe(String),
		"raw":   Boolean,
	})

	c := f.ConvertAll(rec)
	got, _ := c.Field("late")
	assert.Same(t, late, got)
	assert.False(t, late.IsResolved(), "building a composite must not resolve late fields")

	got, _ = c.Field("maybe")
	assert.Same(t, f.Maybe(String), got)

	got, _ = c.Field("raw")
	assert.Same(t, f.Convert(Boolean), got)
}

func TestComposite_NewRoutesByValue(t *testing.T) {
	f := NewFactory()
	c := f.ConvertAll(TypeOf[point]())

	got, err := c.New(map[string]any{"a": "1"})
	require.NoError(t, err)
	assert.Equal(t, point{A: 1}, got)

	p := point{A: 2}
	got, err = c.New(p)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	assert.True(t, c.IsMember(p))
	assert.False(t, c.IsMember(map[string]any{}))
	assert.True(t, IsTypeObject(c))
}

func TestComposite_Validate(t *testing.T) {
	f := NewFactory()
	c := f.All(TypeOf[point]())

	assert.NoError(t, c.Validate(map[string]any{"a": 1, "b": "x", "extra": true}))

	err := c.Validate(map[string]any{"a": "1"})
	errs := schema.ValidationErrors(err)
	require.Len(t, errs, 2)

	var first *schema.ValidationError
	require.True(t, errors.As(errs[0], &first))
	assert.Equal(t, "a", first.Key)
	assert.Equal(t, "b", errs[1].(*schema.ValidationError).Key)
	assert.Equal(t, "required", errs[1].(*schema.ValidationError).Reason)

	maybe := f.AllOf(PolicyMaybe, reflection.NewRecordType("Opt", map[string]any{"x": Number}))
	assert.NoError(t, maybe.Validate(map[string]any{}), "maybe fields may be missing")
}

func TestAll_MarkerWithoutFields(t *testing.T) {
	f := NewFactory()

	c := f.ConvertAll(Number)
	assert.Empty(t, c.Fields())

	_, err := c.Build(map[string]any{"x": 1})
	var convErr *reflection.ConversionError
	assert.ErrorAs(t, err, &convErr, "constructor errors propagate unwrapped")
}

func TestConvertAll_NestedRecords(t *testing.T) {
	f := NewFactory()
	inner := reflection.NewRecordType("Inner", map[string]any{"a": Number})
	outer := reflection.NewRecordType("Outer", map[string]any{"in": inner})

	c := f.ConvertAll(outer)
	field, ok := c.Field("in")
	require.True(t, ok)
	late, ok := field.(*LateType)
	require.True(t, ok, "record fields are bound lazily")
	assert.False(t, late.IsResolved())

	got, err := c.Build(map[string]any{"in": map[string]any{"a": "5", "junk": 1}})
	require.NoError(t, err)

	in := got.(*reflection.Record).Fields["in"].(*reflection.Record)
	assert.Same(t, inner, in.Type)
	assert.Equal(t, map[string]any{"a": 5.0}, in.Fields)
	assert.True(t, f.Check(inner).IsMember(in))

	_, err = f.All(outer).Build(map[string]any{"in": map[string]any{"a": "5"}})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "in", fieldErr.Key)
	assert.EqualError(t, err, `field "in": field "a": 5 (String) is not of type Number.`)
}

func TestConvertAll_CyclicRecords(t *testing.T) {
	f := NewFactory()
	node := reflection.NewRecordType("Node", map[string]any{"value": Number})
	node.Define("next", node)

	got, err := f.ConvertAll(node).Build(map[string]any{
		"value": "1",
		"next":  map[string]any{"value": "2", "next": map[string]any{"value": "3"}},
	})
	require.NoError(t, err)

	rec := got.(*reflection.Record)
	for _, want := range []float64{1, 2, 3} {
		assert.Equal(t, want, rec.Fields["value"])
		next, ok := rec.Fields["next"].(*reflection.Record)
		if !ok {
			break
		}
		rec = next
	}
}

func TestConvert_RecordFromRawMapFails(t *testing.T) {
	f := NewFactory()
	inner := reflection.NewRecordType("Inner", map[string]any{"a": Number})

	_, err := f.Convert(inner).New(map[string]any{"a": "5"})
	var convErr *reflection.ConversionError
	assert.ErrorAs(t, err, &convErr, "plain variants do not mint records from unchecked maps")
}
