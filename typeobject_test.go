package cantype

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/aretw0/cantype/pkg/reflection"
	"github.com/aretw0/cantype/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dateAsNumber = time.Date(1815, 11, 10, 0, 0, 0, 0, time.UTC).UnixMilli()

// matrixCase runs a value through all four policies. Strict policies either
// return the value itself or fail; lenient ones are checked by lenient.
type matrixCase struct {
	marker      any
	value       any
	strictFails bool
	lenient     func(t *testing.T, got any)
}

func equalNumber(want float64) func(*testing.T, any) {
	return func(t *testing.T, got any) {
		assert.Equal(t, want, got)
	}
}

func TestPolicyMatrix(t *testing.T) {
	f := NewFactory()
	timeType := TypeOf[time.Time]()

	cases := []matrixCase{
		{marker: Boolean, value: true},
		{marker: Boolean, value: false},
		{marker: Number, value: 23},
		{marker: String, value: "foo"},
		{
			marker: timeType, value: dateAsNumber, strictFails: true,
			lenient: func(t *testing.T, got any) {
				require.IsType(t, time.Time{}, got)
				assert.Equal(t, dateAsNumber, got.(time.Time).UnixMilli(), "converted number to time")
			},
		},
		// can convert
		{marker: Number, value: "33", strictFails: true, lenient: equalNumber(33)},
		// can't convert
		{
			marker: Number, value: "foo", strictFails: true,
			lenient: func(t *testing.T, got any) {
				assert.True(t, math.IsNaN(got.(float64)), "is NaN value")
			},
		},
	}

	for _, tc := range cases {
		for _, p := range Policies {
			name := fmt.Sprintf("%s - %s - %#v", f.reflector.Name(tc.marker), p, tc.value)
			t.Run(name, func(t *testing.T) {
				got, err := f.Variant(p, tc.marker).New(tc.value)

				if p.Strict() {
					if tc.strictFails {
						assert.ErrorIs(t, err, ErrTypeMismatch, "fails when the wrong type is provided")
						return
					}
					require.NoError(t, err)
					assert.Equal(t, tc.value, got, "result matches expected strictly")
					return
				}

				require.NoError(t, err)
				if tc.lenient != nil {
					tc.lenient(t, got)
					return
				}
				assert.Equal(t, tc.value, got)
			})
		}
	}
}

func TestPolicyMatrix_Properties(t *testing.T) {
	f := NewFactory()

	_, err := f.Check(Number).New("33")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, err := f.Convert(Number).New("33")
	require.NoError(t, err)
	assert.Equal(t, 33.0, got)

	got, err = f.Maybe(Number).New(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.Maybe(Number).New(kind.Undefined)
	require.NoError(t, err)
	assert.Equal(t, kind.Undefined, got)

	_, err = f.Maybe(Number).New("33")
	assert.ErrorIs(t, err, ErrTypeMismatch)

	got, err = f.MaybeConvert(Boolean).New("false")
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = f.MaybeConvert(Boolean).New("0")
	require.NoError(t, err)
	assert.Equal(t, false, got)

	got, err = f.MaybeConvert(Boolean).New("yes")
	require.NoError(t, err)
	assert.Equal(t, true, got)

	got, err = f.MaybeConvert(Number).New(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = f.Check(Boolean).New(true)
	require.NoError(t, err)
	assert.Equal(t, true, got)

	_, err = f.Check(Boolean).New("true")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestBooleanCoercion(t *testing.T) {
	f := NewFactory()
	convert := f.Convert(Boolean)

	tests := []struct {
		value any
		want  bool
	}{
		{"false", false},
		{"0", false},
		{"", false},
		{0, false},
		{nil, false},
		{"true", true},
		{"no", true},
		{1, true},
		{true, true},
	}

	for _, tt := range tests {
		got, err := convert.New(tt.value)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "convert(Boolean).New(%#v)", tt.value)
	}
}

func TestMembership(t *testing.T) {
	f := NewFactory()

	assert.True(t, f.Check(Number).IsMember(5))
	assert.True(t, f.Check(Number).IsMember(5.5))
	assert.False(t, f.Check(Number).IsMember("5"))
	assert.False(t, f.Check(Number).IsMember(nil))
	assert.True(t, f.Maybe(Number).IsMember(nil))
	assert.True(t, f.MaybeConvert(Number).IsMember(kind.Undefined))
	var nilPtr *int
	assert.True(t, f.Maybe(TypeOf[*int]()).IsMember(nilPtr))
	assert.False(t, f.Convert(String).IsMember(nil))
}

func TestRoundTrip_MembersAreUnchanged(t *testing.T) {
	f := NewFactory()
	person := reflection.NewRecordType("Person", nil)
	rec := &reflection.Record{Type: person}
	now := time.Now()

	members := []struct {
		marker any
		value  any
	}{
		{Number, 5},
		{Number, int64(7)},
		{Number, float32(1.5)},
		{String, ""},
		{Boolean, false},
		{TypeOf[time.Time](), now},
		{person, rec},
	}

	for _, m := range members {
		for _, p := range Policies {
			got, err := f.Variant(p, m.marker).New(m.value)
			require.NoError(t, err)
			assert.Equal(t, m.value, got, "%s(%v) must not transform members", p, m.marker)
		}
	}

	got, err := f.Convert(person).New(rec)
	require.NoError(t, err)
	assert.Same(t, rec, got)
}

func TestSchemaExtensionLaw(t *testing.T) {
	f := NewFactory()
	markers := []any{Number, String, Boolean, TypeOf[time.Time](), reflection.NewRecordType("R", nil)}

	for _, m := range markers {
		checkValues := f.Check(m).Schema().Values
		want := append(append([]any{}, checkValues...), nil, kind.Undefined)

		assert.Equal(t, want, f.Maybe(m).Schema().Values, "maybe(%v)", m)
		assert.Equal(t, want, f.MaybeConvert(m).Schema().Values, "maybeConvert(%v)", m)
		assert.Equal(t, checkValues, f.Convert(m).Schema().Values, "convert(%v)", m)
		assert.Equal(t, schema.TypeOr, f.Maybe(m).Schema().Type)
	}

	assert.Equal(t, []any{true, false}, f.Check(Boolean).Schema().Values)
	assert.Equal(t, []any{Number}, f.Check(Number).Schema().Values)
}

func TestNamesAndFlags(t *testing.T) {
	f := NewFactory()

	assert.Equal(t, "Number", f.Base(Number).Name())
	assert.Equal(t, "check(Number)", f.Check(Number).Name())
	assert.Equal(t, "convert(String)", f.Convert(String).Name())
	assert.Equal(t, "maybe(Time)", f.Maybe(TypeOf[time.Time]()).Name())
	assert.Equal(t, "maybeConvert(Boolean)", f.MaybeConvert(Boolean).Name())

	for _, p := range Policies {
		typ := f.Variant(p, Number)
		assert.Equal(t, p.Strict(), typ.IsStrict(), "%s strict", p)
		assert.Equal(t, p.Nullable(), typ.IsNullable(), "%s nullable", p)
		assert.Equal(t, Number, typ.Marker())
	}

	assert.False(t, f.Base(Number).IsStrict())
	assert.False(t, f.Base(Number).IsNullable())
}

func TestAny(t *testing.T) {
	got, err := Any.New(45)
	require.NoError(t, err)
	assert.Equal(t, 45, got, "acts as an identity")

	assert.True(t, Any.IsMember(nil))
	assert.True(t, Any.IsMember("x"))
	assert.Equal(t, schema.TypeAny, Any.Schema().Type)
	assert.True(t, IsTypeObject(Any))
}

type evenOnly struct{}

func (evenOnly) IsMember(v any) bool {
	n, ok := v.(int)
	return ok && n%2 == 0
}

func (evenOnly) New(v any) (any, error) { return v, nil }

func TestAny_UnderEveryPolicy(t *testing.T) {
	f := NewFactory()
	for _, p := range Policies {
		got := f.Variant(p, Any)
		assert.Equal(t, Any, got, "%s(Any)", p)
		assert.True(t, got.IsMember(nil))
	}
	assert.Equal(t, Any, f.Maybe(Any))
}

func TestIsTypeObject(t *testing.T) {
	f := NewFactory()

	assert.True(t, IsTypeObject(f.Check(Number)))
	assert.True(t, IsTypeObject(f.Late(func() any { return Number })))
	assert.True(t, IsTypeObject(evenOnly{}))
	assert.False(t, IsTypeObject(Number))
	assert.False(t, IsTypeObject(42))
	assert.False(t, IsTypeObject(nil))
}

func TestNormalize(t *testing.T) {
	f := NewFactory()

	_, err := f.Normalize(42)
	var normErr *NormalizationError
	require.ErrorAs(t, err, &normErr)
	assert.Equal(t, 42, normErr.Value)
	assert.ErrorIs(t, err, ErrNotNormalizable)

	check := f.Check(Number)
	got, err := f.Normalize(check)
	require.NoError(t, err)
	assert.Same(t, check, got)

	got, err = f.Normalize(Number)
	require.NoError(t, err)
	assert.Same(t, check, got)

	adapted, err := f.Normalize(evenOnly{})
	require.NoError(t, err)
	assert.True(t, adapted.IsMember(2))
	assert.False(t, adapted.IsMember(3))
	assert.False(t, adapted.IsNullable())
	assert.Equal(t, "cantype.evenOnly", adapted.Name())
}
