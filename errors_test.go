package cantype

import (
	"errors"
	"testing"

	"github.com/aretw0/cantype/pkg/kind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMismatch_IncludesValueKind(t *testing.T) {
	f := NewFactory()

	tests := []struct {
		marker any
		value  any
		want   string
	}{
		{Number, "3", "3 (String) is not of type Number."},
		{String, 3, "3 (Number) is not of type String."},
		{Number, false, "false (Boolean) is not of type Number."},
		{Boolean, "", " (String) is not of type Boolean."},
		{Number, nil, "null (Null) is not of type Number."},
		{String, kind.Undefined, "undefined (Undefined) is not of type String."},
		{Number, map[string]any{}, "map[] (Object) is not of type Number."},
	}

	for _, tt := range tests {
		_, err := f.Check(tt.marker).New(tt.value)
		require.Error(t, err)
		assert.Equal(t, tt.want, err.Error())

		var mismatch *TypeMismatchError
		require.True(t, errors.As(err, &mismatch))
		assert.Equal(t, f.Base(tt.marker).Name(), mismatch.Expected)
	}
}

func TestErrorKindsAreDistinct(t *testing.T) {
	mismatch := &TypeMismatchError{Value: 1, Expected: "String"}
	norm := &NormalizationError{Value: 1}

	assert.ErrorIs(t, mismatch, ErrTypeMismatch)
	assert.NotErrorIs(t, mismatch, ErrNotNormalizable)
	assert.ErrorIs(t, norm, ErrNotNormalizable)
	assert.NotErrorIs(t, norm, ErrTypeMismatch)
	assert.NotErrorIs(t, norm, ErrUnresolved)

	field := &FieldError{Key: "a", Err: mismatch}
	assert.ErrorIs(t, field, ErrTypeMismatch)
	assert.Equal(t, `field "a": 1 (Number) is not of type String.`, field.Error())
}

func TestLenientNeverMismatches(t *testing.T) {
	f := NewFactory()
	values := []any{"x", 3, true, nil, kind.Undefined, map[string]any{}}

	for _, v := range values {
		for _, m := range []any{Number, String, Boolean} {
			_, err := f.Convert(m).New(v)
			assert.NoError(t, err, "convert(%v).New(%#v)", m, v)
			_, err = f.MaybeConvert(m).New(v)
			assert.NoError(t, err, "maybeConvert(%v).New(%#v)", m, v)
		}
	}
}
