package mash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmash/go-client/pkg/mash"
)

func TestValue_Cast(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(`{"str": "abc", "num": "42", "int": 42, "float": 1.5, "yes": true, "no": false, "null": null, "obj": {}, "arr": []}`)
	require.NoError(t, err)

	// AsString
	str, err := v.Field("str").AsString()
	require.NoError(t, err)
	assert.Equal(t, "abc", str)
	str, err = v.Field("int").AsString()
	require.NoError(t, err)
	assert.Equal(t, "42", str)
	str, err = v.Field("yes").AsString()
	require.NoError(t, err)
	assert.Equal(t, "true", str)
	str, err = v.Field("null").AsString()
	require.NoError(t, err)
	assert.Equal(t, "", str)

	// AsInt
	i, err := v.Field("num").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)
	i, err = v.Field("int").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(42), i)
	_, err = v.Field("str").AsInt()
	var castErr *mash.CastError
	require.ErrorAs(t, err, &castErr)
	assert.Equal(t, "int", castErr.Target)
	assert.Equal(t, mash.String, castErr.Kind)
	_, err = v.Field("float").AsInt()
	assert.ErrorAs(t, err, &castErr)

	// AsFloat
	f, err := v.Field("float").AsFloat()
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0.0001)
	f, err = v.Field("null").AsFloat()
	require.NoError(t, err)
	assert.Zero(t, f)

	// AsBool
	b, err := v.Field("yes").AsBool()
	require.NoError(t, err)
	assert.True(t, b)
	b, err = v.Field("no").AsBool()
	require.NoError(t, err)
	assert.False(t, b)
	b, err = v.Field("int").AsBool()
	require.NoError(t, err)
	assert.True(t, b)
	_, err = v.Field("str").AsBool()
	assert.ErrorAs(t, err, &castErr)

	// Containers are not scalars
	var kindErr *mash.KindError
	_, err = v.Field("obj").AsString()
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, mash.Object, kindErr.Actual)
	_, err = v.Field("arr").AsInt()
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, mash.Array, kindErr.Actual)
}

func TestKind_String(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "null", mash.Null.String())
	assert.Equal(t, "bool", mash.Bool.String())
	assert.Equal(t, "number", mash.Number.String())
	assert.Equal(t, "string", mash.String.String())
	assert.Equal(t, "array", mash.Array.String())
	assert.Equal(t, "object", mash.Object.String())
	assert.Equal(t, "unknown", mash.Kind(100).String())
}
