package mash_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmash/go-client/pkg/mash"
)

const testDocument = `{
  "text": "Rob Dyrdek is the funniest man alive. That is all.",
  "id": 1234,
  "favorited": false,
  "in_reply_to_user_id": null,
  "created_at": "Sat Jan 24 22:14:29 +0000 2009",
  "user": {
    "screen_name": "jnunemaker",
    "followers_count": 1031,
    "location": {"city": "Mishawaka", "state": "IN"}
  },
  "tags": ["a", "b", {"name": "c"}]
}`

func TestParse_Object(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(testDocument)
	require.NoError(t, err)
	assert.Equal(t, mash.Object, v.Kind())
	assert.True(t, v.IsObject())
	assert.Equal(t, 7, v.Len())
	assert.Equal(t, []string{"text", "id", "favorited", "in_reply_to_user_id", "created_at", "user", "tags"}, v.Keys())

	text, err := v.Field("text").AsString()
	require.NoError(t, err)
	assert.Equal(t, "Rob Dyrdek is the funniest man alive. That is all.", text)

	id, err := v.Field("id").AsInt()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), id)

	assert.True(t, v.Has("in_reply_to_user_id"))
	assert.True(t, v.Field("in_reply_to_user_id").IsNull())
	assert.False(t, v.Has("foo"))
}

func TestParse_Array(t *testing.T) {
	t.Parallel()

	v, err := mash.Parse([]byte(` [{"a": 1}, [2, 3], "x", null] `))
	require.NoError(t, err)
	assert.True(t, v.IsArray())
	assert.Equal(t, 4, v.Len())

	items := v.Items()
	require.Len(t, items, 4)
	assert.Equal(t, mash.Object, items[0].Kind())
	assert.Equal(t, mash.Array, items[1].Kind())
	assert.Equal(t, mash.String, items[2].Kind())
	assert.Equal(t, mash.Null, items[3].Kind())
	assert.Equal(t, `[2,3]`, items[1].String())
}

func TestParse_Scalars(t *testing.T) {
	t.Parallel()

	cases := []struct {
		json string
		kind mash.Kind
	}{
		{`"foo"`, mash.String},
		{`123`, mash.Number},
		{`-1.5e3`, mash.Number},
		{`true`, mash.Bool},
		{`false`, mash.Bool},
		{`null`, mash.Null},
	}
	for _, c := range cases {
		v, err := mash.ParseString(c.json)
		require.NoError(t, err, c.json)
		assert.Equal(t, c.kind, v.Kind(), c.json)
		assert.Equal(t, c.json, v.String(), c.json)
	}
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{``, `   `, `{`, `{"a":}`, `[1, 2`, `foo`, `{"a": 1} x`} {
		_, err := mash.ParseString(in)
		require.Error(t, err, in)
		var parseErr *mash.ParseError
		assert.ErrorAs(t, err, &parseErr, in)
		assert.Contains(t, err.Error(), "cannot parse JSON: ", in)
	}
}

func TestParse_DuplicateKey(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(`{"a": 1, "b": 2, "a": 3}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, v.Keys())
	assert.Equal(t, `{"a":3,"b":2}`, v.String())
}

func TestValue_Get(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(testDocument)
	require.NoError(t, err)

	user, err := v.Get("user")
	require.NoError(t, err)
	assert.Equal(t, mash.Object, user.Kind())

	_, err = v.Get("missing")
	var missingErr *mash.MissingFieldError
	require.ErrorAs(t, err, &missingErr)
	assert.Equal(t, "missing", missingErr.Field)
	assert.Equal(t, `field "missing" not found`, err.Error())

	_, err = v.Field("text").Get("foo")
	var kindErr *mash.KindError
	require.ErrorAs(t, err, &kindErr)
	assert.Equal(t, mash.Object, kindErr.Expected)
	assert.Equal(t, mash.String, kindErr.Actual)
	assert.Equal(t, `cannot get field "foo": expected object, found string`, err.Error())

	// Missing field of a missing field is null
	assert.True(t, v.Field("foo").Field("bar").IsNull())
}

func TestValue_Lookup(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(testDocument)
	require.NoError(t, err)

	city, err := v.Lookup("user", "location", "city")
	require.NoError(t, err)
	str, err := city.AsString()
	require.NoError(t, err)
	assert.Equal(t, "Mishawaka", str)

	_, err = v.Lookup("user", "location", "zip")
	require.Error(t, err)
	assert.Equal(t, `field "user.location.zip" not found`, err.Error())

	self, err := v.Lookup()
	require.NoError(t, err)
	assert.Equal(t, v.String(), self.String())
}

func TestValue_Index(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(testDocument)
	require.NoError(t, err)
	tags := v.Field("tags")

	item, err := tags.Index(2)
	require.NoError(t, err)
	assert.Equal(t, `{"name":"c"}`, item.String())

	_, err = tags.Index(3)
	var indexErr *mash.IndexError
	require.ErrorAs(t, err, &indexErr)
	assert.Equal(t, `index 3 out of range, length is 3`, err.Error())

	_, err = v.Index(0)
	var kindErr *mash.KindError
	require.ErrorAs(t, err, &kindErr)
}

func TestValue_Immutable(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(`{"a": [1, 2], "b": 3}`)
	require.NoError(t, err)

	keys := v.Keys()
	keys[0] = "modified"
	assert.Equal(t, []string{"a", "b"}, v.Keys())

	items := v.Field("a").Items()
	items[0] = mash.Value{}
	assert.Equal(t, `{"a":[1,2],"b":3}`, v.String())
}

func TestValue_Fields(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(`{"z": 1, "a": "x"}`)
	require.NoError(t, err)

	fields := v.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "z", fields[0].Key)
	assert.Equal(t, "1", fields[0].Value.String())
	assert.Equal(t, "a", fields[1].Key)
	assert.Equal(t, `"x"`, fields[1].Value.String())
	assert.Nil(t, fields[1].Value.Fields())
}

func TestValue_AsTime(t *testing.T) {
	t.Parallel()

	v, err := mash.ParseString(`{"ruby": "Sat Jan 24 22:14:29 +0000 2009", "iso": "2022-03-04T05:06:07Z", "unix": 1232835269, "bad": "foo", "flag": true}`)
	require.NoError(t, err)

	ruby, err := v.Field("ruby").AsTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2009, 1, 24, 22, 14, 29, 0, time.UTC), ruby.UTC())

	iso, err := v.Field("iso").AsTime()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2022, 3, 4, 5, 6, 7, 0, time.UTC), iso.UTC())

	unix, err := v.Field("unix").AsTime()
	require.NoError(t, err)
	assert.Equal(t, ruby.UTC(), unix)

	_, err = v.Field("bad").AsTime()
	var castErr *mash.CastError
	assert.ErrorAs(t, err, &castErr)

	_, err = v.Field("flag").AsTime()
	assert.ErrorAs(t, err, &castErr)

	zero, err := v.Field("missing").AsTime()
	require.NoError(t, err)
	assert.True(t, zero.IsZero())
}
