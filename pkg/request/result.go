package request

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/restmash/go-client/pkg/mash"
)

// Result of a performed Request.
//
// The shape depends only on the top-level JSON type of the response body:
//   - array: a collection, each item is materialized to mash.Value, see Collection.
//   - object: a single object, see Object.
//   - empty body: an empty result, see IsEmpty.
type Result struct {
	value   mash.Value
	raw     string
	present bool
}

// Materialize parses the response body to a Result.
// An empty body is an empty result, an invalid JSON is a *mash.ParseError.
func Materialize(body string) (Result, error) {
	if strings.TrimSpace(body) == "" {
		return Result{}, nil
	}
	value, err := mash.ParseString(body)
	if err != nil {
		return Result{}, err
	}
	return Result{value: value, raw: body, present: true}, nil
}

// IsEmpty returns true if the response body was empty.
func (r Result) IsEmpty() bool {
	return !r.present
}

// IsCollection returns true if the response body is a JSON array.
func (r Result) IsCollection() bool {
	return r.present && r.value.IsArray()
}

// Len returns number of items of a collection, 1 for a single value and 0 for an empty result.
func (r Result) Len() int {
	switch {
	case !r.present:
		return 0
	case r.IsCollection():
		return r.value.Len()
	default:
		return 1
	}
}

// Object returns the single value, it is null for a collection or an empty result.
func (r Result) Object() mash.Value {
	if r.IsCollection() {
		return mash.Value{}
	}
	return r.value
}

// Collection returns items of a collection in the response order.
// A single value is returned as a one item slice, an empty result as nil.
func (r Result) Collection() []mash.Value {
	switch {
	case !r.present:
		return nil
	case r.IsCollection():
		return r.value.Items()
	default:
		return []mash.Value{r.value}
	}
}

// Value returns the top-level value.
func (r Result) Value() mash.Value {
	return r.value
}

// Raw returns the response body.
func (r Result) Raw() string {
	return r.raw
}

// Query returns a value by the GJSON path syntax, for example "0.user.screen_name" or "#.id".
// Null is returned if the path doesn't exist.
func (r Result) Query(path string) mash.Value {
	if !r.present {
		return mash.Value{}
	}
	res := gjson.Get(r.raw, path)
	if !res.Exists() {
		return mash.Value{}
	}
	value, err := mash.ParseString(res.Raw)
	if err != nil {
		return mash.Value{}
	}
	return value
}

// Decode maps the result to a typed Go value, for example to a slice of structs.
func (r Result) Decode(target any) error {
	return r.value.Decode(target)
}

// Shape describes the result, for example "object", "collection(20)" or "empty".
func (r Result) Shape() string {
	switch {
	case !r.present:
		return "empty"
	case r.IsCollection():
		return fmt.Sprintf("collection(%d)", r.value.Len())
	default:
		return r.value.Kind().String()
	}
}
