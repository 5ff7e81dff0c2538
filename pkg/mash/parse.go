package mash

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Parse materializes the JSON text to a Value tree.
// Object fields keep the document order, for duplicate keys the last value wins.
func Parse(data []byte) (Value, error) {
	return ParseString(string(data))
}

// ParseString is the same as Parse, but it accepts a string.
func ParseString(data string) (Value, error) {
	if strings.TrimSpace(data) == "" {
		return Value{}, &ParseError{err: errEmptyInput}
	}
	if !gjson.Valid(data) {
		return Value{}, newParseError(data)
	}
	return fromResult(gjson.Parse(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch {
	case r.IsObject():
		v := Value{kind: Object, fields: make(map[string]Value)}
		r.ForEach(func(key, value gjson.Result) bool {
			if _, found := v.fields[key.Str]; !found {
				v.keys = append(v.keys, key.Str)
			}
			v.fields[key.Str] = fromResult(value)
			return true
		})
		return v
	case r.IsArray():
		v := Value{kind: Array, items: make([]Value, 0)}
		r.ForEach(func(_, value gjson.Result) bool {
			v.items = append(v.items, fromResult(value))
			return true
		})
		return v
	}

	switch r.Type {
	case gjson.String:
		return Value{kind: String, scalar: r.Str}
	case gjson.Number:
		return Value{kind: Number, scalar: r.Raw}
	case gjson.True:
		return Value{kind: Bool, scalar: "true"}
	case gjson.False:
		return Value{kind: Bool, scalar: "false"}
	default:
		return Value{}
	}
}

// newParseError gets a detailed error from the jsoniter decoder, gjson only validates.
func newParseError(data string) *ParseError {
	var tmp any
	if err := json.UnmarshalFromString(data, &tmp); err != nil {
		return &ParseError{err: err}
	}
	return &ParseError{err: errInvalidJSON}
}
