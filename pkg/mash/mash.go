// Package mash provides a generic, read-only value tree materialized from a JSON payload.
//
// Value is a tagged variant: an object (ordered fields), an array, or a scalar leaf.
// Fields are resolved by name at lookup time, see Value.Get and Value.Field.
// Scalars are converted to Go types by the As* helpers, see Value.AsString, Value.AsInt, ...
//
// Use Parse or ParseString to create a Value from a JSON text.
package mash

import (
	"strings"
)

// Kind of the Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one node of the tree. The zero value is a JSON null.
type Value struct {
	kind Kind
	// scalar is the string content, the number literal, or "true"/"false"
	scalar string
	items  []Value
	keys   []string
	fields map[string]Value
}

// Field is a key-value pair of an object.
type Field struct {
	Key   string
	Value Value
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == Null
}

func (v Value) IsObject() bool {
	return v.kind == Object
}

func (v Value) IsArray() bool {
	return v.kind == Array
}

// Len returns number of fields of an object, number of items of an array, otherwise 0.
func (v Value) Len() int {
	switch v.kind {
	case Object:
		return len(v.keys)
	case Array:
		return len(v.items)
	default:
		return 0
	}
}

// Keys returns field names of an object in the document order.
func (v Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	out := make([]string, len(v.keys))
	copy(out, v.keys)
	return out
}

// Fields returns key-value pairs of an object in the document order.
func (v Value) Fields() []Field {
	if v.kind != Object {
		return nil
	}
	out := make([]Field, 0, len(v.keys))
	for _, k := range v.keys {
		out = append(out, Field{Key: k, Value: v.fields[k]})
	}
	return out
}

// Has returns true if the value is an object with the field.
func (v Value) Has(name string) bool {
	if v.kind != Object {
		return false
	}
	_, found := v.fields[name]
	return found
}

// Get returns the field of an object.
// MissingFieldError is returned if there is no such field, KindError if the value is not an object.
func (v Value) Get(name string) (Value, error) {
	if v.kind != Object {
		return Value{}, &KindError{Op: `get field "` + name + `"`, Expected: Object, Actual: v.kind}
	}
	field, found := v.fields[name]
	if !found {
		return Value{}, &MissingFieldError{Field: name}
	}
	return field, nil
}

// Field returns the field of an object or null if it is not present.
func (v Value) Field(name string) Value {
	field, _ := v.Get(name)
	return field
}

// Lookup walks nested objects by field names.
func (v Value) Lookup(names ...string) (Value, error) {
	current := v
	for i, name := range names {
		next, err := current.Get(name)
		if err != nil {
			if missing, ok := err.(*MissingFieldError); ok {
				missing.Field = strings.Join(names[:i+1], ".")
			}
			return Value{}, err
		}
		current = next
	}
	return current, nil
}

// Index returns the item of an array.
func (v Value) Index(i int) (Value, error) {
	if v.kind != Array {
		return Value{}, &KindError{Op: "get item", Expected: Array, Actual: v.kind}
	}
	if i < 0 || i >= len(v.items) {
		return Value{}, &IndexError{Index: i, Len: len(v.items)}
	}
	return v.items[i], nil
}

// Items returns items of an array.
func (v Value) Items() []Value {
	if v.kind != Array {
		return nil
	}
	out := make([]Value, len(v.items))
	copy(out, v.items)
	return out
}

// String returns the value encoded as a compact JSON.
func (v Value) String() string {
	out, err := v.MarshalJSON()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return string(out)
}
