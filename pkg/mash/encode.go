package mash

import (
	jsonlib "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// MarshalJSON implements JSON encoding, field order is kept.
func (v Value) MarshalJSON() ([]byte, error) {
	stream := json.BorrowStream(nil)
	defer json.ReturnStream(stream)

	v.write(stream)
	if stream.Error != nil {
		return nil, stream.Error
	}

	out := make([]byte, len(stream.Buffer()))
	copy(out, stream.Buffer())
	return out, nil
}

// Decode maps the value to a typed Go value, for example a struct with json tags.
func (v Value) Decode(target any) error {
	data, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// Interface converts the value to plain Go values:
// map[string]any, []any, string, json.Number, bool or nil.
func (v Value) Interface() any {
	switch v.kind {
	case Object:
		out := make(map[string]any, len(v.keys))
		for _, k := range v.keys {
			out[k] = v.fields[k].Interface()
		}
		return out
	case Array:
		out := make([]any, 0, len(v.items))
		for _, item := range v.items {
			out = append(out, item.Interface())
		}
		return out
	case String:
		return v.scalar
	case Number:
		return jsonlib.Number(v.scalar)
	case Bool:
		return v.scalar == "true"
	default:
		return nil
	}
}

func (v Value) write(stream *jsoniter.Stream) {
	switch v.kind {
	case Object:
		stream.WriteObjectStart()
		for i, k := range v.keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(k)
			v.fields[k].write(stream)
		}
		stream.WriteObjectEnd()
	case Array:
		stream.WriteArrayStart()
		for i, item := range v.items {
			if i > 0 {
				stream.WriteMore()
			}
			item.write(stream)
		}
		stream.WriteArrayEnd()
	case String:
		stream.WriteString(v.scalar)
	case Number:
		stream.WriteRaw(v.scalar)
	case Bool:
		stream.WriteBool(v.scalar == "true")
	default:
		stream.WriteNil()
	}
}
