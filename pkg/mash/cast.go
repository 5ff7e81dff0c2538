package mash

import (
	"time"

	"github.com/relvacode/iso8601"
	"github.com/spf13/cast"
)

// AsString converts a scalar to string, null is converted to an empty string.
func (v Value) AsString() (string, error) {
	if err := v.checkScalar("string"); err != nil {
		return "", err
	}
	if v.kind == Null {
		return "", nil
	}
	return v.scalar, nil
}

// AsInt converts a scalar to int64, null is converted to 0.
func (v Value) AsInt() (int64, error) {
	if err := v.checkScalar("int"); err != nil {
		return 0, err
	}
	if v.kind == Null {
		return 0, nil
	}
	out, err := cast.ToInt64E(v.scalar)
	if err != nil {
		return 0, &CastError{Target: "int", Kind: v.kind, err: err}
	}
	return out, nil
}

// AsFloat converts a scalar to float64, null is converted to 0.
func (v Value) AsFloat() (float64, error) {
	if err := v.checkScalar("float"); err != nil {
		return 0, err
	}
	if v.kind == Null {
		return 0, nil
	}
	out, err := cast.ToFloat64E(v.scalar)
	if err != nil {
		return 0, &CastError{Target: "float", Kind: v.kind, err: err}
	}
	return out, nil
}

// AsBool converts a scalar to bool, null is converted to false.
// A number is true if it is not zero.
func (v Value) AsBool() (bool, error) {
	if err := v.checkScalar("bool"); err != nil {
		return false, err
	}
	switch v.kind {
	case Null:
		return false, nil
	case Number:
		f, err := v.AsFloat()
		if err != nil {
			return false, err
		}
		return f != 0, nil
	default:
		out, err := cast.ToBoolE(v.scalar)
		if err != nil {
			return false, &CastError{Target: "bool", Kind: v.kind, err: err}
		}
		return out, nil
	}
}

// AsTime converts a scalar to time.Time.
// A string is parsed as ISO 8601 first, then the other common layouts are tried, for example time.RubyDate.
// A number is a Unix timestamp in seconds. Null is converted to the zero time.
func (v Value) AsTime() (time.Time, error) {
	if err := v.checkScalar("time"); err != nil {
		return time.Time{}, err
	}
	switch v.kind {
	case Null:
		return time.Time{}, nil
	case Number:
		sec, err := v.AsInt()
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(sec, 0).UTC(), nil
	case String:
		if t, err := iso8601.ParseString(v.scalar); err == nil {
			return t, nil
		}
		t, err := cast.ToTimeE(v.scalar)
		if err != nil {
			return time.Time{}, &CastError{Target: "time", Kind: v.kind, err: err}
		}
		return t, nil
	default:
		return time.Time{}, &CastError{Target: "time", Kind: v.kind, err: errNotTime}
	}
}

func (v Value) checkScalar(target string) error {
	if v.kind == Object || v.kind == Array {
		return &KindError{Op: "cast to " + target, Expected: String, Actual: v.kind}
	}
	return nil
}
