package mash

import (
	"errors"
	"fmt"
)

var (
	errEmptyInput  = errors.New("unexpected end of JSON input")
	errInvalidJSON = errors.New("invalid JSON")
	errNotTime     = errors.New("not a time value")
)

// MissingFieldError is returned when an object has no field of the requested name.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf(`field "%s" not found`, e.Field)
}

// KindError is returned when an operation is not applicable to the Value kind.
type KindError struct {
	Op       string
	Expected Kind
	Actual   Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf(`cannot %s: expected %s, found %s`, e.Op, e.Expected, e.Actual)
}

// IndexError is returned when an array item is out of range.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf(`index %d out of range, length is %d`, e.Index, e.Len)
}

// CastError is returned when a scalar cannot be converted to the requested Go type.
type CastError struct {
	Target string
	Kind   Kind
	err    error
}

func (e *CastError) Error() string {
	return fmt.Sprintf(`cannot cast %s to %s: %s`, e.Kind, e.Target, e.err)
}

func (e *CastError) Unwrap() error {
	return e.err
}

// ParseError is returned when a text is not a valid JSON.
type ParseError struct {
	err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(`cannot parse JSON: %s`, e.err)
}

func (e *ParseError) Unwrap() error {
	return e.err
}
