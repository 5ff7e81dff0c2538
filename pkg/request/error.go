package request

import "fmt"

// UnsupportedMethodError is returned by Perform if the Method is not known.
type UnsupportedMethodError struct {
	Method Method
}

func (e *UnsupportedMethodError) Error() string {
	return fmt.Sprintf(`unsupported request method "%s"`, e.Method)
}

// NilResponseError is returned by Perform if the transport returned neither a response nor an error.
type NilResponseError struct {
	Method Method
	Target string
}

func (e *NilResponseError) Error() string {
	return fmt.Sprintf(`request %s "%s" failed: transport returned no response`, e.Method, e.Target)
}

// InvalidParamError is returned by Perform if a query or body value cannot be converted to a string.
type InvalidParamError struct {
	// Location is "query" or "body".
	Location string
	Param    string
	err      error
}

func (e *InvalidParamError) Error() string {
	return fmt.Sprintf(`invalid %s param "%s": %s`, e.Location, e.Param, e.err)
}

func (e *InvalidParamError) Unwrap() error {
	return e.err
}
