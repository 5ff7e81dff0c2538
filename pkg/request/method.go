package request

import (
	"fmt"
	"strings"
)

// Method is an HTTP method supported by the Transport.
type Method int

const (
	MethodGet Method = iota + 1
	MethodPost
)

func (m Method) String() string {
	switch m {
	case MethodGet:
		return "GET"
	case MethodPost:
		return "POST"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod converts a case-insensitive method name to the Method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GET":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	default:
		return 0, fmt.Errorf(`unexpected request method "%s", expected one of "GET", "POST"`, name)
	}
}
