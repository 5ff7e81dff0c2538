package request

import (
	"context"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Transport performs the network I/O of a Request, for example by the standard net/http package.
// Failures, such as network errors or non-success status codes, are reported by the transport.
type Transport interface {
	// Get sends GET request to the uri, the uri contains the query string.
	Get(ctx context.Context, uri string, headers map[string]string) (Response, error)
	// Post sends POST request to the path, the body should be sent as a form payload, see EncodeForm.
	Post(ctx context.Context, path string, body *orderedmap.OrderedMap, headers map[string]string) (Response, error)
}

// Response returned by the Transport.
type Response interface {
	// Body returns raw response body, a JSON text is expected.
	Body() string
}

// StringResponse is a Response with the body as a string.
type StringResponse string

func (r StringResponse) Body() string {
	return string(r)
}

// BytesResponse is a Response with the body as bytes.
type BytesResponse []byte

func (r BytesResponse) Body() string {
	return string(r)
}
