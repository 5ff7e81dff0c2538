// Package client provides a calling layer on top of the request package.
//
// Client bundles a request.Transport with common headers and trace hooks,
// every request created by the Client gets them, see Client.NewRequest.
//
// The Client doesn't perform any network I/O itself, it is delegated to the transport.
// Use NewMockedClient in tests.
package client

import (
	"context"
	"fmt"

	otelMetric "go.opentelemetry.io/otel/metric"
	otelTrace "go.opentelemetry.io/otel/trace"

	"github.com/restmash/go-client/pkg/request"
	"github.com/restmash/go-client/pkg/request/trace"
	"github.com/restmash/go-client/pkg/request/trace/otel"
)

// DefaultUserAgent is set to each request as the "User-Agent" header.
const DefaultUserAgent = "restmash-go-client"

// Client is an immutable configuration of requests: a transport, common headers and trace hooks.
type Client struct {
	transport request.Transport
	header    map[string]string
	traces    []trace.Factory
}

// New creates new Client.
func New(transport request.Transport) Client {
	return Client{header: map[string]string{"User-Agent": DefaultUserAgent}}.WithTransport(transport)
}

// WithTransport returns a clone of the Client with the transport set.
func (c Client) WithTransport(transport request.Transport) Client {
	if transport == nil {
		panic(fmt.Errorf("transport cannot be nil"))
	}
	c.transport = transport
	return c
}

// WithUserAgent returns a clone of the Client with user agent set.
func (c Client) WithUserAgent(v string) Client {
	return c.WithHeader("User-Agent", v)
}

// WithHeader returns a clone of the Client with common header set.
func (c Client) WithHeader(key, value string) Client {
	return c.WithHeaders(map[string]string{key: value})
}

// WithHeaders returns a clone of the Client with common headers set.
func (c Client) WithHeaders(headers map[string]string) Client {
	clone := make(map[string]string, len(c.header)+len(headers))
	for k, v := range c.header {
		clone[k] = v
	}
	for k, v := range headers {
		clone[k] = v
	}
	c.header = clone
	return c
}

// AndTrace returns a clone of the Client with the trace hooks factory added.
func (c Client) AndTrace(fn trace.Factory) Client {
	traces := make([]trace.Factory, 0, len(c.traces)+1)
	traces = append(traces, c.traces...)
	c.traces = append(traces, fn)
	return c
}

// WithTelemetry returns a clone of the Client with OpenTelemetry tracing and metrics, see the otel package.
func (c Client) WithTelemetry(tracerProvider otelTrace.TracerProvider, meterProvider otelMetric.MeterProvider, opts ...otel.Option) Client {
	return c.AndTrace(otel.NewTrace(tracerProvider, meterProvider, opts...))
}

// Transport returns the transport used by requests.
func (c Client) Transport() request.Transport {
	return c.transport
}

// Headers returns a copy of the common headers.
func (c Client) Headers() map[string]string {
	out := make(map[string]string, len(c.header))
	for k, v := range c.header {
		out[k] = v
	}
	return out
}

// NewRequest creates a request with the common headers and trace hooks.
// Headers from the options override the common headers.
func (c Client) NewRequest(method request.Method, path string, options ...request.Options) request.Request {
	all := make([]request.Options, 0, len(options)+1)
	all = append(all, request.Options{Headers: c.header})
	all = append(all, options...)
	req := request.New(c.transport, method, path, all...)
	for _, fn := range c.traces {
		req = req.AndTrace(fn)
	}
	return req
}

// Get creates a GET request and performs it.
func (c Client) Get(ctx context.Context, path string, options ...request.Options) (request.Result, error) {
	return c.NewRequest(request.MethodGet, path, options...).Perform(ctx)
}

// Post creates a POST request and performs it.
func (c Client) Post(ctx context.Context, path string, options ...request.Options) (request.Result, error) {
	return c.NewRequest(request.MethodPost, path, options...).Perform(ctx)
}
