// Package request provides immutable API requests, see New function.
//
// Requests are dispatched using the Transport interface.
// The transport performs the network I/O, this package only builds the request URI
// and materializes the JSON response body to mash.Value, see Result.
//
// Get and Post functions are shortcuts to create and perform a request in one call.
//
// RunGroup, WaitGroup and Parallel are helpers for concurrent requests.
package request

import (
	"context"
	"reflect"
	"slices"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/restmash/go-client/pkg/request/trace"
)

// Request is an immutable API request: a transport, a method, a path and Options.
// All With*/And* methods return a modified copy.
type Request struct {
	transport Transport
	method    Method
	path      string
	options   Options
	traces    []trace.Factory
	listeners []func(ctx context.Context, result Result, err error) error
}

// New creates an immutable request.
// Options are optional, multiple options are merged, a later value overrides an earlier one.
func New(transport Transport, method Method, path string, options ...Options) Request {
	return Request{transport: transport, method: method, path: path, options: mergeOptions(options...)}
}

// Get creates a GET request and performs it.
func Get(ctx context.Context, transport Transport, path string, options ...Options) (Result, error) {
	return New(transport, MethodGet, path, options...).Perform(ctx)
}

// Post creates a POST request and performs it.
func Post(ctx context.Context, transport Transport, path string, options ...Options) (Result, error) {
	return New(transport, MethodPost, path, options...).Perform(ctx)
}

func (r Request) Transport() Transport {
	return r.transport
}

func (r Request) Method() Method {
	return r.method
}

func (r Request) Path() string {
	return r.path
}

// Options returns a copy of the request options.
func (r Request) Options() Options {
	return mergeOptions(r.options)
}

// URI returns the path with the query string, if any.
// Query values are not escaped, parameters are in the insertion order.
// If the path already contains a query string, parameters are appended to it.
//
// URI panics if a query value cannot be converted to a string, Perform returns *InvalidParamError instead.
func (r Request) URI() string {
	return JoinQuery(r.path, encodeQuery(r.options.Query))
}

// JoinQuery appends the query string to the path, exactly one "?" separates them.
func JoinQuery(path, query string) string {
	switch {
	case query == "":
		return path
	case !strings.Contains(path, "?"):
		return path + "?" + query
	case strings.HasSuffix(path, "?") || strings.HasSuffix(path, "&"):
		return path + query
	default:
		return path + "&" + query
	}
}

// WithQuery method replaces query parameters.
func (r Request) WithQuery(query *orderedmap.OrderedMap) Request {
	r.options.Query = mergeParams(nil, query)
	return r
}

// AndQueryParam method sets a single query parameter.
func (r Request) AndQueryParam(key string, value any) Request {
	r.options.Query = mergeParams(r.options.Query, Params(key, value))
	return r
}

// WithBody method replaces body parameters.
func (r Request) WithBody(body *orderedmap.OrderedMap) Request {
	r.options.Body = mergeParams(nil, body)
	return r
}

// AndBodyParam method sets a single body parameter.
func (r Request) AndBodyParam(key string, value any) Request {
	r.options.Body = mergeParams(r.options.Body, Params(key, value))
	return r
}

// WithHeaders method replaces headers.
func (r Request) WithHeaders(headers map[string]string) Request {
	r.options.Headers = mergeHeaders(nil, headers)
	return r
}

// AndHeader method sets a single header.
func (r Request) AndHeader(key, value string) Request {
	r.options.Headers = mergeHeaders(r.options.Headers, map[string]string{key: value})
	return r
}

// AndTrace method registers trace hooks factory, see the trace package.
func (r Request) AndTrace(fn trace.Factory) Request {
	r.traces = append(slices.Clone(r.traces), fn)
	return r
}

// WithOnComplete method registers callback to be executed when the request is completed.
func (r Request) WithOnComplete(fn func(ctx context.Context, result Result, err error) error) Request {
	r.listeners = append(slices.Clone(r.listeners), fn)
	return r
}

// WithOnSuccess method registers callback to be executed when the request is completed without an error.
func (r Request) WithOnSuccess(fn func(ctx context.Context, result Result) error) Request {
	return r.WithOnComplete(func(ctx context.Context, result Result, err error) error {
		if err == nil {
			return fn(ctx, result)
		}
		return err
	})
}

// WithOnError method registers callback to be executed when the request failed.
func (r Request) WithOnError(fn func(ctx context.Context, err error) error) Request {
	return r.WithOnComplete(func(ctx context.Context, result Result, err error) error {
		if err != nil {
			return fn(ctx, err)
		}
		return err
	})
}

// Perform dispatches the request by the transport and materializes the response body.
//
// GET calls Transport.Get with the URI and headers.
// POST calls Transport.Post with the path, body and headers, the query string is not used.
//
// Exactly one transport call is made, an error from the transport is returned unchanged.
// A query or body value not convertible to a string is reported as *InvalidParamError, the transport is not called.
// Perform can be called repeatedly, each call dispatches the request again.
func (r Request) Perform(ctx context.Context) (result Result, err error) {
	// Params are checked before the request is traced, the trace contains the URI
	if paramsErr := r.validateParams(); paramsErr != nil {
		return r.complete(ctx, Result{}, paramsErr)
	}

	ctx, tc := trace.New(ctx, r.traceRequest(), r.traces...)
	if tc != nil && tc.RequestProcessed != nil {
		defer func() {
			tc.RequestProcessed(result, err)
		}()
	}

	result, err = r.perform(ctx, tc)
	return r.complete(ctx, result, err)
}

// PerformOrErr implements the Performer interface.
func (r Request) PerformOrErr(ctx context.Context) error {
	_, err := r.Perform(ctx)
	return err
}

func (r Request) perform(ctx context.Context, tc *trace.ClientTrace) (Result, error) {
	if tc != nil && tc.TransportStart != nil {
		tc.TransportStart()
	}

	var body string
	response, err := r.dispatch(ctx)
	if err == nil && isNil(response) {
		err = &NilResponseError{Method: r.method, Target: r.target()}
	}
	if err == nil {
		body = response.Body()
	}

	if tc != nil && tc.TransportDone != nil {
		tc.TransportDone(body, err)
	}
	if err != nil {
		return Result{}, err
	}

	if tc != nil && tc.MaterializeStart != nil {
		tc.MaterializeStart()
	}
	return Materialize(body)
}

// complete invokes listeners, each listener gets the error returned by the previous one.
func (r Request) complete(ctx context.Context, result Result, err error) (Result, error) {
	for _, fn := range r.listeners {
		err = fn(ctx, result, err)
	}
	return result, err
}

func (r Request) validateParams() error {
	if err := checkParams("query", r.options.Query); err != nil {
		return err
	}
	return checkParams("body", r.options.Body)
}

func (r Request) dispatch(ctx context.Context) (Response, error) {
	// Transport gets copies, the request stays immutable
	switch r.method {
	case MethodGet:
		return r.transport.Get(ctx, r.URI(), mergeHeaders(nil, r.options.Headers))
	case MethodPost:
		return r.transport.Post(ctx, r.path, mergeParams(nil, r.options.Body), mergeHeaders(nil, r.options.Headers))
	default:
		return nil, &UnsupportedMethodError{Method: r.method}
	}
}

// target is the value passed to the transport.
func (r Request) target() string {
	if r.method == MethodGet {
		return r.URI()
	}
	return r.path
}

func (r Request) traceRequest() trace.Request {
	return trace.Request{
		Method:  r.method.String(),
		Path:    r.path,
		URI:     r.URI(),
		Target:  r.target(),
		Query:   r.options.Query,
		Body:    r.options.Body,
		Headers: r.options.Headers,
	}
}

// isNil returns true also for a typed nil, for example (*myResponse)(nil).
func isNil(response Response) bool {
	if response == nil {
		return true
	}
	v := reflect.ValueOf(response)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
