// Package trace defines hooks to run at various stages of request.Request.Perform.
// A custom ClientTrace definition can be registered in the request.Request or in the client.Client by the AndTrace method.
package trace

import (
	"context"
	"reflect"

	"github.com/keboola/go-utils/pkg/orderedmap"
)

// Factory creates ClientTrace hooks for a request.
type Factory func(ctx context.Context, request Request) (context.Context, *ClientTrace)

// Request describes one performed request.
type Request struct {
	// Method is the HTTP method, for example "GET".
	Method string
	// Path is the endpoint path, without the query string.
	Path string
	// URI is the path with the query string.
	URI string
	// Target is the value passed to the transport: URI for GET, Path for POST.
	Target  string
	Query   *orderedmap.OrderedMap
	Body    *orderedmap.OrderedMap
	Headers map[string]string
}

// ClientTrace is a set of hooks to run at various stages of an outgoing request.
type ClientTrace struct {
	// TransportStart is called before the transport is invoked.
	TransportStart func()
	// TransportDone is called when the transport returns a response body or an error.
	TransportDone func(body string, err error)
	// MaterializeStart is called before the response body is parsed.
	MaterializeStart func()
	// RequestProcessed is called when the Perform method is done.
	RequestProcessed func(result any, err error)
}

// Compose modifies t such that it respects the previously-registered hooks in old.
// Hooks from old are called first.
// Copy of httptrace.compose.
func (t *ClientTrace) Compose(old *ClientTrace) {
	if old == nil {
		return
	}
	tv := reflect.ValueOf(t).Elem()
	ov := reflect.ValueOf(old).Elem()
	structType := tv.Type()
	for i := 0; i < structType.NumField(); i++ {
		tf := tv.Field(i)
		hookType := tf.Type()
		if hookType.Kind() != reflect.Func {
			continue
		}
		of := ov.Field(i)
		if of.IsNil() {
			continue
		}
		if tf.IsNil() {
			tf.Set(of)
			continue
		}

		// Make a copy of tf for tf to call. (Otherwise it
		// creates a recursive call cycle and stack overflows)
		tfCopy := reflect.ValueOf(tf.Interface())

		// We need to call both tf and of in some order.
		newFunc := reflect.MakeFunc(hookType, func(args []reflect.Value) []reflect.Value {
			of.Call(args)
			return tfCopy.Call(args)
		})
		tv.Field(i).Set(newFunc)
	}
}

// New invokes all factories and composes the returned hooks.
// The result is nil, if there is no hook.
func New(ctx context.Context, request Request, factories ...Factory) (context.Context, *ClientTrace) {
	var out *ClientTrace
	for _, fn := range factories {
		if fn == nil {
			continue
		}
		var t *ClientTrace
		ctx, t = fn(ctx, request)
		if t == nil {
			continue
		}
		if out == nil {
			out = t
		} else {
			t.Compose(out)
			out = t
		}
	}
	return ctx, out
}

// shaped is implemented by request.Result.
type shaped interface {
	Shape() string
}

// ShapeOf describes the result, see request.Result.Shape.
func ShapeOf(result any) string {
	if v, ok := result.(shaped); ok {
		return v.Shape()
	}
	return "-"
}
