package client

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/umisama/go-regexpcache"

	"github.com/restmash/go-client/pkg/request"
	"github.com/restmash/go-client/pkg/request/trace"
)

// regexpPrefix marks a responder target as a regular expression, for example "=~^/statuses/".
const regexpPrefix = "=~"

// Call is one recorded call of the MockTransport.
type Call struct {
	Method  request.Method
	Target  string
	Body    *orderedmap.OrderedMap
	Headers map[string]string
}

// Responder returns a mocked response for the call.
type Responder func(ctx context.Context, call Call) (request.Response, error)

// MockTransport is a request.Transport for tests, responses are registered by RegisterResponder.
type MockTransport struct {
	lock       *sync.Mutex
	responders map[string]Responder
	patterns   []string // registration order of regexp responders
	calls      []Call
	counts     map[string]int
}

// NewMockTransport creates an empty MockTransport, each call fails until a responder is registered.
func NewMockTransport() *MockTransport {
	return &MockTransport{lock: &sync.Mutex{}, responders: make(map[string]Responder), counts: make(map[string]int)}
}

// NewTestClient creates the Client for tests.
//
// If the TEST_HTTP_CLIENT_VERBOSE environment variable is set to "true",
// then all requests and responses are dumped to stdout.
//
// Output may contain unmasked tokens, do not use it in production.
func NewTestClient(transport request.Transport) Client {
	c := New(transport)
	if os.Getenv("TEST_HTTP_CLIENT_VERBOSE") == "true" { //nolint:forbidigo
		c = c.AndTrace(trace.DumpTracer(os.Stdout))
	}
	return c
}

// NewMockedClient creates the Client with mocked transport.
func NewMockedClient() (Client, *MockTransport) {
	transport := NewMockTransport()
	return NewTestClient(transport), transport
}

// NewStringResponder returns the body for each call.
func NewStringResponder(body string) Responder {
	return func(_ context.Context, _ Call) (request.Response, error) {
		return request.StringResponse(body), nil
	}
}

// NewJSONResponderOrPanic returns the value encoded to JSON for each call.
func NewJSONResponderOrPanic(value any) Responder {
	body, err := json.MarshalToString(value)
	if err != nil {
		panic(fmt.Errorf("cannot encode JSON response: %w", err))
	}
	return NewStringResponder(body)
}

// NewErrorResponder returns the error for each call.
func NewErrorResponder(err error) Responder {
	return func(_ context.Context, _ Call) (request.Response, error) {
		return nil, err
	}
}

// ResponderFromMultipleResponses returns bodies one by one, the last one is repeated.
func ResponderFromMultipleResponses(bodies ...string) Responder {
	if len(bodies) == 0 {
		panic(fmt.Errorf("at least one response must be provided"))
	}
	lock := &sync.Mutex{}
	next := 0
	return func(_ context.Context, _ Call) (request.Response, error) {
		lock.Lock()
		defer lock.Unlock()
		body := bodies[next]
		if next < len(bodies)-1 {
			next++
		}
		return request.StringResponse(body), nil
	}
}

// RegisterResponder registers responder for the method and target.
// Target is the URI for GET and the path for POST.
// Target prefixed by "=~" is a regular expression.
func (t *MockTransport) RegisterResponder(method request.Method, target string, responder Responder) {
	t.lock.Lock()
	defer t.lock.Unlock()
	key := callKey(method, target)
	if strings.HasPrefix(target, regexpPrefix) {
		regexpcache.MustCompile(strings.TrimPrefix(target, regexpPrefix)) // validate
		if _, found := t.responders[key]; !found {
			t.patterns = append(t.patterns, target)
		}
	}
	t.responders[key] = responder
}

func (t *MockTransport) Get(ctx context.Context, uri string, headers map[string]string) (request.Response, error) {
	return t.call(ctx, Call{Method: request.MethodGet, Target: uri, Headers: headers})
}

func (t *MockTransport) Post(ctx context.Context, path string, body *orderedmap.OrderedMap, headers map[string]string) (request.Response, error) {
	return t.call(ctx, Call{Method: request.MethodPost, Target: path, Body: body, Headers: headers})
}

// Calls returns all recorded calls in the order they were made.
func (t *MockTransport) Calls() []Call {
	t.lock.Lock()
	defer t.lock.Unlock()
	out := make([]Call, len(t.calls))
	copy(out, t.calls)
	return out
}

// GetCallCountInfo returns number of calls for each "METHOD target" key,
// a call matched by a regexp responder is counted also under the responder key.
func (t *MockTransport) GetCallCountInfo() map[string]int {
	t.lock.Lock()
	defer t.lock.Unlock()
	out := make(map[string]int, len(t.counts))
	for k, v := range t.counts {
		out[k] = v
	}
	return out
}

// GetTotalCallCount returns number of all calls.
func (t *MockTransport) GetTotalCallCount() int {
	t.lock.Lock()
	defer t.lock.Unlock()
	return len(t.calls)
}

func (t *MockTransport) call(ctx context.Context, call Call) (request.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	responder, err := t.record(call)
	if err != nil {
		return nil, err
	}
	return responder(ctx, call)
}

func (t *MockTransport) record(call Call) (Responder, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	key := callKey(call.Method, call.Target)
	t.calls = append(t.calls, call)
	t.counts[key]++

	if responder, found := t.responders[key]; found {
		return responder, nil
	}
	for _, pattern := range t.patterns {
		if regexpcache.MustCompile(strings.TrimPrefix(pattern, regexpPrefix)).MatchString(call.Target) {
			patternKey := callKey(call.Method, pattern)
			if responder, found := t.responders[patternKey]; found {
				t.counts[patternKey]++
				return responder, nil
			}
		}
	}
	return nil, fmt.Errorf(`no responder found for %s "%s"`, call.Method, call.Target)
}

func callKey(method request.Method, target string) string {
	return method.String() + " " + target
}
