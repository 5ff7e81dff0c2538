package request_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/restmash/go-client/pkg/client"
	"github.com/restmash/go-client/pkg/request"
)

func TestRunGroup(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder(request.MethodGet, `=~^/`, client.NewStringResponder(`{"ok":true}`))

	// Create run group
	g := request.NewRunGroup(context.Background())

	// Add requests
	g.Add(c.NewRequest(request.MethodGet, "/foo1"))
	g.Add(c.NewRequest(request.MethodGet, "/foo2"))
	g.Add(c.NewRequest(request.MethodGet, "/foo3").
		WithOnSuccess(func(ctx context.Context, result request.Result) error {
			g.Add(c.NewRequest(request.MethodGet, "/foo5"))
			return nil
		}).
		WithOnError(func(ctx context.Context, err error) error {
			g.Add(c.NewRequest(request.MethodGet, "/err"))
			return err
		}),
	)
	g.Add(c.NewRequest(request.MethodGet, "/foo4").
		WithOnSuccess(func(ctx context.Context, result request.Result) error {
			g.Add(c.NewRequest(request.MethodGet, "/foo6"))
			return nil
		}),
	)

	// No requests have been sent yet
	assert.Equal(t, 0, transport.GetTotalCallCount())

	// Run and wait
	assert.NoError(t, g.RunAndWait())

	// All requests have been sent
	assert.Equal(t, map[string]int{
		"GET =~^/":  6,
		"GET /foo1": 1,
		"GET /foo2": 1,
		"GET /foo3": 1,
		"GET /foo4": 1,
		"GET /foo5": 1,
		"GET /foo6": 1,
	}, transport.GetCallCountInfo())
}

func TestRunGroup_HandleError(t *testing.T) {
	t.Parallel()
	c, transport := client.NewMockedClient()
	transport.RegisterResponder(request.MethodGet, `=~^/`, func(ctx context.Context, call client.Call) (request.Response, error) {
		time.Sleep(10 * time.Millisecond)
		return nil, errors.New(`request GET "/foo" failed: 401 Unauthorized`)
	})

	// Create run group
	g := request.NewRunGroup(context.Background())

	// Add requests
	requestsCount := 100
	assert.Greater(t, requestsCount, request.RunGroupConcurrencyLimit)
	for i := 1; i <= requestsCount; i++ {
		g.Add(c.NewRequest(request.MethodGet, "/foo"))
	}

	// No requests have been sent yet
	assert.Equal(t, 0, transport.GetTotalCallCount())

	// Run and wait, first error is returned
	err := g.RunAndWait()
	assert.Error(t, err)
	assert.Equal(t, `request GET "/foo" failed: 401 Unauthorized`, err.Error())

	// NOT all requests have been sent
	// Sending stops when the first error occurs
	assert.Less(t, transport.GetTotalCallCount(), 100)
}
