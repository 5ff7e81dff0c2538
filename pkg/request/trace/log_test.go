package trace_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmash/go-client/pkg/client"
	"github.com/restmash/go-client/pkg/request"
	"github.com/restmash/go-client/pkg/request/trace"
)

func TestLogTracer(t *testing.T) {
	t.Parallel()

	// Mocked responses
	c, transport := client.NewMockedClient()
	transport.RegisterResponder(request.MethodGet, "/statuses/show/1.json?trim_user=1", client.NewStringResponder(`{"id":1}`))
	transport.RegisterResponder(request.MethodPost, "/statuses/update.json", client.NewErrorResponder(errors.New("connection refused")))

	// Logs for trace testing
	var logs strings.Builder
	c = c.AndTrace(trace.LogTracer(&logs))

	// Expected trace
	expected := `
API_REQUEST[0001] START GET "/statuses/show/1.json?trim_user=1"
API_REQUEST[0001] DONE  GET "/statuses/show/1.json?trim_user=1" | 8 bytes | %s
API_REQUEST[0001] BODY  GET "/statuses/show/1.json?trim_user=1" | object | %s
API_REQUEST[0002] START POST "/statuses/update.json"
API_REQUEST[0002] DONE  POST "/statuses/update.json" | %s | error=connection refused
API_REQUEST[0002] BODY  POST "/statuses/update.json" | empty | %s | error=connection refused
`

	// Test
	ctx := context.Background()
	_, err := c.Get(ctx, "/statuses/show/1.json", request.Options{Query: request.Params("trim_user", 1)})
	require.NoError(t, err)
	_, err = c.Post(ctx, "/statuses/update.json", request.Options{Body: request.Params("status", "Woohoo!")})
	assert.EqualError(t, err, "connection refused")
	wildcards.Assert(t, strings.TrimLeft(expected, "\n"), logs.String())
}
