package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restmash/go-client/pkg/request"
)

func TestMethod(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "GET", request.MethodGet.String())
	assert.Equal(t, "POST", request.MethodPost.String())
	assert.Equal(t, "Method(0)", request.Method(0).String())

	for name, expected := range map[string]request.Method{"GET": request.MethodGet, "get": request.MethodGet, " Post ": request.MethodPost} {
		method, err := request.ParseMethod(name)
		require.NoError(t, err)
		assert.Equal(t, expected, method)
	}

	_, err := request.ParseMethod("DELETE")
	assert.EqualError(t, err, `unexpected request method "DELETE", expected one of "GET", "POST"`)
}
