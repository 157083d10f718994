package relay

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDFilterInjects(t *testing.T) {
	var captured Request
	req := mustRequest(t, "GET", "http://localhost/foo")

	rsp := RequestIDFilter(req, captureExchange(&captured, http.StatusOK)).Response()
	require.NoError(t, rsp.Error)

	id := captured.Header.Get(RequestIDHeader)
	require.NotEmpty(t, id)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestRequestIDFilterPreservesExisting(t *testing.T) {
	var captured Request
	req, err := NewRequest(nil, "GET", "http://localhost/foo").
		Header(RequestIDHeader, "caller-chosen").
		Build()
	require.NoError(t, err)

	RequestIDFilter(req, captureExchange(&captured, http.StatusOK)).Response()
	assert.Equal(t, "caller-chosen", captured.Header.Get(RequestIDHeader))
}
