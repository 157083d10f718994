package relay

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicAuthFilter(t *testing.T) {
	var captured Request
	f := BasicAuthFilter("Aladdin", "open sesame")

	req := mustRequest(t, "GET", "http://localhost/vault")
	rsp := f(req, captureExchange(&captured, http.StatusOK)).Response()
	require.NoError(t, rsp.Error)

	// Exactly one Authorization header, deterministically derived from the credentials
	require.Len(t, captured.Header["Authorization"], 1)
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", captured.Header.Get("Authorization"))

	// The original request is never mutated
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestBasicAuthFilterOverridesExisting(t *testing.T) {
	var captured Request
	f := BasicAuthFilter("Aladdin", "open sesame")

	req, err := NewRequest(nil, "GET", "http://localhost/vault").
		Header("Authorization", "Bearer stale").
		Build()
	require.NoError(t, err)

	f(req, captureExchange(&captured, http.StatusOK)).Response()
	require.Len(t, captured.Header["Authorization"], 1)
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", captured.Header.Get("Authorization"))
}
