package relay

import (
	"net/http"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/monzo/terrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeferResolves(t *testing.T) {
	defer leaktest.Check(t)()

	f := Defer(mustRequest(t, "GET", "http://localhost/ok"), func(req Request) Response {
		return NewResponse(http.StatusOK).Request(&req).Build()
	})
	<-f.WaitC()
	assert.Equal(t, http.StatusOK, f.Response().StatusCode)
}

func TestResolved(t *testing.T) {
	f := Resolved(NewResponse(http.StatusAccepted).Build())
	select {
	case <-f.WaitC():
	default:
		t.Fatal("resolved future was not immediately done")
	}
	assert.Equal(t, http.StatusAccepted, f.Response().StatusCode)
	f.Cancel() // no-op
}

func TestCancelPropagates(t *testing.T) {
	defer leaktest.Check(t)()

	entered := make(chan struct{})
	terminal := ExchangeFunc(func(req Request) *ResponseFuture {
		return Defer(req, func(req Request) Response {
			close(entered)
			<-req.Context.Done()
			return Response{
				Request: &req,
				Error:   terrors.Timeout("cancelled", "Exchange cancelled", nil)}
		})
	})

	// The filter stage's context must chain down to the terminal stage
	e := ComposeFilters([]Filter{HeaderFilter("X-A", "1")}, terminal)
	f := e(mustRequest(t, "GET", "http://localhost/slow"))
	<-entered
	f.Cancel()
	rsp := f.Response()
	require.Error(t, rsp.Error)
}

func TestCancelReleasesUncollectedBody(t *testing.T) {
	defer leaktest.Check(t)()

	body := &releaseCounter{Body: BodyOf([]byte("abandoned"))}
	f := Defer(mustRequest(t, "GET", "http://localhost/slow"), func(req Request) Response {
		<-req.Context.Done()
		return NewResponse(http.StatusOK).Request(&req).Body(body).Build()
	})
	f.Cancel()
	f.Response()
	assert.Equal(t, 1, body.releases)
}
