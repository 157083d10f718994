package relay

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustRequest(t *testing.T, method, url string) Request {
	req, err := NewRequest(context.Background(), method, url).Build()
	require.NoError(t, err)
	return req
}

// traceFilter records entry and exit through a filter, for asserting composition order.
func traceFilter(name string, trace *[]string) Filter {
	return func(req Request, next ExchangeFunc) *ResponseFuture {
		*trace = append(*trace, name+">")
		rsp := next(req).Response()
		*trace = append(*trace, name+"<")
		return Resolved(rsp)
	}
}

func traceExchange(trace *[]string, statusCode int) ExchangeFunc {
	return func(req Request) *ResponseFuture {
		*trace = append(*trace, "terminal")
		return Resolved(NewResponse(statusCode).Request(&req).Build())
	}
}

func captureExchange(captured *Request, statusCode int) ExchangeFunc {
	return func(req Request) *ResponseFuture {
		*captured = req
		return Resolved(NewResponse(statusCode).Request(&req).Build())
	}
}

// releaseCounter wraps a Body, counting Release calls.
type releaseCounter struct {
	Body
	releases int
}

func (b *releaseCounter) Release() error {
	b.releases++
	return b.Body.Release()
}

// closeCounter wraps a reader, counting Close calls.
type closeCounter struct {
	io.Reader
	closes int
}

func (c *closeCounter) Close() error {
	c.closes++
	return nil
}
