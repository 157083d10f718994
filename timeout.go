package relay

import (
	"strconv"
	"time"

	"github.com/monzo/terrors"
	"golang.org/x/net/context"
)

// TimeoutFilter returns a filter which bounds how long an exchange may take. The default can be overridden
// per request by a Timeout header holding a duration in milliseconds. On timeout the pending operation is
// cancelled and any response it produced is released.
func TimeoutFilter(defaultTimeout time.Duration) Filter {
	return func(req Request, next ExchangeFunc) *ResponseFuture {
		timeout := defaultTimeout
		if t, err := strconv.Atoi(req.Header.Get("Timeout")); err == nil {
			timeout = time.Duration(t) * time.Millisecond
		}

		ctx, cancel := context.WithTimeout(req.Context, timeout)
		req.Context = ctx
		return Defer(req, func(req Request) Response {
			defer cancel()
			f := next(req)
			select {
			case <-f.WaitC():
				return f.Response()
			case <-ctx.Done():
				f.Cancel()
				f.Response().Release()
				return Response{
					Request: &req,
					Error:   terrors.Timeout("", "Request timed out", nil)}
			}
		})
	}
}
