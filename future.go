package relay

import (
	"context"

	"github.com/monzo/slog"
)

// A ResponseFuture represents an exchange in flight: a deferred Response which resolves exactly once.
type ResponseFuture struct {
	cancel context.CancelFunc
	done   <-chan struct{} // guards access to r
	r      Response
}

// WaitC returns a channel which closes once the response is available.
func (f *ResponseFuture) WaitC() <-chan struct{} {
	return f.done
}

// Response blocks until the response is available and returns it.
func (f *ResponseFuture) Response() Response {
	<-f.done
	return f.r
}

// Cancel aborts the exchange. Cancellation propagates through the request's context to whichever pipeline
// operation is currently pending; if a response had already been obtained but not yet collected, its body
// is released.
func (f *ResponseFuture) Cancel() {
	f.cancel()
}

// Resolved returns a future which already holds rsp. Filters that short-circuit without calling their next
// function use this to satisfy the deferred contract.
func Resolved(rsp Response) *ResponseFuture {
	done := make(chan struct{})
	close(done)
	return &ResponseFuture{
		cancel: func() {},
		done:   done,
		r:      rsp}
}

// Defer runs work on its own goroutine, returning a future for its result. The request's context is
// replaced with a cancellable child scope, so Cancel on the returned future reaches every operation the
// work starts with that request.
func Defer(req Request, work func(Request) Response) *ResponseFuture {
	ctx, cancel := context.WithCancel(req.Context)
	req.Context = ctx
	done := make(chan struct{})
	f := &ResponseFuture{
		done:   done,
		cancel: cancel}
	go func() {
		defer close(done)
		defer cancel() // if already cancelled on escape, this is a no-op
		rsp := work(req)
		if ctx.Err() != nil {
			// The caller has gone away; the transport resource behind the body must still be freed.
			if err := rsp.Release(); err != nil {
				slog.Warn(req, "Failed to release abandoned response body: %v", err)
			}
		}
		f.r = rsp
	}()
	return f
}
