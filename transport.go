package relay

import (
	"context"
	"net/http"
	"strconv"

	"github.com/monzo/terrors"
)

// memorySink is the Sink the transport writes outbound messages to. The body is aggregated in memory
// before transmission; this protects the connection from half-written streaming bodies but does not allow
// streaming requests.
type memorySink struct {
	header http.Header
	buf    bufCloser
}

func (s *memorySink) Headers() http.Header {
	return s.header
}

func (s *memorySink) WriteBody(ctx context.Context, body Body) error {
	_, err := WriteAll(ctx, &s.buf, body)
	return err
}

// Transport returns a terminal ExchangeFunc which sends requests via the given net/http RoundTripper. Only
// use this if you need to do something custom at the transport level.
//
// Any response from the remote, whatever its status code, completes the exchange successfully. Only a
// transport-level fault produces a failed response.
func Transport(rt http.RoundTripper) ExchangeFunc {
	return func(req Request) *ResponseFuture {
		return Defer(req, func(req Request) Response {
			sink := &memorySink{header: make(http.Header, 5)}
			if err := req.WriteTo(req.Context, sink); err != nil {
				return Response{
					Request: &req,
					Error:   terrors.Wrap(err, nil)}
			}

			httpReq := &http.Request{
				Method:        req.Method,
				URL:           req.URL,
				Header:        sink.header,
				Body:          &sink.buf,
				ContentLength: int64(sink.buf.Len())}
			// A sink decorator may have announced an exact length; net/http transmits it from the
			// ContentLength field, not the header map
			if cl := sink.header.Get("Content-Length"); cl != "" {
				if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
					httpReq.ContentLength = n
				}
				sink.header.Del("Content-Length")
			}

			httpRsp, err := rt.RoundTrip(httpReq.WithContext(req.Context))
			if err != nil {
				return Response{
					Request: &req,
					Error:   terrors.NewInternalWithCause(err, "Transport failure", nil, "transport")}
			}

			rsp := Response{
				StatusCode: httpRsp.StatusCode,
				Header:     httpRsp.Header,
				Request:    &req,
				body:       EmptyBody()}
			if httpRsp.Body != nil {
				rsp.body = BodyFromReader(httpRsp.Body)
			}
			return rsp
		})
	}
}

// BareExchange sends requests via http.DefaultTransport.
func BareExchange(req Request) *ResponseFuture {
	return Transport(http.DefaultTransport)(req)
}
