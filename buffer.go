package relay

import (
	"bytes"
	"context"
	"net/http"
	"strconv"

	"github.com/monzo/terrors"
)

type bufCloser struct {
	bytes.Buffer
}

func (b *bufCloser) Close() error {
	return nil // No-op
}

// A Sink is the destination an outbound message is written to: a view of the headers that will accompany
// the body, plus the body write operation itself.
type Sink interface {
	Headers() http.Header
	// WriteBody consumes the passed body, transmitting its content. It is called at most once per message.
	WriteBody(ctx context.Context, body Body) error
}

// A SinkDecorator wraps a Sink to alter how an outbound body is written. Decorators installed on a Request
// are applied when the transport writes it out.
type SinkDecorator func(Sink) Sink

// bufferingSink aggregates the entire outbound body into one buffer before forwarding it, so that an exact
// Content-Length can be computed ahead of transmission. The whole body is materialised in memory; that is
// the trade for the precomputed length.
type bufferingSink struct {
	Sink
}

// BufferSink decorates s such that any body written through it is joined into a single chunk and announced
// with an exact Content-Length header. All other Sink behaviour passes through to s.
func BufferSink(s Sink) Sink {
	return bufferingSink{Sink: s}
}

func (s bufferingSink) WriteBody(ctx context.Context, body Body) error {
	buf, err := JoinAll(body)
	if err != nil {
		return terrors.Wrap(err, nil)
	}
	s.Headers().Set("Content-Length", strconv.Itoa(len(buf)))
	return s.Sink.WriteBody(ctx, BodyOf(buf))
}
