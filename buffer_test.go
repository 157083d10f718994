package relay

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink collects everything written to it, one entry per WriteBody call, and counts the chunks
// those bodies delivered.
type recordingSink struct {
	header http.Header
	writes [][]byte
	chunks int
}

func newRecordingSink() *recordingSink {
	return &recordingSink{header: make(http.Header)}
}

func (s *recordingSink) Headers() http.Header {
	return s.header
}

func (s *recordingSink) WriteBody(ctx context.Context, body Body) error {
	buf := &bytes.Buffer{}
	for {
		c, err := body.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		s.chunks++
		buf.Write(c)
	}
	s.writes = append(s.writes, buf.Bytes())
	return nil
}

func TestBufferingSinkSingleWrite(t *testing.T) {
	sink := newRecordingSink()
	body := BodyOf([]byte("abc"), []byte("de"), []byte("f"))

	require.NoError(t, BufferSink(sink).WriteBody(context.Background(), body))

	// Exactly one write reaches the wrapped sink, carrying all the bytes as a single buffer
	require.Len(t, sink.writes, 1)
	assert.Equal(t, []byte("abcdef"), sink.writes[0])
	assert.Equal(t, 1, sink.chunks)
	assert.Equal(t, "6", sink.header.Get("Content-Length"))
}

func TestBufferingSinkEmptyBody(t *testing.T) {
	sink := newRecordingSink()
	require.NoError(t, BufferSink(sink).WriteBody(context.Background(), EmptyBody()))
	require.Len(t, sink.writes, 1)
	assert.Empty(t, sink.writes[0])
	assert.Equal(t, "0", sink.header.Get("Content-Length"))
}

func TestBufferingSinkHeadersPassThrough(t *testing.T) {
	sink := newRecordingSink()
	buffered := BufferSink(sink)
	buffered.Headers().Set("X-Custom", "value")
	assert.Equal(t, "value", sink.header.Get("X-Custom"))
}
