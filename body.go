package relay

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"

	"github.com/monzo/terrors"
)

// A Body represents message content as a lazy sequence of binary chunks. Bodies are not restartable: each
// instance may be traversed at most once, by exactly one consumer.
//
// A received body holds a transport resource (eg. a pooled connection) until it has been fully consumed or
// released. Whoever obtains a body is responsible for doing one or the other on every code path; a filter
// that inspects a body must release it, or forward a replacement that will be consumed downstream.
type Body interface {
	// Next returns the next chunk of content, or io.EOF once the body is exhausted. Ownership of the
	// returned slice passes to the caller.
	Next() ([]byte, error)
	// Release discards any remaining content without materialising it, freeing the underlying transport
	// resource. Calling it on an exhausted or already-released body is a no-op.
	Release() error
}

type chunkBody struct {
	chunks [][]byte
	pos    int
}

func (b *chunkBody) Next() ([]byte, error) {
	if b.pos >= len(b.chunks) {
		return nil, io.EOF
	}
	c := b.chunks[b.pos]
	b.pos++
	return c, nil
}

func (b *chunkBody) Release() error {
	b.pos = len(b.chunks)
	return nil
}

type readerBody struct {
	r        io.ReadCloser
	released bool
}

func (b *readerBody) Next() ([]byte, error) {
	if b.released {
		return nil, io.EOF
	}
	buf := make([]byte, 32*1024)
	n, err := b.r.Read(buf)
	if n > 0 {
		return buf[:n], nil
	}
	if err == nil || err == io.EOF {
		b.released = true
		b.r.Close()
		return nil, io.EOF
	}
	return nil, terrors.Wrap(err, nil)
}

func (b *readerBody) Release() error {
	if b.released {
		return nil
	}
	b.released = true
	_, err := io.Copy(ioutil.Discard, b.r)
	if cerr := b.r.Close(); err == nil {
		err = cerr
	}
	return terrors.Wrap(err, nil)
}

type emptyBody struct{}

func (emptyBody) Next() ([]byte, error) { return nil, io.EOF }
func (emptyBody) Release() error        { return nil }

// EmptyBody returns a Body with no content.
func EmptyBody() Body {
	return emptyBody{}
}

// BodyOf returns a Body which delivers the given chunks in order.
func BodyOf(chunks ...[]byte) Body {
	return &chunkBody{chunks: chunks}
}

// BodyFromReader returns a Body which streams chunks from r as they become available. Releasing the body
// drains and closes r.
func BodyFromReader(r io.ReadCloser) Body {
	return &readerBody{r: r}
}

// JoinAll drains the body completely, aggregating its chunks into one contiguous buffer. The body is fully
// consumed afterwards; on error the remainder is released.
func JoinAll(b Body) ([]byte, error) {
	buf := &bytes.Buffer{}
	for {
		c, err := b.Next()
		if err == io.EOF {
			return buf.Bytes(), nil
		} else if err != nil {
			b.Release()
			return nil, terrors.Wrap(err, nil)
		}
		buf.Write(c)
	}
}

// WriteAll writes every chunk of the body to w in order, checking for cancellation between chunks. The
// body is always released before WriteAll returns, whether or not the write succeeded.
func WriteAll(ctx context.Context, w io.Writer, b Body) (written int64, err error) {
	defer b.Release()
	for {
		select {
		case <-ctx.Done():
			return written, terrors.Wrap(ctx.Err(), nil)
		default:
		}

		c, cerr := b.Next()
		if cerr == io.EOF {
			return written, nil
		} else if cerr != nil {
			return written, terrors.Wrap(cerr, nil)
		}
		n, werr := w.Write(c)
		written += int64(n)
		if werr != nil {
			return written, terrors.Wrap(werr, nil)
		}
	}
}
