package relay

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/monzo/terrors"
)

// A Request describes an outbound HTTP call. Requests are immutable by convention: once built, callers
// must not alter the header or attribute maps. All mutation happens by deriving a new Request through
// RequestFrom, which copies every field into a fresh builder.
//
// A Request carries its own context; cancelling it cancels whichever pipeline operation is currently
// pending for the exchange.
type Request struct {
	context.Context
	Method string
	URL    *url.URL
	Header http.Header

	attributes   map[string]interface{}
	body         Body
	decorateSink SinkDecorator
}

// Attribute returns the value of the named request attribute, or nil if it is unset.
func (r Request) Attribute(key string) interface{} {
	return r.attributes[key]
}

// Body returns the request's body. A request built without one has an empty body.
func (r Request) Body() Body {
	if r.body == nil {
		return EmptyBody()
	}
	return r.body
}

// WriteTo writes the request's headers and body to the given sink, applying any sink decoration installed
// on the request (eg. by MultipartLengthFilter).
func (r Request) WriteTo(ctx context.Context, s Sink) error {
	if r.decorateSink != nil {
		s = r.decorateSink(s)
	}
	h := s.Headers()
	for k, vs := range r.Header {
		h[k] = append([]string(nil), vs...)
	}
	return s.WriteBody(ctx, r.Body())
}

// SendVia passes the request to the given ExchangeFunc. It does not block, instead returning a
// ResponseFuture representing the asynchronous operation to produce the response.
func (r Request) SendVia(e ExchangeFunc) *ResponseFuture {
	return e(r)
}

func (r Request) String() string {
	if r.URL == nil {
		return "Request(Unknown)"
	}
	return fmt.Sprintf("Request(%s %s)", r.Method, r.URL)
}

// A RequestBuilder accumulates the fields of a Request. Setters return the builder to allow chaining;
// Build validates and produces the immutable value.
type RequestBuilder struct {
	ctx          context.Context
	method       string
	url          *url.URL
	err          error
	header       http.Header
	attributes   map[string]interface{}
	body         Body
	decorateSink SinkDecorator
}

// NewRequest starts a builder for a request with the given method and URL.
func NewRequest(ctx context.Context, method, rawurl string) *RequestBuilder {
	if ctx == nil {
		ctx = context.Background()
	}
	b := &RequestBuilder{
		ctx:        ctx,
		method:     method,
		header:     make(http.Header, 5),
		attributes: map[string]interface{}{},
		body:       EmptyBody()}
	b.url, b.err = url.Parse(rawurl)
	return b
}

// RequestFrom starts a builder seeded with a copy of every field of an existing request. Building yields
// an independent Request; the original is never altered.
func RequestFrom(req Request) *RequestBuilder {
	return &RequestBuilder{
		ctx:          req.Context,
		method:       req.Method,
		url:          req.URL,
		header:       copyHeader(req.Header),
		attributes:   copyAttributes(req.attributes),
		body:         req.body,
		decorateSink: req.decorateSink}
}

// Method replaces the request method.
func (b *RequestBuilder) Method(method string) *RequestBuilder {
	b.method = method
	return b
}

// URL replaces the target URL.
func (b *RequestBuilder) URL(u *url.URL) *RequestBuilder {
	b.url = u
	b.err = nil
	return b
}

// Context replaces the request's context.
func (b *RequestBuilder) Context(ctx context.Context) *RequestBuilder {
	b.ctx = ctx
	return b
}

// Header sets the given header, replacing any existing values for its key.
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.header.Set(key, value)
	return b
}

// AddHeader appends a value to the given header key.
func (b *RequestBuilder) AddHeader(key, value string) *RequestBuilder {
	b.header.Add(key, value)
	return b
}

// Attribute sets a request attribute. Attributes are a metadata bag for filters; they are never
// transmitted.
func (b *RequestBuilder) Attribute(key string, value interface{}) *RequestBuilder {
	b.attributes[key] = value
	return b
}

// Body sets the request body.
func (b *RequestBuilder) Body(body Body) *RequestBuilder {
	b.body = body
	return b
}

// DecorateSink installs a decorator applied to the transport's sink when the request is written out. If a
// decorator is already installed, the new one wraps its result.
func (b *RequestBuilder) DecorateSink(d SinkDecorator) *RequestBuilder {
	if prev := b.decorateSink; prev != nil {
		b.decorateSink = func(s Sink) Sink {
			return d(prev(s))
		}
	} else {
		b.decorateSink = d
	}
	return b
}

// Build validates the accumulated fields and produces the immutable Request. A missing method or URL is
// fatal to the build.
func (b *RequestBuilder) Build() (Request, error) {
	if b.err != nil {
		return Request{}, terrors.WrapWithCode(b.err, nil, terrors.ErrBadRequest)
	}
	if b.method == "" {
		return Request{}, terrors.BadRequest("invalid_request", "Request method is required", nil)
	}
	if b.url == nil || b.url.String() == "" {
		return Request{}, terrors.BadRequest("invalid_request", "Request URL is required", nil)
	}
	ctx := b.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return Request{
		Context:      ctx,
		Method:       b.method,
		URL:          b.url,
		Header:       copyHeader(b.header),
		attributes:   copyAttributes(b.attributes),
		body:         b.body,
		decorateSink: b.decorateSink}, nil
}

func copyHeader(h http.Header) http.Header {
	h2 := make(http.Header, len(h))
	for k, vs := range h {
		h2[k] = append([]string(nil), vs...)
	}
	return h2
}

func copyAttributes(attrs map[string]interface{}) map[string]interface{} {
	attrs2 := make(map[string]interface{}, len(attrs))
	for k, v := range attrs {
		attrs2[k] = v
	}
	return attrs2
}
