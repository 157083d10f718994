package relay

import (
	"bytes"
	"fmt"
	"net/http"
)

// A Response is the result of an exchange. Any HTTP status code, including 4xx and 5xx, is a successful
// exchange; Error is set only when the exchange itself failed (eg. a transport-level fault) or when a
// filter translated the outcome into a failure.
//
// Like Requests, Responses are immutable by convention, though the body is inherently consumable: it must
// be fully read or released exactly once along every code path.
type Response struct {
	StatusCode int
	Header     http.Header
	Error      error
	Request    *Request // The Request that this responds to

	body Body
}

// Body returns the response body. A response built without one has an empty body.
func (r Response) Body() Body {
	if r.body == nil {
		return EmptyBody()
	}
	return r.body
}

// Release discards the body's remaining content, freeing the underlying transport resource. It is safe to
// call on an already-consumed or bodiless response, and safe to call more than once.
func (r Response) Release() error {
	if r.body == nil {
		return nil
	}
	return r.body.Release()
}

// BodyBytes fully consumes the body and returns its content as one buffer.
func (r Response) BodyBytes() ([]byte, error) {
	return JoinAll(r.Body())
}

func (r Response) String() string {
	b := new(bytes.Buffer)
	fmt.Fprintf(b, "Response(%d", r.StatusCode)
	if r.Error != nil {
		fmt.Fprintf(b, ", error: %v", r.Error)
	}
	fmt.Fprint(b, ")")
	return b.String()
}

// A ResponseBuilder accumulates the fields of a Response; setters return the builder to allow chaining.
type ResponseBuilder struct {
	statusCode int
	header     http.Header
	err        error
	request    *Request
	body       Body
}

// NewResponse starts a builder for a response with the given status code.
func NewResponse(statusCode int) *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: statusCode,
		header:     make(http.Header, 5),
		body:       EmptyBody()}
}

// ResponseFrom starts a builder seeded with a copy of an existing response's fields. The body is carried
// over as-is: a body cannot be copied, so consumption ownership moves to the response built last.
func ResponseFrom(rsp Response) *ResponseBuilder {
	return &ResponseBuilder{
		statusCode: rsp.StatusCode,
		header:     copyHeader(rsp.Header),
		err:        rsp.Error,
		request:    rsp.Request,
		body:       rsp.body}
}

// StatusCode replaces the status code.
func (b *ResponseBuilder) StatusCode(statusCode int) *ResponseBuilder {
	b.statusCode = statusCode
	return b
}

// Header sets the given header, replacing any existing values for its key.
func (b *ResponseBuilder) Header(key, value string) *ResponseBuilder {
	b.header.Set(key, value)
	return b
}

// Error sets the response's error.
func (b *ResponseBuilder) Error(err error) *ResponseBuilder {
	b.err = err
	return b
}

// Request records the request this responds to.
func (b *ResponseBuilder) Request(req *Request) *ResponseBuilder {
	b.request = req
	return b
}

// Body sets the response body.
func (b *ResponseBuilder) Body(body Body) *ResponseBuilder {
	b.body = body
	return b
}

// Build produces the Response.
func (b *ResponseBuilder) Build() Response {
	return Response{
		StatusCode: b.statusCode,
		Header:     copyHeader(b.header),
		Error:      b.err,
		Request:    b.request,
		body:       b.body}
}
