package relay

import "github.com/google/uuid"

// RequestIDHeader is the header RequestIDFilter injects.
const RequestIDHeader = "Request-Id"

// RequestIDFilter tags each outgoing request with a unique identifier so it can be correlated across
// systems. A request the caller already tagged passes through unchanged.
func RequestIDFilter(req Request, next ExchangeFunc) *ResponseFuture {
	if req.Header.Get(RequestIDHeader) != "" {
		return next(req)
	}
	tagged, err := RequestFrom(req).Header(RequestIDHeader, uuid.New().String()).Build()
	if err != nil {
		return Resolved(Response{
			Request: &req,
			Error:   err})
	}
	return next(tagged)
}
