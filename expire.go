package relay

import "github.com/monzo/terrors"

// ExpirationFilter provides admission control; it rejects requests whose context has already been
// cancelled, without spending a transport call.
func ExpirationFilter(req Request, next ExchangeFunc) *ResponseFuture {
	select {
	case <-req.Context.Done():
		return Resolved(Response{
			Request: &req,
			Error:   terrors.BadRequest("expired", "Request has expired", nil)})
	default:
		return next(req)
	}
}
