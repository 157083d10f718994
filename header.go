package relay

// HeaderFilter returns a filter which unconditionally sets the given header on every outgoing request,
// forwarding it otherwise unchanged.
func HeaderFilter(key, value string) Filter {
	return func(req Request, next ExchangeFunc) *ResponseFuture {
		injected, err := RequestFrom(req).Header(key, value).Build()
		if err != nil {
			return Resolved(Response{
				Request: &req,
				Error:   err})
		}
		return next(injected)
	}
}
