package relay

// An ExchangeFunc performs an HTTP exchange: given a request, it returns a deferred response. The terminal
// implementation transmits the request over the network; composed implementations nest filters around
// that.
//
// Any HTTP status code is a successful exchange. Only transport-level failure (connection refused,
// timeout) yields a failed response, carried in Response.Error. An ExchangeFunc never panics
// synchronously; all failure is delivered through the future.
type ExchangeFunc func(req Request) *ResponseFuture

// Filter functions compose with ExchangeFuncs to modify their behaviour. They might change the outgoing
// request or the eventual response, re-issue a request, or elect not to call the next ExchangeFunc at all.
//
// Filters are stateless with respect to the chain; anything a filter needs to remember (eg. an auth token)
// is captured by closure or held in an external store with its own synchronisation.
type Filter func(req Request, next ExchangeFunc) *ResponseFuture

// Filter vends a new ExchangeFunc wrapped in the passed filter.
func (e ExchangeFunc) Filter(f Filter) ExchangeFunc {
	return func(req Request) *ResponseFuture {
		return f(req, e)
	}
}

// ComposeFilters nests the given filters around a terminal ExchangeFunc, with filters[0] outermost.
//
// The fold runs from the terminal outward, so each filter's next function captures exactly the remaining
// suffix of the chain: one closure per filter, and no references to any previous composition.
func ComposeFilters(filters []Filter, terminal ExchangeFunc) ExchangeFunc {
	e := terminal
	for i := len(filters) - 1; i >= 0; i-- {
		e = e.Filter(filters[i])
	}
	return e
}
