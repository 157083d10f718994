package relay

// A Client owns an ordered filter list and the terminal ExchangeFunc the chain bottoms out at, and sends
// requests through the composition of the two. Clients are immutable: Mutate derives a new one from a
// fresh copy of the filter list, leaving the original's behaviour untouched. A built Client may be shared
// freely across concurrent requests.
type Client struct {
	filters  []Filter
	terminal ExchangeFunc
	exchange ExchangeFunc
}

// Send passes the request through the composed filter chain. It does not block, instead returning a
// ResponseFuture representing the asynchronous operation to produce the response.
func (c Client) Send(req Request) *ResponseFuture {
	return c.exchange(req)
}

// ExchangeFunc returns the client's composed exchange function. The returned function is immutable and
// safe for concurrent use.
func (c Client) ExchangeFunc() ExchangeFunc {
	return c.exchange
}

// Mutate returns a builder seeded from the client's state. The seed is a fresh copy of the filter list:
// building yields an independent Client and never alters the original.
func (c Client) Mutate() *ClientBuilder {
	return &ClientBuilder{
		filters:  append([]Filter(nil), c.filters...),
		terminal: c.terminal}
}

// A ClientBuilder accumulates a filter list and terminal exchange function; Build composes them into a
// Client.
type ClientBuilder struct {
	filters  []Filter
	terminal ExchangeFunc
}

// NewClient starts a builder for a Client. Unless overridden with Exchange, the built client sends via
// BareExchange.
func NewClient() *ClientBuilder {
	return &ClientBuilder{terminal: BareExchange}
}

// Filter appends a filter to the chain. Filters run in the order they were added; the first added is
// outermost.
func (b *ClientBuilder) Filter(f Filter) *ClientBuilder {
	b.filters = append(b.filters, f)
	return b
}

// Filters applies fn to the builder's filter list, allowing arbitrary insertion, removal or reordering.
func (b *ClientBuilder) Filters(fn func(*[]Filter)) *ClientBuilder {
	fn(&b.filters)
	return b
}

// Exchange sets the terminal ExchangeFunc.
func (b *ClientBuilder) Exchange(terminal ExchangeFunc) *ClientBuilder {
	b.terminal = terminal
	return b
}

// Build composes the chain and produces the Client. The client holds its own copy of the filter list, so
// further use of the builder cannot affect it.
func (b *ClientBuilder) Build() Client {
	filters := append([]Filter(nil), b.filters...)
	return Client{
		filters:  filters,
		terminal: b.terminal,
		exchange: ComposeFilters(filters, b.terminal)}
}
