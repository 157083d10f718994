package relay

import "encoding/base64"

// BasicAuthFilter returns a filter which injects an Authorization header derived from the given
// credentials on every outgoing request. The raw credential is captured by the closure and is never
// logged or exposed elsewhere.
func BasicAuthFilter(username, password string) Filter {
	cred := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	return func(req Request, next ExchangeFunc) *ResponseFuture {
		authed, err := RequestFrom(req).Header("Authorization", "Basic "+cred).Build()
		if err != nil {
			return Resolved(Response{
				Request: &req,
				Error:   err})
		}
		return next(authed)
	}
}
