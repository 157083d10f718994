package relay

import (
	"net/http"

	"github.com/monzo/slog"
	"github.com/monzo/terrors"
	"golang.org/x/net/context"
)

// A TokenFunc asynchronously obtains a fresh access token, eg. from an authorization server. RenewalFilter
// calls it at most once per original request.
type TokenFunc func(ctx context.Context) (string, error)

// tokenRenewedAttr marks a request that was re-issued after a renewal. The bound on renewal attempts hangs
// off this attribute rather than call depth, so it holds however the chain is arranged.
const tokenRenewedAttr = "relay.token_renewed"

// RenewalFilter returns a filter which reacts to a 401 response by renewing the bearer token and
// re-issuing the request once through the rest of the chain. The 401 response's body is released before
// the retry so the underlying connection is not leaked. If the renewed token is also rejected, the 401
// propagates to the caller with an unauthorized error; there is no renewal loop. Responses with any other
// status pass through untouched, body ownership included.
func RenewalFilter(renew TokenFunc) Filter {
	return func(req Request, next ExchangeFunc) *ResponseFuture {
		return Defer(req, func(req Request) Response {
			rsp := next(req).Response()
			if rsp.Error != nil || rsp.StatusCode != http.StatusUnauthorized {
				return rsp
			}
			if req.Attribute(tokenRenewedAttr) != nil {
				rsp.Error = terrors.Unauthorized("token_renewal_exhausted", "Renewed token was not accepted", nil)
				return rsp
			}

			// The rejected response's body holds a transport resource; it must be freed before going again
			if err := rsp.Release(); err != nil {
				slog.Warn(req, "Failed to release unauthorized response body: %v", err)
			}

			token, err := renew(req.Context)
			if err != nil {
				return Response{
					Request: &req,
					Error:   terrors.WrapWithCode(err, nil, terrors.ErrUnauthorized)}
			}

			retry, err := RequestFrom(req).
				Header("Authorization", "Bearer "+token).
				Attribute(tokenRenewedAttr, true).
				Build()
			if err != nil {
				return Response{
					Request: &req,
					Error:   err}
			}
			rsp = next(retry).Response()
			if rsp.Error == nil && rsp.StatusCode == http.StatusUnauthorized {
				rsp.Error = terrors.Unauthorized("token_renewal_exhausted", "Renewed token was not accepted", nil)
			}
			return rsp
		})
	}
}
