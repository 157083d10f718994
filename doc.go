// Package relay implements a composable, non-blocking HTTP exchange pipeline for clients. It provides
// immutable request and response values built through copying builders, streaming bodies with explicit
// release semantics, deferred responses whose cancellation propagates to whichever operation is pending,
// and filters which nest around a terminal exchange function to intercept requests and responses.
package relay
