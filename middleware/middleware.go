// Package middleware implements the onion-model middleware chain that
// wraps each dispatched packet with cross-cutting concerns (logging,
// per-packet timeout) without the state handlers themselves knowing about
// either.
//
// Onion model execution order:
//
//	Chain(A, B, C)(handler)  →  A(B(C(handler)))
//
//	Call:    A.before → B.before → C.before → handler
//	Return:  handler → C.after → B.after → A.after
package middleware

import "context"

// Result is what dispatching a single packet produced: whether the
// connection's work is now done, and any error encountered.
type Result struct {
	Done bool
	Err  error
}

// HandlerFunc dispatches one packet already identified by state and id.
// The state and id are passed through (rather than bundled into a request
// struct) purely so LoggingMiddleware has something to log without
// depending on the packet registry.
type HandlerFunc func(ctx context.Context, state string, packetID int32) Result

// Middleware wraps a handler to add behavior around it.
type Middleware func(next HandlerFunc) HandlerFunc

// Chain composes middlewares so the first one in the list is the
// outermost layer: executed first on the way in, last on the way out.
//
//	chain := Chain(Logging, Timeout)
//	handler := chain(dispatch)
//	// Execution: Logging -> Timeout -> dispatch -> Timeout -> Logging
func Chain(middlewares ...Middleware) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}
