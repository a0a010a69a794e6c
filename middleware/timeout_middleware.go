package middleware

import (
	"context"
	"fmt"
	"time"
)

// TimeoutMiddleware bounds how long a single packet's handler may run. A
// blocked template render or a wedged write will eventually trip this
// instead of hanging the connection's goroutine forever.
//
// The handler goroutine is not cancelled when the timeout fires — it
// keeps running in the background. The timeout only controls when the
// caller gives up waiting on it.
func TimeoutMiddleware(timeout time.Duration) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, state string, packetID int32) Result {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			done := make(chan Result, 1)
			go func() { done <- next(ctx, state, packetID) }()

			select {
			case result := <-done:
				return result
			case <-ctx.Done():
				return Result{Done: true, Err: fmt.Errorf("packet 0x%02X in state %s: %w", packetID, state, ctx.Err())}
			}
		}
	}
}
