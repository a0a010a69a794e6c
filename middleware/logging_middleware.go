package middleware

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// LoggingMiddleware records the connection state, packet id, and duration
// of each dispatched packet, at debug level so a normal run stays quiet.
func LoggingMiddleware(log *zap.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, state string, packetID int32) Result {
			start := time.Now()
			result := next(ctx, state, packetID)

			fields := []zap.Field{
				zap.String("state", state),
				zap.Int32("packet_id", packetID),
				zap.Duration("duration", time.Since(start)),
			}
			if result.Err != nil {
				log.Debug("packet dispatch failed", append(fields, zap.Error(result.Err))...)
			} else {
				log.Debug("packet dispatched", fields...)
			}
			return result
		}
	}
}
