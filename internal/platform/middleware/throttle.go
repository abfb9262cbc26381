// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/averix-dev/averix/internal/platform/constants"
	"github.com/averix-dev/averix/internal/platform/ctxutil"
)

// Throttle limits requests per IP using a Redis fixed-window counter.
//
// # Why Redis?
//
// The in-process [RateLimit] bucket resets on restart and is per-instance.
// Credential-guessing protection on the public auth endpoints must hold
// across the whole fleet, so the counter lives in Redis with the window
// enforced by key TTL.
//
// # Failure Mode
//
// Redis unavailability fails open: blocking all logins because the cache is
// down would turn a degraded dependency into a full outage.
func Throttle(client *redis.Client, limit int64, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			key := constants.RedisPrefixAuthThrottle + RealIP(request)
			ctx := request.Context()

			// INCR + EXPIRE in one round trip. The TTL is only stamped when
			// the key is first created, giving a fixed window per IP.
			pipe := client.TxPipeline()
			counter := pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)

			if _, err := pipe.Exec(ctx); err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "auth_throttle_unavailable",
					slog.String("error", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			if counter.Val() > limit {
				writeError(writer, http.StatusTooManyRequests, "TOO_MANY_REQUESTS", "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
