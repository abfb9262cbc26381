// Copyright (c) 2026 Averix. All rights reserved.
// Author: dev@averix.app

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer/audience, token TTLs, and cookie configuration.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "averix-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// AuthThrottleLimit is the number of requests per IP allowed on the public
	// auth endpoints (register, login, forgot-password) within one window.
	AuthThrottleLimit = 20

	// AuthThrottleWindow is the fixed window for the auth endpoint throttle.
	AuthThrottleWindow = 1 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs.
	AuthIssuer = "averix.app"

	// AuthAudience is the fixed 'aud' claim stamped into every access and
	// refresh token. Verification rejects tokens minted for other audiences.
	AuthAudience = "user"

	// AccessTokenTTL is the duration a JWT access token remains valid.
	// We keep it short (15m) to bound the replay window of a stolen token.
	AccessTokenTTL = 15 * time.Minute

	// RefreshTokenTTL is the duration a refresh token (and a fresh session)
	// remains valid. Long-lived (30 days) to provide a good user experience.
	RefreshTokenTTL = 30 * 24 * time.Hour

	// AccessTokenCookieName is the cookie carrying the access token on every request.
	AccessTokenCookieName = "accessToken"

	// RefreshTokenCookieName is the cookie carrying the refresh token.
	RefreshTokenCookieName = "refreshToken"

	// RefreshEndpointPath is the only path the refresh token cookie is sent to.
	// Scoping the cookie here keeps the long-lived token off ordinary requests.
	RefreshEndpointPath = "/api/v1/auth/refresh"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixAuthThrottle = "throttle:auth:"
)
