// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package constants provides centralized, immutable values for the entire portal.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie configuration and token lifetimes.
  - Cache Paths: Canonical page identifiers used for revalidation.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "frageo-portal"
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

	// BackendRequestTimeout bounds a single upstream API call issued by the pipeline.
	BackendRequestTimeout = 15 * time.Second
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
)

// # Sessions

const (
	// SessionCookieName is the name of the sealed cookie carrying the session ID.
	SessionCookieName = "frageo_session"

	// SessionCookiePath scopes the session cookie to the whole portal.
	SessionCookiePath = "/"

	// SessionTTL is the server-side lifetime of a session record. It tracks the
	// refresh token lifetime: once the refresh token is dead the record is useless.
	SessionTTL = 30 * 24 * time.Hour
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderOrigin        = "Origin"
)

// # Cache Paths (Revalidation Taxonomy)

// Canonical page paths used as cache keys and revalidation targets.
// Server actions reference these when invalidating affected pages.
const (
	PathHome         = "/"
	PathUsers        = "/users"
	PathForum        = "/forum"
	PathAdminUsers   = "/admin/users"
	PathAdminRoles   = "/admin/roles"
	PathAdminServers = "/admin/servers"
)

// # Redis Prefixes (Store Taxonomy)

const (
	RedisPrefixSession   = "session:"
	RedisPrefixPageCache = "pagecache:"
)

// # Page Cache

const (
	// PageCacheTTL bounds how stale a cached page fragment may get even
	// without an explicit revalidation.
	PageCacheTTL = 5 * time.Minute
)

// # Realtime Chat

const (
	// ChatHistoryLimit caps the in-memory message list held by the chat client.
	ChatHistoryLimit = 200

	// ChatReconnectInitialInterval is the first reconnect delay after a drop.
	ChatReconnectInitialInterval = 500 * time.Millisecond

	// ChatReconnectMaxInterval caps the exponential reconnect delay.
	ChatReconnectMaxInterval = 30 * time.Second

	// ChatReconnectMaxAttempts bounds consecutive failed reconnects before giving up.
	ChatReconnectMaxAttempts = 10
)
