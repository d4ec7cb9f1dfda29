// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package cache provides the rendered page-fragment cache and its revalidation
hooks.

Pages are cached under their canonical path; server actions invalidate the
fixed set of paths their mutation affects. Entries are TTL-bounded, so even
a missed revalidation ages out.

Architecture:

  - Store: Redis-backed byte cache keyed by canonical page path.
  - Revalidator: The narrow invalidation interface handed to server actions.
  - Miss semantics: A miss is not an error; callers fall through to live fetch.
*/
package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/frageo/frageo/internal/platform/constants"
)

// Revalidator invalidates cached pages by canonical path.
//
// # Why an interface?
//
// Server actions only ever invalidate; handing them the full store would
// invite reads from the mutation path. Tests fake this interface to assert
// which paths an action touched.
type Revalidator interface {
	Revalidate(ctx context.Context, paths ...string)
}

// Store is the Redis-backed page-fragment cache.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewStore creates a page cache with the standard TTL.
func NewStore(client *redis.Client, log *slog.Logger) *Store {
	return &Store{
		client: client,
		ttl:    constants.PageCacheTTL,
		log:    log,
	}
}

/*
Get returns the cached fragment for a page path.

Description: A miss (absent or expired entry) returns ok=false, never an
error — the caller renders live and repopulates.

Parameters:
  - context: context.Context
  - path: string (canonical page path)

Returns:
  - []byte: The cached fragment
  - bool: Whether the entry existed
*/
func (store *Store) Get(context context.Context, path string) ([]byte, bool) {
	raw, err := store.client.Get(context, constants.RedisPrefixPageCache+path).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Cache connectivity trouble degrades to live rendering.
			store.log.Warn("pagecache_get_failed", slog.String("path", path), slog.Any("error", err))
		}
		return nil, false
	}
	return raw, true
}

/*
Set stores a rendered fragment under its page path.

Description: Failures are logged and swallowed — caching is an optimization,
never a correctness dependency.
*/
func (store *Store) Set(context context.Context, path string, fragment []byte) {
	err := store.client.Set(context, constants.RedisPrefixPageCache+path, fragment, store.ttl).Err()
	if err != nil {
		store.log.Warn("pagecache_set_failed", slog.String("path", path), slog.Any("error", err))
	}
}

/*
Revalidate removes the cached entries for the given page paths.

Description: Called by server actions after a successful mutation with the
fixed list of affected paths. Missing entries are not an error.
*/
func (store *Store) Revalidate(context context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}

	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = constants.RedisPrefixPageCache + path
	}

	if err := store.client.Del(context, keys...).Err(); err != nil {
		store.log.Warn("pagecache_revalidate_failed", slog.Any("error", err))
		return
	}

	store.log.Debug("pagecache_revalidated", slog.Any("paths", paths))
}

// interface guard
var _ Revalidator = (*Store)(nil)
