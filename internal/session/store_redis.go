// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/frageo/frageo/internal/platform/apperr"
	"github.com/frageo/frageo/internal/platform/constants"
)

// RedisStore implements [Store] using Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

/*
Save persists the session record as JSON with the standard session TTL.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Serialization or execution errors
*/
func (store *RedisStore) Save(context context.Context, session *Session) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + session.ID

	encoded, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// Set the record with TTL; every save resets the sliding window
	if err := store.client.Set(context, key, encoded, constants.SessionTTL).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	return nil
}

/*
Find loads a session record by ID.

Description: Returns apperr.NotFound if the record is absent or expired.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Session: The stored record
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisStore) Find(context context.Context, sessionID string) (*Session, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + sessionID

	raw, err := store.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_find_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(raw, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return session, nil
}

/*
Delete removes the session record from Redis.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - error: Deletion failures
*/
func (store *RedisStore) Delete(context context.Context, sessionID string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + sessionID

	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
