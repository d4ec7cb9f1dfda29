// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import "context"

// Store abstracts the session record storage.
//
// # Why an interface?
//
// The production store is Redis, but the [Manager] tests exercise the state
// machine against an in-memory implementation without a running server.
type Store interface {
	// Save persists the session record, resetting its TTL.
	Save(ctx context.Context, session *Session) error

	// Find loads a session by ID. Returns apperr.NotFound when absent or expired.
	Find(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes a session record. Deleting an absent record is not an error.
	Delete(ctx context.Context, sessionID string) error
}
