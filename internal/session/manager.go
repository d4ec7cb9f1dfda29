// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/apperr"
	"github.com/frageo/frageo/pkg/uuidv7"
)

// # Contracts & Types

// AuthAPI is the slice of the upstream auth service the manager needs.
type AuthAPI interface {
	// Login exchanges credentials for a token pair.
	Login(ctx context.Context, username, password string) (*rest.TokenPair, error)

	// Refresh exchanges a refresh token for a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*rest.TokenPair, error)

	// Logout invalidates the session upstream.
	Logout(ctx context.Context, accessToken string) error
}

// UserAPI is the slice of the upstream users service the manager needs.
type UserAPI interface {
	// Me fetches the profile owning the access token.
	Me(ctx context.Context, token string) (*rest.User, error)
}

// Manager orchestrates the session state machine.
//
// # Concurrency
//
// Concurrent reads of the same expired session would each attempt a refresh,
// each rotating the token pair upstream (last write wins). The manager closes
// that race: refreshes are deduplicated through a single-flight group keyed
// by session ID, so racing readers share one exchange and one result.
type Manager struct {
	auth     AuthAPI
	users    UserAPI
	store    Store
	verifier *TokenVerifier
	log      *slog.Logger

	refreshGroup singleflight.Group

	// clock is swappable so tests can move wall-clock time.
	clock func() time.Time
}

// ManagerOption customizes a [Manager] during construction.
type ManagerOption func(*Manager)

// WithClock overrides the wall-clock source. Used by tests.
func WithClock(clock func() time.Time) ManagerOption {
	return func(m *Manager) { m.clock = clock }
}

// WithManagerLogger sets the structured logger for session events.
func WithManagerLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// NewManager constructs a [Manager] with its dependencies.
func NewManager(auth AuthAPI, users UserAPI, store Store, verifier *TokenVerifier, options ...ManagerOption) *Manager {
	manager := &Manager{
		auth:     auth,
		users:    users,
		store:    store,
		verifier: verifier,
		log:      slog.Default(),
		clock:    time.Now,
	}

	for _, option := range options {
		option(manager)
	}

	return manager
}

// # Establishment Flow

/*
Establish performs a credential login and creates a session.

Description: Calls the token endpoint, fetches the current user, and merges
tokens + profile into a persisted session record.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Session: The established session
  - error: Unauthorized or upstream failures
*/
func (manager *Manager) Establish(context context.Context, username, password string) (*Session, error) {

	// Exchange credentials for the token pair
	pair, err := manager.auth.Login(context, username, password)
	if err != nil {
		return nil, err
	}

	return manager.EstablishFromTokens(context, pair)
}

/*
EstablishFromTokens creates a session from an already-issued token pair.

Description: Shared by the credential flow and the Steam OpenID callback,
which receives its pair from the identity handshake instead of a password.

Parameters:
  - context: context.Context
  - pair: *rest.TokenPair

Returns:
  - *Session: The established session
  - error: Verification or upstream failures
*/
func (manager *Manager) EstablishFromTokens(context context.Context, pair *rest.TokenPair) (*Session, error) {

	// The backend signed this token moments ago; a verification failure here
	// means a secret mismatch and must fail loudly, not create a dead session.
	claims, err := manager.verifier.Verify(pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("session_establish_verify_failed: %w", err)
	}

	// Fetch the profile that owns the token
	user, err := manager.users.Me(context, pair.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("session_establish_me_failed: %w", err)
	}

	// Merge token pair and user snapshot into the session record.
	// Time-sortable ID keeps Redis key scans debuggable.
	session := &Session{
		ID:              newSessionID(),
		User:            *user,
		AccessToken:     pair.AccessToken,
		AccessExpiresAt: claims.ExpiresAtTime(),
		RefreshToken:    pair.RefreshToken,
		CreatedAt:       manager.clock(),
	}

	if err := manager.store.Save(context, session); err != nil {
		return nil, fmt.Errorf("session_establish_save_failed: %w", err)
	}

	manager.log.Info("session_established",
		slog.String("session_id", session.ID),
		slog.String("username", user.Username),
	)

	return session, nil
}

// # Read & Refresh Flow

/*
Read evaluates the state machine for one session ID.

Description: Loads the record, verifies the access token, and transparently
refreshes an expired token. Concurrent reads of the same expired session
share a single refresh exchange.

Parameters:
  - context: context.Context
  - sessionID: string

Returns:
  - *Session: The session when the resulting state is valid, nil otherwise
  - State: The resulting state (no-session, valid, or invalid)
  - error: Storage connectivity errors only; state transitions are not errors
*/
func (manager *Manager) Read(context context.Context, sessionID string) (*Session, State, error) {

	session, err := manager.store.Find(context, sessionID)
	if err != nil {
		// Absent or expired record: anonymous request
		if apperr.IsAppError(err) {
			return nil, StateNoSession, nil
		}
		return nil, StateNoSession, fmt.Errorf("session_read_failed: %w", err)
	}

	// Signature verification failure is fatal, never refreshable.
	if _, err := manager.verifier.Verify(session.AccessToken); err != nil {
		manager.teardown(context, session, "verify_failed")
		return nil, StateInvalid, nil
	}

	// Unexpired token: the hot path performs no upstream call at all.
	if !session.AccessExpired(manager.clock()) {
		return session, StateValid, nil
	}

	// expired-refreshable → exchange the refresh token, deduplicated per
	// session ID so racing readers produce exactly one rotation.
	refreshed, err, _ := manager.refreshGroup.Do(session.ID, func() (interface{}, error) {
		return manager.refresh(context, session)
	})
	if err != nil {
		return nil, StateInvalid, nil
	}

	return refreshed.(*Session), StateValid, nil
}

// refresh performs one refresh-token exchange and persists the rotation.
//
// Failure is fatal for the session: no retry, no backoff. A transient
// upstream outage is indistinguishable from a revoked token at this layer,
// and the teardown keeps both cases safe.
func (manager *Manager) refresh(context context.Context, session *Session) (*Session, error) {

	pair, err := manager.auth.Refresh(context, session.RefreshToken)
	if err != nil {
		manager.teardown(context, session, "refresh_failed")
		return nil, fmt.Errorf("session_refresh_failed: %w", err)
	}

	claims, err := manager.verifier.Verify(pair.AccessToken)
	if err != nil {
		manager.teardown(context, session, "refresh_verify_failed")
		return nil, fmt.Errorf("session_refresh_verify_failed: %w", err)
	}

	// Rotate the token half of the record; user fields stay untouched.
	session.AccessToken = pair.AccessToken
	session.AccessExpiresAt = claims.ExpiresAtTime()
	if pair.RefreshToken != "" {
		session.RefreshToken = pair.RefreshToken
	}

	if err := manager.store.Save(context, session); err != nil {
		return nil, fmt.Errorf("session_refresh_save_failed: %w", err)
	}

	manager.log.Debug("session_refreshed", slog.String("session_id", session.ID))

	return session, nil
}

// # Sign-Out Flow

/*
SignOut terminates a session on explicit user logout.

Description: Calls the backend logout endpoint with the current access token
attached, then removes the session record. Idempotent.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Storage failures only; upstream logout errors are swallowed
*/
func (manager *Manager) SignOut(context context.Context, session *Session) error {
	if session == nil {
		return nil
	}

	// Best effort: the upstream session may already be gone.
	if err := manager.auth.Logout(context, session.AccessToken); err != nil {
		manager.log.Debug("session_upstream_logout_failed",
			slog.String("session_id", session.ID),
			slog.Any("error", err),
		)
	}

	if err := manager.store.Delete(context, session.ID); err != nil {
		return fmt.Errorf("session_signout_delete_failed: %w", err)
	}

	manager.log.Info("session_signed_out", slog.String("session_id", session.ID))

	return nil
}

// teardown destroys a session after a fatal verification or refresh failure.
func (manager *Manager) teardown(context context.Context, session *Session, reason string) {
	if err := manager.store.Delete(context, session.ID); err != nil &&
		!errors.Is(err, context.Err()) {
		manager.log.Error("session_teardown_failed",
			slog.String("session_id", session.ID),
			slog.Any("error", err),
		)
	}

	manager.log.Warn("session_invalidated",
		slog.String("session_id", session.ID),
		slog.String("reason", reason),
	)
}

// newSessionID returns a time-sortable random session identifier.
func newSessionID() string {
	return uuidv7.New()
}
