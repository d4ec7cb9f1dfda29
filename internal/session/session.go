// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package session implements the portal's session and token lifecycle.

It wraps the upstream auth endpoints into an explicit state machine evaluated
on every session read:

  - no-session:           no record exists for the presented cookie.
  - valid:                the access token verifies and has not expired.
  - expired-refreshable:  the access token expired; a refresh exchange is due.
  - invalid:              verification or refresh failed; the session is torn down.

Architecture:

  - Session: The merged token pair + user snapshot, stored in Redis.
  - Manager: Orchestrates establish, read/refresh, and sign-out transitions.
  - CookieCodec: Seals the session ID into a tamper-proof browser cookie.

The browser never holds tokens. It holds only a sealed session ID; the token
pair and user profile live server-side and travel as an explicit context value.
*/
package session

import (
	"time"

	"github.com/frageo/frageo/internal/backend/rest"
)

// # Session States

// State is the lifecycle position of a session at read time.
type State string

const (
	// StateNoSession means no session record exists.
	StateNoSession State = "no-session"

	// StateValid means the access token verifies and is unexpired.
	StateValid State = "valid"

	// StateExpiredRefreshable means the access token expired but the session
	// still holds a refresh token to exchange.
	StateExpiredRefreshable State = "expired-refreshable"

	// StateInvalid means verification or refresh failed and the session
	// has been torn down.
	StateInvalid State = "invalid"
)

// # Session Record

// Session is the server-side session record: the token pair merged with a
// snapshot of the user profile.
//
// On every transition the two halves are updated independently — token
// rotation must never disturb the user fields and vice versa.
type Session struct {
	// ID is the random identifier sealed into the browser cookie.
	ID string `json:"id"`

	// User is the profile snapshot fetched at establishment.
	User rest.User `json:"user"`

	// AccessToken is the short-lived credential attached to upstream calls.
	AccessToken string `json:"access_token"`

	// AccessExpiresAt is the 'exp' claim of the access token.
	AccessExpiresAt time.Time `json:"access_expires_at"`

	// RefreshToken exchanges for a new access token once it expires.
	RefreshToken string `json:"refresh_token"`

	// CreatedAt records when the session was established.
	CreatedAt time.Time `json:"created_at"`
}

// AccessExpired reports whether the access token's expiry has passed.
func (s *Session) AccessExpired(now time.Time) bool {
	return !now.Before(s.AccessExpiresAt)
}

// IsStaff reports whether the session's user may enter the admin panel.
//
// This is a rendering hint only — every admin call is re-authorized upstream.
func (s *Session) IsStaff() bool {
	if s.User.IsSuperuser {
		return true
	}
	if s.User.DisplayRole != nil && s.User.DisplayRole.IsStaff {
		return true
	}
	for _, role := range s.User.Roles {
		if role.IsStaff {
			return true
		}
	}
	return false
}
