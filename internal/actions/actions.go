// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package actions implements the portal's server actions: the typed mutation
wrappers sitting between form submissions and the API client.

Every action follows the same contract:

 1. Validate the input schema; reject with field-level errors before any
    network call.
 2. Require an established session where the mutation demands one — an
    unauthenticated call fails closed with a generic error, again before
    any network call.
 3. Issue exactly one API client call.
 4. On success, revalidate the fixed list of affected page caches.

# Error Policy

Recognized errors (validation, typed API errors) surface their client-safe
message verbatim. Anything else is masked to [apperr.MaskedMessage] so
unexpected internal detail never reaches the page.
*/
package actions

import (
	"context"
	"io"
	"log/slog"

	"github.com/frageo/frageo/internal/backend"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/cache"
	"github.com/frageo/frageo/internal/platform/apperr"
	"github.com/frageo/frageo/internal/session"
)

// # Result Envelope

// Result is the uniform outcome handed back to the rendering layer.
//
// Exactly one of Data or Message is meaningful: a failed action carries a
// user-facing message (plus optional field errors) and zero data.
type Result[T any] struct {
	// Data is the action's payload on success.
	Data T

	// Message is the user-facing error, empty on success.
	Message string

	// Fields holds per-field validation failures.
	Fields []apperr.FieldError
}

// OK reports whether the action succeeded.
func (r Result[T]) OK() bool {
	return r.Message == "" && len(r.Fields) == 0
}

// ok wraps a successful payload.
func ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// fail converts any error into a client-safe [Result].
//
// Recognized shapes keep their message; everything else is masked.
func fail[T any](err error) Result[T] {
	// Validation and other portal-typed errors
	if appErr := apperr.As(err); appErr != nil {
		return Result[T]{Message: appErr.Message, Fields: appErr.Details}
	}

	// Typed upstream API errors: backend-supplied detail first, then the
	// resolved status message.
	if apiErr := backend.IsAPIError(err); apiErr != nil {
		if detail := apiErr.Detail(); detail != "" {
			return Result[T]{Message: detail}
		}
		return Result[T]{Message: apiErr.Message}
	}

	// Unknown errors never leak their text.
	return Result[T]{Message: apperr.MaskedMessage}
}

// failUnauthenticated is the fail-closed result for session-requiring actions.
func failUnauthenticated[T any]() Result[T] {
	return Result[T]{Message: "Authentication required"}
}

// # Upstream Contracts
//
// Narrow interfaces mirror the rest services so action tests can fake the
// upstream without a server.

// AuthAPI is the slice of the auth service the actions need.
type AuthAPI interface {
	Register(ctx context.Context, username, email, password string) (*rest.User, error)
}

// UsersAPI is the slice of the users service the actions need.
type UsersAPI interface {
	ChangeUsername(ctx context.Context, token, username string) (*rest.User, error)
	RequestEmailChange(ctx context.Context, token, email string) error
	ConfirmEmailChange(ctx context.Context, token, code string) error
	UploadAvatar(ctx context.Context, token, filename string, image io.Reader) (*rest.User, error)
	DeleteAvatar(ctx context.Context, token string) error
}

// ForumAPI is the slice of the forum service the actions need.
type ForumAPI interface {
	CreateThread(ctx context.Context, token, title, content string, categoryID int) (*rest.Thread, error)
	CreatePost(ctx context.Context, token string, threadID int, content string) (*rest.Post, error)
}

// AdminAPI is the slice of the admin service the actions need.
type AdminAPI interface {
	CreateUser(ctx context.Context, token, username, email, password string) (*rest.User, error)
	UpdateUser(ctx context.Context, token string, userID int, update rest.UserUpdate) (*rest.User, error)
	DeleteUser(ctx context.Context, token string, userID int) error
	CreateRole(ctx context.Context, token, name, color string, isStaff bool, scopeIDs []int) (*rest.Role, error)
	UpdateRole(ctx context.Context, token string, roleID int, name, color string, isStaff bool, scopeIDs []int) (*rest.Role, error)
	DeleteRole(ctx context.Context, token string, roleID int) error
	CreateServer(ctx context.Context, token, name, ip string, port int, apiURL string) (*rest.Server, error)
	UpdateServer(ctx context.Context, token string, serverID int, name, ip string, port int, apiURL string) (*rest.Server, error)
	DeleteServer(ctx context.Context, token string, serverID int) error
	CreateCategory(ctx context.Context, token, name, description, categoryType string) (*rest.Category, error)
	DeleteCategory(ctx context.Context, token string, categoryID int) error
	BanPlayer(ctx context.Context, token, steamID, reason string) error
	UnbanPlayer(ctx context.Context, token, steamID string) error
}

// Actions bundles every server action with its dependencies.
type Actions struct {
	auth        AuthAPI
	users       UsersAPI
	forum       ForumAPI
	admin       AdminAPI
	revalidator cache.Revalidator
	log         *slog.Logger
}

// NewActions constructs the action set.
func NewActions(auth AuthAPI, users UsersAPI, forum ForumAPI, admin AdminAPI, revalidator cache.Revalidator, log *slog.Logger) *Actions {
	return &Actions{
		auth:        auth,
		users:       users,
		forum:       forum,
		admin:       admin,
		revalidator: revalidator,
		log:         log,
	}
}

// requireSession guards a mutation behind an established session.
func requireSession(sess *session.Session) bool {
	return sess != nil && sess.AccessToken != ""
}
