// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package middleware

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/internal/session"
)

// SessionReader defines the behavior needed to resolve a session ID.
//
// # Why an interface?
//
// Defining SessionReader here decouples the middleware from the session
// manager implementation, allowing us to easily inject mocks during unit
// testing.
type SessionReader interface {
	Read(ctx context.Context, sessionID string) (*session.Session, session.State, error)
}

// LoadSession resolves the sealed session cookie into a live session.
//
// # Flow
//  1. Read the session cookie. If absent, the request proceeds as anonymous.
//  2. Unseal the cookie value. A tampered or garbled cookie is cleared.
//  3. Resolve the session ID via the session manager, which transparently
//     refreshes an expired access token.
//  4. Inject the [*session.Session] into the request context.
//
// A session the manager reports as invalid has already been torn down
// upstream; the middleware only clears the client's cookie.
func LoadSession(manager SessionReader, codec *session.CookieCodec, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// 1. Anonymous access
			cookie, err := request.Cookie(constants.SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// 2. Unseal. Garbage means a stale or forged cookie.
			sessionID, err := codec.Open(cookie.Value)
			if err != nil {
				http.SetCookie(writer, session.ExpiredCookie(secure))
				next.ServeHTTP(writer, request)
				return
			}

			// 3. Resolve (and possibly refresh) the session
			sess, state, err := manager.Read(request.Context(), sessionID)
			if err != nil || state != session.StateValid {
				http.SetCookie(writer, session.ExpiredCookie(secure))
				next.ServeHTTP(writer, request)
				return
			}

			// 4. Context injection
			ctx := ctxutil.WithSession(request.Context(), sess)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireSession blocks anonymous requests.
//
// # Usage
//
// Must be registered in the router AFTER [LoadSession]. Browser requests are
// redirected to the login page rather than receiving a bare 401.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSession(request.Context()) == nil {
			http.Redirect(writer, request, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireStaff blocks requests whose session lacks a staff role.
//
// # Usage
//
// Must be registered in the router AFTER [LoadSession]. It automatically
// implies [RequireSession] so you don't need to mount both.
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		sess := ctxutil.GetSession(request.Context())

		// 1. Authentication check
		if sess == nil {
			http.Redirect(writer, request, "/login", http.StatusSeeOther)
			return
		}

		// 2. Authorization check
		if !sess.IsStaff() {
			http.Error(writer, "Insufficient permissions", http.StatusForbidden)
			return
		}

		next.ServeHTTP(writer, request)
	})
}
