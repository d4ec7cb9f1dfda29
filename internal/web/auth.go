// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/frageo/frageo/internal/actions"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/internal/session"
)

// AuthHandler implements the login, registration, and logout surfaces.
//
// # Scope
//
// This handler manages everything related to the session lifecycle entry
// points: credential login, account registration, and sign-out. The Steam
// OpenID handshake lives in [SteamHandler].
type AuthHandler struct {
	manager  *session.Manager
	codec    *session.CookieCodec
	actions  *actions.Actions
	renderer *Renderer
	secure   bool
	log      *slog.Logger
}

// NewAuthHandler constructs the auth handler set.
func NewAuthHandler(manager *session.Manager, codec *session.CookieCodec, actionSet *actions.Actions, renderer *Renderer, secure bool, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		manager:  manager,
		codec:    codec,
		actions:  actionSet,
		renderer: renderer,
		secure:   secure,
		log:      log,
	}
}

// # Login

// loginForm handles GET /login.
func (handler *AuthHandler) loginForm(writer http.ResponseWriter, request *http.Request) {
	if ctxutil.GetSession(request.Context()) != nil {
		http.Redirect(writer, request, "/", http.StatusSeeOther)
		return
	}

	handler.renderer.Render(writer, http.StatusOK, "login", view{
		Title: "Log in",
		Flash: request.URL.Query().Get("flash"),
		Error: request.URL.Query().Get("error"),
	})
}

// login handles POST /login.
//
// # Flow
//  1. Parse the credential form.
//  2. Establish a session: token call, current-user call, Redis record.
//  3. Seal the session ID into the cookie and redirect home.
func (handler *AuthHandler) login(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		handler.loginFailed(writer, request, "Invalid form submission")
		return
	}

	username := request.PostFormValue("username")
	password := request.PostFormValue("password")
	if username == "" || password == "" {
		handler.loginFailed(writer, request, "Username and password are required")
		return
	}

	sess, err := handler.manager.Establish(request.Context(), username, password)
	if err != nil {
		handler.log.Warn("login_rejected", slog.String("username", username))
		handler.loginFailed(writer, request, "Invalid login credentials")
		return
	}

	if !handler.setSessionCookie(writer, sess) {
		handler.loginFailed(writer, request, "An unexpected error occurred")
		return
	}

	http.Redirect(writer, request, "/", http.StatusSeeOther)
}

// loginFailed re-renders the login form with an inline error.
func (handler *AuthHandler) loginFailed(writer http.ResponseWriter, request *http.Request, message string) {
	handler.renderer.Render(writer, http.StatusUnauthorized, "login", view{
		Title: "Log in",
		Error: message,
	})
}

// setSessionCookie seals the session ID and attaches the cookie.
func (handler *AuthHandler) setSessionCookie(writer http.ResponseWriter, sess *session.Session) bool {
	sealed, err := handler.codec.Seal(sess.ID)
	if err != nil {
		handler.log.Error("cookie_seal_failed", slog.String("error", err.Error()))
		return false
	}

	http.SetCookie(writer, session.NewCookie(sealed, handler.secure))
	return true
}

// # Registration

// registerForm handles GET /register.
func (handler *AuthHandler) registerForm(writer http.ResponseWriter, request *http.Request) {
	if ctxutil.GetSession(request.Context()) != nil {
		http.Redirect(writer, request, "/", http.StatusSeeOther)
		return
	}

	handler.renderer.Render(writer, http.StatusOK, "register", view{
		Title: "Register",
		Error: request.URL.Query().Get("error"),
	})
}

// register handles POST /register.
//
// On success the new member lands on the login form with a flash notice; the
// upstream does not auto-issue tokens on registration.
func (handler *AuthHandler) register(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Redirect(writer, request, "/register?error=Invalid+form", http.StatusSeeOther)
		return
	}

	result := handler.actions.Register(request.Context(), actions.RegisterInput{
		Username:  request.PostFormValue("username"),
		Email:     request.PostFormValue("email"),
		Password:  request.PostFormValue("password"),
		Password2: request.PostFormValue("password2"),
	})

	if !result.OK() {
		message := result.Message
		if len(result.Fields) > 0 {
			message = result.Fields[0].Message
		}
		http.Redirect(writer, request, "/register?error="+url.QueryEscape(message), http.StatusSeeOther)
		return
	}

	http.Redirect(writer, request, "/login?flash="+url.QueryEscape("Account created, you can log in now"), http.StatusSeeOther)
}

// # Sign-Out

// logout handles POST /logout.
//
// Idempotent: an anonymous caller just gets the expired cookie again.
func (handler *AuthHandler) logout(writer http.ResponseWriter, request *http.Request) {
	if sess := ctxutil.GetSession(request.Context()); sess != nil {
		if err := handler.manager.SignOut(request.Context(), sess); err != nil {
			handler.log.Warn("signout_incomplete", slog.String("error", err.Error()))
		}
	}

	http.SetCookie(writer, session.ExpiredCookie(handler.secure))
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
