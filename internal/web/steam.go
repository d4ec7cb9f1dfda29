// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/session"
)

// steamOpenIDEndpoint is the Steam community OpenID 2.0 provider.
const steamOpenIDEndpoint = "https://steamcommunity.com/openid/login"

// SteamHandler implements the Steam OpenID sign-in handshake.
//
// # Flow
//
// The portal never verifies the OpenID assertion itself: the callback's
// `openid.*` parameters are forwarded verbatim to the upstream backend,
// which validates them against Steam and answers with a token pair.
type SteamHandler struct {
	auth      *rest.AuthService
	manager   *session.Manager
	codec     *session.CookieCodec
	returnURL string
	secure    bool
	log       *slog.Logger
}

// NewSteamHandler constructs the Steam sign-in handler.
func NewSteamHandler(auth *rest.AuthService, manager *session.Manager, codec *session.CookieCodec, returnURL string, secure bool, log *slog.Logger) *SteamHandler {
	return &SteamHandler{
		auth:      auth,
		manager:   manager,
		codec:     codec,
		returnURL: returnURL,
		secure:    secure,
		log:       log,
	}
}

// redirect handles GET /login/steam, sending the browser to Steam.
func (handler *SteamHandler) redirect(writer http.ResponseWriter, request *http.Request) {
	realm := handler.returnURL
	if index := strings.Index(realm, "/login/steam"); index > 0 {
		realm = realm[:index]
	}

	params := url.Values{}
	params.Set("openid.ns", "http://specs.openid.net/auth/2.0")
	params.Set("openid.mode", "checkid_setup")
	params.Set("openid.return_to", handler.returnURL)
	params.Set("openid.realm", realm)
	params.Set("openid.identity", "http://specs.openid.net/auth/2.0/identifier_select")
	params.Set("openid.claimed_id", "http://specs.openid.net/auth/2.0/identifier_select")

	http.Redirect(writer, request, steamOpenIDEndpoint+"?"+params.Encode(), http.StatusSeeOther)
}

// callback handles GET /login/steam/callback.
//
// # Flow
//  1. Forward every openid.* query parameter verbatim to the backend.
//  2. Establish a session from the returned token pair.
//  3. Seal the cookie and land on the home page.
func (handler *SteamHandler) callback(writer http.ResponseWriter, request *http.Request) {
	params := url.Values{}
	for key, values := range request.URL.Query() {
		if strings.HasPrefix(key, "openid.") {
			params[key] = values
		}
	}

	if params.Get("openid.mode") == "" {
		http.Redirect(writer, request, "/login?error="+url.QueryEscape("Steam sign-in was cancelled"), http.StatusSeeOther)
		return
	}

	pair, err := handler.auth.SteamCallback(request.Context(), params)
	if err != nil {
		handler.log.Warn("steam_callback_rejected", slog.String("error", err.Error()))
		http.Redirect(writer, request, "/login?error="+url.QueryEscape("Steam sign-in failed"), http.StatusSeeOther)
		return
	}

	sess, err := handler.manager.EstablishFromTokens(request.Context(), pair)
	if err != nil {
		handler.log.Error("steam_session_failed", slog.String("error", err.Error()))
		http.Redirect(writer, request, "/login?error="+url.QueryEscape("Steam sign-in failed"), http.StatusSeeOther)
		return
	}

	sealed, err := handler.codec.Seal(sess.ID)
	if err != nil {
		handler.log.Error("cookie_seal_failed", slog.String("error", err.Error()))
		http.Redirect(writer, request, "/login?error="+url.QueryEscape("An unexpected error occurred"), http.StatusSeeOther)
		return
	}

	http.SetCookie(writer, session.NewCookie(sealed, handler.secure))
	http.Redirect(writer, request, "/", http.StatusSeeOther)
}
