// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"
	"net/url"

	"github.com/frageo/frageo/internal/backend"
)

// AuthService maps the authentication endpoints of the upstream API.
type AuthService struct {
	client *backend.Client
}

// NewAuthService constructs an [AuthService] over the shared pipeline.
func NewAuthService(client *backend.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for a token pair via the token endpoint.
//
// The endpoint follows the OAuth2 password flow and expects form fields,
// so credentials travel as form-data rather than JSON.
func (service *AuthService) Login(context context.Context, username, password string) (*TokenPair, error) {
	var pair TokenPair
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/token",
		FormData: map[string]any{
			"username": username,
			"password": password,
		},
		Errors: map[int]string{
			401: "Invalid login credentials",
		},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Register creates a new account.
func (service *AuthService) Register(context context.Context, username, email, password string) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Body: map[string]any{
			"username":  username,
			"email":     email,
			"password":  password,
			"password2": password,
		},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Refresh exchanges a refresh token for a fresh token pair.
func (service *AuthService) Refresh(context context.Context, refreshToken string) (*TokenPair, error) {
	var pair TokenPair
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/token/refresh",
		Body:   map[string]any{"refresh_token": refreshToken},
		Errors: map[int]string{
			401: "Refresh token is invalid or expired",
		},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout invalidates the session upstream. The access token identifies it.
func (service *AuthService) Logout(context context.Context, accessToken string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Token:  accessToken,
	}, nil)
}

// SteamCallback forwards the OpenID callback parameters verbatim for
// verification and receives a token pair on success.
//
// Every openid.* parameter must reach the backend untouched — the signature
// covers the exact parameter set the identity provider returned.
func (service *AuthService) SteamCallback(context context.Context, params url.Values) (*TokenPair, error) {
	query := make(map[string]any, len(params))
	for key := range params {
		query[key] = params.Get(key)
	}

	var pair TokenPair
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/auth/callback/steam",
		Query:  query,
		Errors: map[int]string{
			401: "Steam identity could not be verified",
		},
	}, &pair)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}
