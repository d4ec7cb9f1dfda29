// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frageo/frageo/internal/backend"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/pkg/pointer"
)

// newTestServices spins up a fake upstream and returns services bound to it.
func newTestServices(t *testing.T, handler http.HandlerFunc) *rest.Services {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return rest.NewServices(backend.NewClient(server.URL))
}

/*
TestAuthService_Login verifies the token endpoint mapping: form-encoded
credentials in, token pair out, 401 mapped to a client-safe message.
*/
func TestAuthService_Login(t *testing.T) {
	services := newTestServices(t, func(writer http.ResponseWriter, request *http.Request) {
		require.Equal(t, http.MethodPost, request.Method)
		require.Equal(t, "/auth/token", request.URL.Path)

		require.NoError(t, request.ParseMultipartForm(1<<20))
		if request.FormValue("password") != "hunter22" {
			writer.WriteHeader(http.StatusUnauthorized)
			return
		}

		_ = json.NewEncoder(writer).Encode(rest.TokenPair{
			AccessToken:  "acc-1",
			RefreshToken: "ref-1",
			TokenType:    "bearer",
		})
	})

	// 1. Valid credentials return the pair
	pair, err := services.Auth.Login(context.Background(), "jsmith", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "acc-1", pair.AccessToken)
	assert.Equal(t, "ref-1", pair.RefreshToken)

	// 2. A 401 maps to the declared message
	_, err = services.Auth.Login(context.Background(), "jsmith", "wrong")
	apiErr := backend.IsAPIError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid login credentials", apiErr.Message)
}

/*
TestAuthService_SteamCallback verifies that every openid.* parameter is
forwarded verbatim to the backend.
*/
func TestAuthService_SteamCallback(t *testing.T) {
	var received url.Values
	services := newTestServices(t, func(writer http.ResponseWriter, request *http.Request) {
		received = request.URL.Query()
		_ = json.NewEncoder(writer).Encode(rest.TokenPair{AccessToken: "acc"})
	})

	params := url.Values{}
	params.Set("openid.mode", "id_res")
	params.Set("openid.sig", "c2ln")
	params.Set("openid.claimed_id", "https://steamcommunity.com/openid/id/7656119")

	_, err := services.Auth.SteamCallback(context.Background(), params)
	require.NoError(t, err)

	assert.Equal(t, "id_res", received.Get("openid.mode"))
	assert.Equal(t, "c2ln", received.Get("openid.sig"))
	assert.Equal(t, "https://steamcommunity.com/openid/id/7656119", received.Get("openid.claimed_id"))
}

/*
TestForumService_Threads verifies pagination and category filter mapping.
*/
func TestForumService_Threads(t *testing.T) {
	services := newTestServices(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/forum/threads", request.URL.Path)
		assert.Equal(t, "3", request.URL.Query().Get("category"))
		assert.Equal(t, "2", request.URL.Query().Get("page"))

		_ = json.NewEncoder(writer).Encode(rest.Page[rest.Thread]{
			Items: []rest.Thread{{ID: 7, Title: "Server rules"}},
			Total: 1, Page: 2, Size: 20,
		})
	})

	result, err := services.Forum.Threads(context.Background(), 3, 2, 20)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Server rules", result.Items[0].Title)
}

/*
TestAdminService_UpdateUser verifies that nil fields are omitted from the
partial update payload.
*/
func TestAdminService_UpdateUser(t *testing.T) {
	var received map[string]any
	services := newTestServices(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPatch, request.Method)
		assert.Equal(t, "/admin/users/5", request.URL.Path)
		assert.Equal(t, "Bearer admin-token", request.Header.Get("Authorization"))

		require.NoError(t, json.NewDecoder(request.Body).Decode(&received))
		_ = json.NewEncoder(writer).Encode(rest.User{ID: 5, Username: "renamed"})
	})

	user, err := services.Admin.UpdateUser(context.Background(), "admin-token", 5, rest.UserUpdate{
		Username: pointer.To("renamed"),
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed", user.Username)

	// Only the set field travels
	assert.Equal(t, map[string]any{"username": "renamed"}, received)
}
