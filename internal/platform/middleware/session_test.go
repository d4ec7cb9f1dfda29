// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/internal/session"
)

// fakeReader resolves a single known session ID.
type fakeReader struct {
	sessions map[string]*session.Session
	reads    int
}

func (r *fakeReader) Read(_ context.Context, sessionID string) (*session.Session, session.State, error) {
	r.reads++
	if sess, found := r.sessions[sessionID]; found {
		return sess, session.StateValid, nil
	}
	return nil, session.StateNoSession, nil
}

func testCodec(t *testing.T) *session.CookieCodec {
	t.Helper()
	var key [32]byte
	copy(key[:], "0123456789abcdef0123456789abcdef")
	return session.NewCookieCodec(key)
}

// captureSession is a terminal handler that records what the middleware injected.
func captureSession(captured **session.Session) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		*captured = ctxutil.GetSession(request.Context())
		writer.WriteHeader(http.StatusOK)
	})
}

func TestLoadSession_ValidCookie(t *testing.T) {
	codec := testCodec(t)
	reader := &fakeReader{sessions: map[string]*session.Session{
		"sess-1": {ID: "sess-1", AccessToken: "acc", User: rest.User{ID: 7, Username: "jsmith"}},
	}}

	// 1. Seal a legitimate session ID into a cookie
	sealed, err := codec.Seal("sess-1")
	require.NoError(t, err)

	var captured *session.Session
	handler := LoadSession(reader, codec, false)(captureSession(&captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: sealed})
	recorder := httptest.NewRecorder()

	// 2. The session must land in the handler's context
	handler.ServeHTTP(recorder, request)

	require.NotNil(t, captured)
	assert.Equal(t, "jsmith", captured.User.Username)
	assert.Equal(t, 1, reader.reads)
}

func TestLoadSession_NoCookie(t *testing.T) {
	reader := &fakeReader{}

	var captured *session.Session
	handler := LoadSession(reader, testCodec(t), false)(captureSession(&captured))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	// Anonymous: no session, no store round trip
	assert.Nil(t, captured)
	assert.Equal(t, 0, reader.reads)
}

func TestLoadSession_TamperedCookie(t *testing.T) {
	reader := &fakeReader{}

	var captured *session.Session
	handler := LoadSession(reader, testCodec(t), false)(captureSession(&captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: "not-a-sealed-value"})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	// 1. The request proceeds anonymously without hitting the store
	assert.Nil(t, captured)
	assert.Equal(t, 0, reader.reads)

	// 2. The bad cookie is cleared on the response
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLoadSession_UnknownSession(t *testing.T) {
	codec := testCodec(t)
	reader := &fakeReader{}

	sealed, err := codec.Seal("sess-gone")
	require.NoError(t, err)

	var captured *session.Session
	handler := LoadSession(reader, codec, false)(captureSession(&captured))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: sealed})
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Nil(t, captured)
	require.Len(t, recorder.Result().Cookies(), 1)
}

func TestRequireSession_Anonymous(t *testing.T) {
	handler := RequireSession(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/settings", nil))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
}

func TestRequireStaff(t *testing.T) {
	member := &session.Session{ID: "s1", AccessToken: "acc", User: rest.User{ID: 1}}
	staff := &session.Session{ID: "s2", AccessToken: "acc", User: rest.User{
		ID:    2,
		Roles: []rest.Role{{ID: 1, Name: "Admin", IsStaff: true}},
	}}

	handler := RequireStaff(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
	}))

	// 1. Plain member is rejected
	request := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	request = request.WithContext(ctxutil.WithSession(request.Context(), member))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 2. Staff member passes through
	request = httptest.NewRequest(http.MethodGet, "/admin/users", nil)
	request = request.WithContext(ctxutil.WithSession(request.Context(), staff))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.9:4312"
	assert.Equal(t, "10.0.0.9", RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.2")
	assert.Equal(t, "198.51.100.2", RealIP(request))
}
