// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frageo/frageo/internal/backend"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/cache"
	"github.com/frageo/frageo/internal/chat"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/internal/session"
)

// ─── Test Fixtures ──────────────────────────────────────────────────────────

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChat satisfies ChatPanel without a live websocket.
type fakeChat struct {
	mu       sync.Mutex
	messages []chat.Message
	sent     []string
	sendErr  error
}

func (panel *fakeChat) Messages() []chat.Message {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	return append([]chat.Message(nil), panel.messages...)
}

func (panel *fakeChat) Send(content string) error {
	panel.mu.Lock()
	defer panel.mu.Unlock()
	if panel.sendErr != nil {
		return panel.sendErr
	}
	panel.sent = append(panel.sent, content)
	return nil
}

// fakeUpstream is an in-process stand-in for the backend REST API. Handlers
// are keyed by "METHOD /path"; unregistered routes answer 404.
type fakeUpstream struct {
	server   *httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()

	upstream := &fakeUpstream{handlers: map[string]http.HandlerFunc{}}
	upstream.server = httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		upstream.mu.Lock()
		handler, found := upstream.handlers[request.Method+" "+request.URL.Path]
		upstream.mu.Unlock()
		if !found {
			http.NotFound(writer, request)
			return
		}
		handler(writer, request)
	}))
	t.Cleanup(upstream.server.Close)

	return upstream
}

func (upstream *fakeUpstream) handle(route string, handler http.HandlerFunc) {
	upstream.mu.Lock()
	defer upstream.mu.Unlock()
	upstream.handlers[route] = handler
}

func (upstream *fakeUpstream) handleJSON(route string, payload any) {
	upstream.handle(route, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(writer).Encode(payload)
	})
}

func (upstream *fakeUpstream) handleStatus(route string, status int) {
	upstream.handle(route, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(status)
	})
}

func page[T any](items ...T) rest.Page[T] {
	return rest.Page[T]{Items: items, Total: len(items), Page: 1, Size: len(items)}
}

// newPageHandler wires a PageHandler over the fake upstream. The page cache
// points at an unreachable Redis so every request exercises the degradation
// path and renders live.
func newPageHandler(t *testing.T, upstream *fakeUpstream, panel ChatPanel) *PageHandler {
	t.Helper()

	renderer, err := NewRenderer(discardLogger())
	require.NoError(t, err)

	client := backend.NewClient(upstream.server.URL, backend.WithLogger(discardLogger()))
	deadCache := cache.NewStore(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), discardLogger())

	return NewPageHandler(rest.NewServices(client), panel, renderer, deadCache, discardLogger())
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

// ─── Tests ──────────────────────────────────────────────────────────────────

func TestPages_Home(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /forum/threads/latest", page(rest.Thread{ID: 1, Title: "Server rules"}))
	upstream.handleJSON("GET /servers", page(rest.Server{ID: 1, Name: "Frageo #1", IP: "10.0.0.1", Port: 27015}))
	upstream.handleJSON("GET /users/online", page(rest.User{ID: 7, Username: "grizzly"}))

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/")

	require.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Server rules")
	assert.Contains(t, body, "Frageo #1")
	assert.Contains(t, body, "grizzly")
}

func TestPages_HomeSectionDegrades(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /forum/threads/latest", page(rest.Thread{ID: 1, Title: "Server rules"}))
	upstream.handleStatus("GET /servers", http.StatusInternalServerError)
	upstream.handleJSON("GET /users/online", page[rest.User]())

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/")

	// A failed section never fails the page.
	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Server rules")
}

func TestPages_Forum(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /forum/categories", page(rest.Category{ID: 1, Name: "General"}))
	upstream.handleJSON("GET /forum/threads", page(
		rest.Thread{ID: 1, Title: "Welcome", IsPinned: true},
		rest.Thread{ID: 2, Title: "Map rotation"},
	))

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/forum")

	require.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "General")
	assert.Contains(t, body, "Welcome")
	assert.Contains(t, body, "Map rotation")
}

func TestPages_Thread(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /forum/threads/42", rest.Thread{ID: 42, Title: "Patch notes", Content: "Big update"})
	upstream.handleJSON("GET /forum/threads/42/posts", page(rest.Post{ID: 1, Content: "Nice changes"}))

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/forum/threads/42")

	require.Equal(t, http.StatusOK, response.Code)
	body := response.Body.String()
	assert.Contains(t, body, "Patch notes")
	assert.Contains(t, body, "Nice changes")
}

func TestPages_ThreadNotFound(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleStatus("GET /forum/threads/999", http.StatusNotFound)
	upstream.handleJSON("GET /forum/threads/999/posts", page[rest.Post]())

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/forum/threads/999")

	require.Equal(t, http.StatusNotFound, response.Code)
	assert.Contains(t, response.Body.String(), "does not exist")
}

func TestPages_Profile(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /users/7", rest.User{ID: 7, Username: "grizzly", ThreadCount: 3, PostCount: 12})

	handler := newPageHandler(t, upstream, &fakeChat{})
	response := get(t, handler.Routes(), "/users/7")

	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "grizzly")
	// No settings forms for a visitor looking at someone else's profile.
	assert.NotContains(t, response.Body.String(), "/settings/username")
}

func TestPages_ProfileSelfShowsSettings(t *testing.T) {
	upstream := newFakeUpstream(t)
	upstream.handleJSON("GET /users/7", rest.User{ID: 7, Username: "grizzly"})

	handler := newPageHandler(t, upstream, &fakeChat{})

	request := httptest.NewRequest(http.MethodGet, "/users/7", nil)
	ctx := ctxutil.WithSession(request.Context(), &session.Session{
		ID:   "sess-1",
		User: rest.User{ID: 7, Username: "grizzly"},
	})
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request.WithContext(ctx))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "/settings/username")
}

func TestPages_ChatRendersHistory(t *testing.T) {
	upstream := newFakeUpstream(t)
	panel := &fakeChat{messages: []chat.Message{
		{ID: 1, Username: "grizzly", Content: "anyone up for a match"},
	}}

	handler := newPageHandler(t, upstream, panel)
	response := get(t, handler.Routes(), "/chat")

	require.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "anyone up for a match")
}

func TestPages_ChatSendRequiresSession(t *testing.T) {
	upstream := newFakeUpstream(t)
	panel := &fakeChat{}
	handler := newPageHandler(t, upstream, panel)

	request := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("content=hello"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request)

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/login", recorder.Header().Get("Location"))
	assert.Empty(t, panel.sent)
}

func TestPages_ChatSend(t *testing.T) {
	upstream := newFakeUpstream(t)
	panel := &fakeChat{}
	handler := newPageHandler(t, upstream, panel)

	request := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader("content=hello"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx := ctxutil.WithSession(request.Context(), &session.Session{
		ID:   "sess-1",
		User: rest.User{ID: 7, Username: "grizzly"},
	})
	recorder := httptest.NewRecorder()
	handler.Routes().ServeHTTP(recorder, request.WithContext(ctx))

	require.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/chat", recorder.Header().Get("Location"))
	require.Len(t, panel.sent, 1)
	assert.Equal(t, "hello", panel.sent[0])
}
