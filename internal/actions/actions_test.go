// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package actions

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frageo/frageo/internal/backend"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/apperr"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/session"
)

// # Fakes

// fakeRevalidator records which paths actions invalidated.
type fakeRevalidator struct {
	mu    sync.Mutex
	paths []string
}

func (r *fakeRevalidator) Revalidate(_ context.Context, paths ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, paths...)
}

// fakeUpstream implements every upstream contract with programmable results
// and a total call counter.
type fakeUpstream struct {
	mu    sync.Mutex
	calls int
	err   error

	user     *rest.User
	thread   *rest.Thread
	post     *rest.Post
	role     *rest.Role
	server   *rest.Server
	category *rest.Category
}

func (f *fakeUpstream) bump() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.err
}

func (f *fakeUpstream) Register(_ context.Context, _, _, _ string) (*rest.User, error) {
	return f.user, f.bump()
}

func (f *fakeUpstream) ChangeUsername(_ context.Context, _, _ string) (*rest.User, error) {
	return f.user, f.bump()
}

func (f *fakeUpstream) RequestEmailChange(_ context.Context, _, _ string) error { return f.bump() }
func (f *fakeUpstream) ConfirmEmailChange(_ context.Context, _, _ string) error { return f.bump() }

func (f *fakeUpstream) UploadAvatar(_ context.Context, _, _ string, _ io.Reader) (*rest.User, error) {
	return f.user, f.bump()
}

func (f *fakeUpstream) DeleteAvatar(_ context.Context, _ string) error { return f.bump() }

func (f *fakeUpstream) CreateThread(_ context.Context, _, _, _ string, _ int) (*rest.Thread, error) {
	return f.thread, f.bump()
}

func (f *fakeUpstream) CreatePost(_ context.Context, _ string, _ int, _ string) (*rest.Post, error) {
	return f.post, f.bump()
}

func (f *fakeUpstream) CreateUser(_ context.Context, _, _, _, _ string) (*rest.User, error) {
	return f.user, f.bump()
}

func (f *fakeUpstream) UpdateUser(_ context.Context, _ string, _ int, _ rest.UserUpdate) (*rest.User, error) {
	return f.user, f.bump()
}

func (f *fakeUpstream) DeleteUser(_ context.Context, _ string, _ int) error { return f.bump() }

func (f *fakeUpstream) CreateRole(_ context.Context, _, _, _ string, _ bool, _ []int) (*rest.Role, error) {
	return f.role, f.bump()
}

func (f *fakeUpstream) UpdateRole(_ context.Context, _ string, _ int, _, _ string, _ bool, _ []int) (*rest.Role, error) {
	return f.role, f.bump()
}

func (f *fakeUpstream) DeleteRole(_ context.Context, _ string, _ int) error { return f.bump() }

func (f *fakeUpstream) CreateServer(_ context.Context, _, _, _ string, _ int, _ string) (*rest.Server, error) {
	return f.server, f.bump()
}

func (f *fakeUpstream) UpdateServer(_ context.Context, _ string, _ int, _, _ string, _ int, _ string) (*rest.Server, error) {
	return f.server, f.bump()
}

func (f *fakeUpstream) DeleteServer(_ context.Context, _ string, _ int) error { return f.bump() }

func (f *fakeUpstream) CreateCategory(_ context.Context, _, _, _, _ string) (*rest.Category, error) {
	return f.category, f.bump()
}

func (f *fakeUpstream) DeleteCategory(_ context.Context, _ string, _ int) error { return f.bump() }
func (f *fakeUpstream) BanPlayer(_ context.Context, _, _, _ string) error       { return f.bump() }
func (f *fakeUpstream) UnbanPlayer(_ context.Context, _, _ string) error        { return f.bump() }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestActions(upstream *fakeUpstream) (*Actions, *fakeRevalidator) {
	revalidator := &fakeRevalidator{}
	return NewActions(upstream, upstream, upstream, upstream, revalidator, discardLogger()), revalidator
}

func activeSession() *session.Session {
	return &session.Session{ID: "sess-1", AccessToken: "acc-1", User: rest.User{ID: 1, Username: "jsmith"}}
}

// # Error Policy

/*
TestActions_MaskedError verifies that an unrecognized upstream error returns
the fixed masked message, never the original exception text.
*/
func TestActions_MaskedError(t *testing.T) {
	upstream := &fakeUpstream{err: errors.New("pq: connection reset while talking to 10.0.0.3")}
	actions, _ := newTestActions(upstream)

	result := actions.ChangeUsername(context.Background(), activeSession(), "newname")

	assert.False(t, result.OK())
	assert.Equal(t, apperr.MaskedMessage, result.Message)
	assert.NotContains(t, result.Message, "10.0.0.3")
}

/*
TestActions_RecognizedError verifies that typed API errors surface their
backend-supplied detail verbatim.
*/
func TestActions_RecognizedError(t *testing.T) {
	upstream := &fakeUpstream{err: &backend.APIError{
		Status:  409,
		Body:    map[string]any{"detail": "Username is already taken"},
		Message: "Conflict",
	}}
	actions, _ := newTestActions(upstream)

	result := actions.ChangeUsername(context.Background(), activeSession(), "newname")

	assert.Equal(t, "Username is already taken", result.Message)
}

// # Fail-Closed Session Guard

/*
TestActions_RequireSession verifies that session-requiring actions reject
before issuing any network call.
*/
func TestActions_RequireSession(t *testing.T) {
	upstream := &fakeUpstream{}
	actions, revalidator := newTestActions(upstream)

	results := []string{
		actions.ChangeUsername(context.Background(), nil, "x").Message,
		actions.CreateThread(context.Background(), nil, CreateThreadInput{}).Message,
		actions.AdminDeleteUser(context.Background(), nil, 1).Message,
		actions.AdminBanPlayer(context.Background(), nil, "76561198000000001", "griefing").Message,
	}

	for _, message := range results {
		assert.Equal(t, "Authentication required", message)
	}

	// No upstream call and no cache invalidation happened
	assert.Equal(t, 0, upstream.calls)
	assert.Empty(t, revalidator.paths)
}

// # Validation Before Network

/*
TestActions_ValidationRejectsBeforeNetwork verifies the schema gate: invalid
input never reaches the API client.
*/
func TestActions_ValidationRejectsBeforeNetwork(t *testing.T) {
	upstream := &fakeUpstream{}
	actions, _ := newTestActions(upstream)

	// Mismatched passwords
	result := actions.Register(context.Background(), RegisterInput{
		Username:  "jsmith",
		Email:     "jsmith@example.com",
		Password:  "password123",
		Password2: "different",
	})

	assert.False(t, result.OK())
	require.NotEmpty(t, result.Fields)
	assert.Equal(t, "password2", result.Fields[0].Field)
	assert.Equal(t, 0, upstream.calls)
}

// # Success & Revalidation

/*
TestActions_Register verifies the happy path: one call, revalidated paths.
*/
func TestActions_Register(t *testing.T) {
	upstream := &fakeUpstream{user: &rest.User{ID: 7, Username: "jsmith"}}
	actions, revalidator := newTestActions(upstream)

	result := actions.Register(context.Background(), RegisterInput{
		Username:  "jsmith",
		Email:     "jsmith@example.com",
		Password:  "password123",
		Password2: "password123",
	})

	require.True(t, result.OK())
	assert.Equal(t, "jsmith", result.Data.Username)
	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, []string{constants.PathUsers, constants.PathHome}, revalidator.paths)
}

/*
TestActions_CreateThread verifies slug fallback and forum revalidation.
*/
func TestActions_CreateThread(t *testing.T) {
	upstream := &fakeUpstream{thread: &rest.Thread{ID: 3, Title: "Zasady serwera — przeczytaj!"}}
	actions, revalidator := newTestActions(upstream)

	result := actions.CreateThread(context.Background(), activeSession(), CreateThreadInput{
		Title:      "Zasady serwera — przeczytaj!",
		Content:    "Pełna lista zasad obowiązujących na serwerze.",
		CategoryID: 2,
	})

	require.True(t, result.OK())
	assert.Equal(t, "zasady-serwera-przeczytaj", result.Data.Slug)
	assert.Contains(t, revalidator.paths, constants.PathForum)
	assert.Contains(t, revalidator.paths, constants.PathHome)
}

/*
TestActions_ChangeUsername verifies session snapshot synchronization.
*/
func TestActions_ChangeUsername(t *testing.T) {
	upstream := &fakeUpstream{user: &rest.User{ID: 1, Username: "renamed"}}
	actions, _ := newTestActions(upstream)

	sess := activeSession()
	result := actions.ChangeUsername(context.Background(), sess, "renamed")

	require.True(t, result.OK())
	assert.Equal(t, "renamed", sess.User.Username)
}

/*
TestActions_AdminValidation exercises a few admin schemas.
*/
func TestActions_AdminValidation(t *testing.T) {
	upstream := &fakeUpstream{}
	actions, _ := newTestActions(upstream)
	sess := activeSession()

	// Bad hex color
	result := actions.AdminCreateRole(context.Background(), sess, "Moderator", "blue", true, nil)
	assert.False(t, result.OK())

	// Bad port
	serverResult := actions.AdminCreateServer(context.Background(), sess, "EU #1", "10.0.0.1", 99999, "")
	assert.False(t, serverResult.OK())

	// Bad steam ID
	banResult := actions.AdminBanPlayer(context.Background(), sess, "123", "griefing")
	assert.False(t, banResult.OK())

	assert.Equal(t, 0, upstream.calls)
}
