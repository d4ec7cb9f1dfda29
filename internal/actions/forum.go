// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package actions

import (
	"context"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/validate"
	"github.com/frageo/frageo/internal/session"
	"github.com/frageo/frageo/pkg/slug"
)

// # Thread Creation

// CreateThreadInput is the schema for the new-thread form.
type CreateThreadInput struct {
	Title      string
	Content    string
	CategoryID int
}

/*
CreateThread opens a new thread.

Description: Requires a session. The thread title is slugified locally for
canonical URLs when the upstream omits a slug. Revalidates the forum listing
and the home page's latest-threads section.
*/
func (actions *Actions) CreateThread(context context.Context, sess *session.Session, input CreateThreadInput) Result[*rest.Thread] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Thread]()
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MinLen("title", input.Title, 5).
		MaxLen("title", input.Title, 120).
		Required("content", input.Content).
		MinLen("content", input.Content, 10).
		Positive("category", input.CategoryID)

	if err := v.Err(); err != nil {
		return fail[*rest.Thread](err)
	}

	thread, err := actions.forum.CreateThread(context, sess.AccessToken, input.Title, input.Content, input.CategoryID)
	if err != nil {
		return fail[*rest.Thread](err)
	}

	if thread.Slug == "" {
		thread.Slug = slug.From(thread.Title)
	}

	actions.revalidator.Revalidate(context, constants.PathForum, constants.PathHome)

	return ok(thread)
}

// # Replies

/*
CreatePost replies to an existing thread.

Description: Requires a session. Revalidates the forum listing where reply
counts appear.
*/
func (actions *Actions) CreatePost(context context.Context, sess *session.Session, threadID int, content string) Result[*rest.Post] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Post]()
	}

	v := &validate.Validator{}
	v.Positive("thread", threadID).
		Required("content", content).
		MinLen("content", content, 2)

	if err := v.Err(); err != nil {
		return fail[*rest.Post](err)
	}

	post, err := actions.forum.CreatePost(context, sess.AccessToken, threadID, content)
	if err != nil {
		return fail[*rest.Post](err)
	}

	actions.revalidator.Revalidate(context, constants.PathForum)

	return ok(post)
}
