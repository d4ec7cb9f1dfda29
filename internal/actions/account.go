// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package actions

import (
	"context"
	"io"
	"strings"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/validate"
	"github.com/frageo/frageo/internal/session"
)

// # Registration

// RegisterInput is the schema for the account creation form.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	Password2 string
}

/*
Register creates a new account.

Description: Public action (no session). Validates the schema, issues the
registration call, and revalidates the users listing.
*/
func (actions *Actions) Register(context context.Context, input RegisterInput) Result[*rest.User] {
	v := &validate.Validator{}
	v.Required("username", input.Username).
		MinLen("username", input.Username, 3).
		MaxLen("username", input.Username, 32).
		Required("email", input.Email).
		Email("email", input.Email).
		Required("password", input.Password).
		MinLen("password", input.Password, 8).
		Custom("password2", input.Password != input.Password2, "Passwords do not match")

	if err := v.Err(); err != nil {
		return fail[*rest.User](err)
	}

	user, err := actions.auth.Register(context, input.Username, input.Email, input.Password)
	if err != nil {
		return fail[*rest.User](err)
	}

	actions.revalidator.Revalidate(context, constants.PathUsers, constants.PathHome)

	return ok(user)
}

// # Profile Mutations

/*
ChangeUsername updates the caller's display name.

Description: Requires a session. Revalidates the users listing and home page
where the name appears.
*/
func (actions *Actions) ChangeUsername(context context.Context, sess *session.Session, username string) Result[*rest.User] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.User]()
	}

	v := &validate.Validator{}
	v.Required("username", username).
		MinLen("username", username, 3).
		MaxLen("username", username, 32)

	if err := v.Err(); err != nil {
		return fail[*rest.User](err)
	}

	user, err := actions.users.ChangeUsername(context, sess.AccessToken, username)
	if err != nil {
		return fail[*rest.User](err)
	}

	// Keep the session snapshot in step with the upstream record.
	sess.User.Username = user.Username

	actions.revalidator.Revalidate(context, constants.PathUsers, constants.PathHome)

	return ok(user)
}

/*
RequestEmailChange starts the two-step e-mail change flow.
*/
func (actions *Actions) RequestEmailChange(context context.Context, sess *session.Session, email string) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	v.Required("email", email).Email("email", email)

	if err := v.Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.users.RequestEmailChange(context, sess.AccessToken, email); err != nil {
		return fail[struct{}](err)
	}

	return ok(struct{}{})
}

/*
ConfirmEmailChange completes the e-mail change flow with the mailed code.
*/
func (actions *Actions) ConfirmEmailChange(context context.Context, sess *session.Session, code string) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	v.Required("code", code)

	if err := v.Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.users.ConfirmEmailChange(context, sess.AccessToken, code); err != nil {
		return fail[struct{}](err)
	}

	return ok(struct{}{})
}

/*
ChangeAvatar replaces the caller's avatar image.

Description: Requires a session. Only common raster formats are accepted;
size limits are enforced upstream.
*/
func (actions *Actions) ChangeAvatar(context context.Context, sess *session.Session, filename string, image io.Reader) Result[*rest.User] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.User]()
	}

	lower := strings.ToLower(filename)
	allowed := strings.HasSuffix(lower, ".png") ||
		strings.HasSuffix(lower, ".jpg") ||
		strings.HasSuffix(lower, ".jpeg") ||
		strings.HasSuffix(lower, ".webp")

	v := &validate.Validator{}
	v.Required("avatar", filename).
		Custom("avatar", filename != "" && !allowed, "Must be a PNG, JPEG, or WebP image")

	if err := v.Err(); err != nil {
		return fail[*rest.User](err)
	}

	user, err := actions.users.UploadAvatar(context, sess.AccessToken, filename, image)
	if err != nil {
		return fail[*rest.User](err)
	}

	sess.User.AvatarURL = user.AvatarURL

	actions.revalidator.Revalidate(context, constants.PathUsers, constants.PathHome)

	return ok(user)
}

/*
DeleteAvatar restores the caller's default avatar.
*/
func (actions *Actions) DeleteAvatar(context context.Context, sess *session.Session) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	if err := actions.users.DeleteAvatar(context, sess.AccessToken); err != nil {
		return fail[struct{}](err)
	}

	sess.User.AvatarURL = ""

	actions.revalidator.Revalidate(context, constants.PathUsers, constants.PathHome)

	return ok(struct{}{})
}
