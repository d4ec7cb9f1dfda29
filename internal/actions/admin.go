// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package actions

import (
	"context"

	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/validate"
	"github.com/frageo/frageo/internal/session"
)

// Admin actions mirror the admin panel's CRUD forms. Authorization itself is
// enforced upstream — these wrappers only require that a session exists and
// keep the affected page caches honest.

// # User Administration

/*
AdminCreateUser provisions a user account from the admin panel.
*/
func (actions *Actions) AdminCreateUser(context context.Context, sess *session.Session, username, email, password string) Result[*rest.User] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.User]()
	}

	v := &validate.Validator{}
	v.Required("username", username).
		MinLen("username", username, 3).
		Required("email", email).
		Email("email", email).
		Required("password", password).
		MinLen("password", password, 8)

	if err := v.Err(); err != nil {
		return fail[*rest.User](err)
	}

	user, err := actions.admin.CreateUser(context, sess.AccessToken, username, email, password)
	if err != nil {
		return fail[*rest.User](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminUsers, constants.PathUsers)

	return ok(user)
}

/*
AdminUpdateUser applies a partial update to a user record.
*/
func (actions *Actions) AdminUpdateUser(context context.Context, sess *session.Session, userID int, update rest.UserUpdate) Result[*rest.User] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.User]()
	}

	v := &validate.Validator{}
	v.Positive("user", userID)
	if update.Username != nil {
		v.MinLen("username", *update.Username, 3).MaxLen("username", *update.Username, 32)
	}
	if update.Email != nil {
		v.Email("email", *update.Email)
	}

	if err := v.Err(); err != nil {
		return fail[*rest.User](err)
	}

	user, err := actions.admin.UpdateUser(context, sess.AccessToken, userID, update)
	if err != nil {
		return fail[*rest.User](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminUsers, constants.PathUsers)

	return ok(user)
}

/*
AdminDeleteUser removes a user account.
*/
func (actions *Actions) AdminDeleteUser(context context.Context, sess *session.Session, userID int) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	if err := v.Positive("user", userID).Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.DeleteUser(context, sess.AccessToken, userID); err != nil {
		return fail[struct{}](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminUsers, constants.PathUsers)

	return ok(struct{}{})
}

// # Role Administration

/*
AdminCreateRole adds a role with its scope set.
*/
func (actions *Actions) AdminCreateRole(context context.Context, sess *session.Session, name, color string, isStaff bool, scopeIDs []int) Result[*rest.Role] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Role]()
	}

	v := &validate.Validator{}
	v.Required("name", name).
		MaxLen("name", name, 48).
		HexColor("color", color)

	if err := v.Err(); err != nil {
		return fail[*rest.Role](err)
	}

	role, err := actions.admin.CreateRole(context, sess.AccessToken, name, color, isStaff, scopeIDs)
	if err != nil {
		return fail[*rest.Role](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminRoles)

	return ok(role)
}

/*
AdminUpdateRole replaces a role's display identity and scope set.
*/
func (actions *Actions) AdminUpdateRole(context context.Context, sess *session.Session, roleID int, name, color string, isStaff bool, scopeIDs []int) Result[*rest.Role] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Role]()
	}

	v := &validate.Validator{}
	v.Positive("role", roleID).
		Required("name", name).
		MaxLen("name", name, 48).
		HexColor("color", color)

	if err := v.Err(); err != nil {
		return fail[*rest.Role](err)
	}

	role, err := actions.admin.UpdateRole(context, sess.AccessToken, roleID, name, color, isStaff, scopeIDs)
	if err != nil {
		return fail[*rest.Role](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminRoles, constants.PathUsers)

	return ok(role)
}

/*
AdminDeleteRole removes a role.
*/
func (actions *Actions) AdminDeleteRole(context context.Context, sess *session.Session, roleID int) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	if err := v.Positive("role", roleID).Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.DeleteRole(context, sess.AccessToken, roleID); err != nil {
		return fail[struct{}](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminRoles)

	return ok(struct{}{})
}

// # Server Administration

/*
AdminCreateServer registers a game server.
*/
func (actions *Actions) AdminCreateServer(context context.Context, sess *session.Session, name, ip string, port int, apiURL string) Result[*rest.Server] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Server]()
	}

	v := &validate.Validator{}
	v.Required("name", name).
		Required("ip", ip).
		Custom("port", port < 1 || port > 65535, "Must be a valid port")

	if err := v.Err(); err != nil {
		return fail[*rest.Server](err)
	}

	server, err := actions.admin.CreateServer(context, sess.AccessToken, name, ip, port, apiURL)
	if err != nil {
		return fail[*rest.Server](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminServers, constants.PathHome)

	return ok(server)
}

/*
AdminUpdateServer replaces a game server registration.
*/
func (actions *Actions) AdminUpdateServer(context context.Context, sess *session.Session, serverID int, name, ip string, port int, apiURL string) Result[*rest.Server] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Server]()
	}

	v := &validate.Validator{}
	v.Positive("server", serverID).
		Required("name", name).
		Required("ip", ip).
		Custom("port", port < 1 || port > 65535, "Must be a valid port")

	if err := v.Err(); err != nil {
		return fail[*rest.Server](err)
	}

	server, err := actions.admin.UpdateServer(context, sess.AccessToken, serverID, name, ip, port, apiURL)
	if err != nil {
		return fail[*rest.Server](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminServers, constants.PathHome)

	return ok(server)
}

/*
AdminDeleteServer removes a game server registration.
*/
func (actions *Actions) AdminDeleteServer(context context.Context, sess *session.Session, serverID int) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	if err := v.Positive("server", serverID).Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.DeleteServer(context, sess.AccessToken, serverID); err != nil {
		return fail[struct{}](err)
	}

	actions.revalidator.Revalidate(context, constants.PathAdminServers, constants.PathHome)

	return ok(struct{}{})
}

// # Forum Administration

/*
AdminCreateCategory adds a forum category.
*/
func (actions *Actions) AdminCreateCategory(context context.Context, sess *session.Session, name, description, categoryType string) Result[*rest.Category] {
	if !requireSession(sess) {
		return failUnauthenticated[*rest.Category]()
	}

	v := &validate.Validator{}
	v.Required("name", name).
		MaxLen("name", name, 64).
		OneOf("type", categoryType, "public", "application")

	if err := v.Err(); err != nil {
		return fail[*rest.Category](err)
	}

	category, err := actions.admin.CreateCategory(context, sess.AccessToken, name, description, categoryType)
	if err != nil {
		return fail[*rest.Category](err)
	}

	actions.revalidator.Revalidate(context, constants.PathForum)

	return ok(category)
}

/*
AdminDeleteCategory removes a forum category.
*/
func (actions *Actions) AdminDeleteCategory(context context.Context, sess *session.Session, categoryID int) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	if err := v.Positive("category", categoryID).Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.DeleteCategory(context, sess.AccessToken, categoryID); err != nil {
		return fail[struct{}](err)
	}

	actions.revalidator.Revalidate(context, constants.PathForum)

	return ok(struct{}{})
}

// # Player Administration

/*
AdminBanPlayer bans a player by Steam identity.
*/
func (actions *Actions) AdminBanPlayer(context context.Context, sess *session.Session, steamID, reason string) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	v.SteamID("steamid", steamID).Required("reason", reason)

	if err := v.Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.BanPlayer(context, sess.AccessToken, steamID, reason); err != nil {
		return fail[struct{}](err)
	}

	return ok(struct{}{})
}

/*
AdminUnbanPlayer lifts a player ban.
*/
func (actions *Actions) AdminUnbanPlayer(context context.Context, sess *session.Session, steamID string) Result[struct{}] {
	if !requireSession(sess) {
		return failUnauthenticated[struct{}]()
	}

	v := &validate.Validator{}
	if err := v.SteamID("steamid", steamID).Err(); err != nil {
		return fail[struct{}](err)
	}

	if err := actions.admin.UnbanPlayer(context, sess.AccessToken, steamID); err != nil {
		return fail[struct{}](err)
	}

	return ok(struct{}{})
}
