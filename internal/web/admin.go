// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/frageo/frageo/internal/actions"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/platform/ctxutil"
	"github.com/frageo/frageo/pkg/pagination"
)

// AdminHandler renders the staff panel and binds its forms to the admin
// actions. The router mounts it behind the staff guard.
type AdminHandler struct {
	services *rest.Services
	actions  *actions.Actions
	renderer *Renderer
}

// NewAdminHandler constructs the staff panel handler set.
func NewAdminHandler(services *rest.Services, actionSet *actions.Actions, renderer *Renderer) *AdminHandler {
	return &AdminHandler{
		services: services,
		actions:  actionSet,
		renderer: renderer,
	}
}

// Routes returns the staff-guarded admin routes.
func (handler *AdminHandler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/users", handler.usersPage)
	router.Post("/users", handler.createUser)
	router.Post("/users/{userID}/delete", handler.deleteUser)

	router.Get("/roles", handler.rolesPage)
	router.Post("/roles", handler.createRole)
	router.Post("/roles/{roleID}/delete", handler.deleteRole)

	router.Get("/servers", handler.serversPage)
	router.Post("/servers", handler.createServer)
	router.Post("/servers/{serverID}/delete", handler.deleteServer)

	return router
}

// render attaches session state and one-shot notices.
func (handler *AdminHandler) render(writer http.ResponseWriter, request *http.Request, page string, data view) {
	data.Session = ctxutil.GetSession(request.Context())
	data.Flash = request.URL.Query().Get("flash")
	data.Error = request.URL.Query().Get("error")
	handler.renderer.Render(writer, http.StatusOK, page, data)
}

// redirectOutcome lands back on the table with a one-shot notice.
func redirectOutcome(writer http.ResponseWriter, request *http.Request, target, flash, failMessage string) {
	if failMessage != "" {
		http.Redirect(writer, request, target+"?error="+url.QueryEscape(failMessage), http.StatusSeeOther)
		return
	}
	http.Redirect(writer, request, target+"?flash="+url.QueryEscape(flash), http.StatusSeeOther)
}

// # User Administration

// usersPage handles GET /admin/users.
func (handler *AdminHandler) usersPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)
	params := pagination.FromRequest(request)

	users := fetchPage(ctx, log, "admin_users", func(c context.Context) (*rest.Page[rest.User], error) {
		return handler.services.Users.List(c, params.Page, params.Limit)
	})

	handler.render(writer, request, "admin_users", view{
		Title: "Admin - Users",
		Data:  map[string]any{"Users": users},
	})
}

// createUser handles POST /admin/users.
func (handler *AdminHandler) createUser(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	result := handler.actions.AdminCreateUser(request.Context(), sess,
		request.PostFormValue("username"),
		request.PostFormValue("email"),
		request.PostFormValue("password"),
	)
	redirectOutcome(writer, request, "/admin/users", "User created", result.Message)
}

// deleteUser handles POST /admin/users/{userID}/delete.
func (handler *AdminHandler) deleteUser(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	userID, _ := strconv.Atoi(chi.URLParam(request, "userID"))

	result := handler.actions.AdminDeleteUser(request.Context(), sess, userID)
	redirectOutcome(writer, request, "/admin/users", "User deleted", result.Message)
}

// # Role Administration

// rolesPage handles GET /admin/roles.
func (handler *AdminHandler) rolesPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)
	params := pagination.FromRequest(request)

	roles := fetchPage(ctx, log, "admin_roles", func(c context.Context) (*rest.Page[rest.Role], error) {
		return handler.services.Roles.List(c, params.Page, params.Limit)
	})

	handler.render(writer, request, "admin_roles", view{
		Title: "Admin - Roles",
		Data:  map[string]any{"Roles": roles},
	})
}

// createRole handles POST /admin/roles.
func (handler *AdminHandler) createRole(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	isStaff := request.PostFormValue("is_staff") == "true"
	result := handler.actions.AdminCreateRole(request.Context(), sess,
		request.PostFormValue("name"),
		request.PostFormValue("color"),
		isStaff,
		nil,
	)
	redirectOutcome(writer, request, "/admin/roles", "Role created", result.Message)
}

// deleteRole handles POST /admin/roles/{roleID}/delete.
func (handler *AdminHandler) deleteRole(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	roleID, _ := strconv.Atoi(chi.URLParam(request, "roleID"))

	result := handler.actions.AdminDeleteRole(request.Context(), sess, roleID)
	redirectOutcome(writer, request, "/admin/roles", "Role deleted", result.Message)
}

// # Server Administration

// serversPage handles GET /admin/servers.
func (handler *AdminHandler) serversPage(writer http.ResponseWriter, request *http.Request) {
	ctx := request.Context()
	log := ctxutil.GetLogger(ctx)

	servers := fetchPage(ctx, log, "admin_servers", func(c context.Context) (*rest.Page[rest.Server], error) {
		return handler.services.Servers.List(c)
	})

	handler.render(writer, request, "admin_servers", view{
		Title: "Admin - Servers",
		Data:  map[string]any{"Servers": servers},
	})
}

// createServer handles POST /admin/servers.
func (handler *AdminHandler) createServer(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	_ = request.ParseForm()

	port, _ := strconv.Atoi(request.PostFormValue("port"))
	result := handler.actions.AdminCreateServer(request.Context(), sess,
		request.PostFormValue("name"),
		request.PostFormValue("ip"),
		port,
		request.PostFormValue("api_url"),
	)
	redirectOutcome(writer, request, "/admin/servers", "Server registered", result.Message)
}

// deleteServer handles POST /admin/servers/{serverID}/delete.
func (handler *AdminHandler) deleteServer(writer http.ResponseWriter, request *http.Request) {
	sess := ctxutil.GetSession(request.Context())
	serverID, _ := strconv.Atoi(chi.URLParam(request, "serverID"))

	result := handler.actions.AdminDeleteServer(request.Context(), sess, serverID)
	redirectOutcome(writer, request, "/admin/servers", "Server removed", result.Message)
}
