// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// AdminService maps the privileged admin-panel endpoints of the upstream API.
//
// Every method attaches the caller's access token; authorization decisions
// stay server-side — the portal never gates these calls itself.
type AdminService struct {
	client *backend.Client
}

// NewAdminService constructs an [AdminService] over the shared pipeline.
func NewAdminService(client *backend.Client) *AdminService {
	return &AdminService{client: client}
}

// # User Administration

// UserUpdate is the partial update payload for a user record.
// Nil fields are omitted from the request body.
type UserUpdate struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
	DisplayRole *int    `json:"display_role,omitempty"`
	Roles       []int   `json:"roles,omitempty"`
}

// CreateUser provisions a user account.
func (service *AdminService) CreateUser(context context.Context, token, username, email, password string) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/users",
		Token:  token,
		Body: map[string]any{
			"username": username,
			"email":    email,
			"password": password,
		},
		Errors: map[int]string{409: "Username or email already exists"},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser applies a partial update to a user record.
func (service *AdminService) UpdateUser(context context.Context, token string, userID int, update UserUpdate) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodPatch,
		Path:       "/admin/users/{id}",
		PathParams: map[string]any{"id": userID},
		Token:      token,
		Body:       update,
		Errors:     map[int]string{404: "User not found"},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user account.
func (service *AdminService) DeleteUser(context context.Context, token string, userID int) error {
	return service.client.Do(context, backend.Request{
		Method:     http.MethodDelete,
		Path:       "/admin/users/{id}",
		PathParams: map[string]any{"id": userID},
		Token:      token,
		Errors:     map[int]string{404: "User not found"},
	}, nil)
}

// # Role Administration

// CreateRole adds a role with the given scope set.
func (service *AdminService) CreateRole(context context.Context, token, name, color string, isStaff bool, scopeIDs []int) (*Role, error) {
	var role Role
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/roles",
		Token:  token,
		Body: map[string]any{
			"name":     name,
			"color":    color,
			"is_staff": isStaff,
			"scopes":   scopeIDs,
		},
		Errors: map[int]string{409: "Role already exists"},
	}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// UpdateRole replaces a role's display identity and scope set.
func (service *AdminService) UpdateRole(context context.Context, token string, roleID int, name, color string, isStaff bool, scopeIDs []int) (*Role, error) {
	var role Role
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodPut,
		Path:       "/admin/roles/{id}",
		PathParams: map[string]any{"id": roleID},
		Token:      token,
		Body: map[string]any{
			"name":     name,
			"color":    color,
			"is_staff": isStaff,
			"scopes":   scopeIDs,
		},
		Errors: map[int]string{404: "Role not found"},
	}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// DeleteRole removes a role.
func (service *AdminService) DeleteRole(context context.Context, token string, roleID int) error {
	return service.client.Do(context, backend.Request{
		Method:     http.MethodDelete,
		Path:       "/admin/roles/{id}",
		PathParams: map[string]any{"id": roleID},
		Token:      token,
		Errors:     map[int]string{404: "Role not found"},
	}, nil)
}

// # Server Administration

// CreateServer registers a game server.
func (service *AdminService) CreateServer(context context.Context, token, name, ip string, port int, apiURL string) (*Server, error) {
	var server Server
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/servers",
		Token:  token,
		Body: map[string]any{
			"name":    name,
			"ip":      ip,
			"port":    port,
			"api_url": apiURL,
		},
		Errors: map[int]string{409: "Server is already registered"},
	}, &server)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// UpdateServer replaces a game server registration.
func (service *AdminService) UpdateServer(context context.Context, token string, serverID int, name, ip string, port int, apiURL string) (*Server, error) {
	var server Server
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodPut,
		Path:       "/admin/servers/{id}",
		PathParams: map[string]any{"id": serverID},
		Token:      token,
		Body: map[string]any{
			"name":    name,
			"ip":      ip,
			"port":    port,
			"api_url": apiURL,
		},
		Errors: map[int]string{404: "Server not found"},
	}, &server)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// DeleteServer removes a game server registration.
func (service *AdminService) DeleteServer(context context.Context, token string, serverID int) error {
	return service.client.Do(context, backend.Request{
		Method:     http.MethodDelete,
		Path:       "/admin/servers/{id}",
		PathParams: map[string]any{"id": serverID},
		Token:      token,
		Errors:     map[int]string{404: "Server not found"},
	}, nil)
}

// # Forum Administration

// CreateCategory adds a forum category.
func (service *AdminService) CreateCategory(context context.Context, token, name, description, categoryType string) (*Category, error) {
	var category Category
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/forum/categories",
		Token:  token,
		Body: map[string]any{
			"name":        name,
			"description": description,
			"type":        categoryType,
		},
		Errors: map[int]string{409: "Category already exists"},
	}, &category)
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a forum category.
func (service *AdminService) DeleteCategory(context context.Context, token string, categoryID int) error {
	return service.client.Do(context, backend.Request{
		Method:     http.MethodDelete,
		Path:       "/admin/forum/categories/{id}",
		PathParams: map[string]any{"id": categoryID},
		Token:      token,
		Errors:     map[int]string{404: "Category not found"},
	}, nil)
}

// # Player Administration

// BanPlayer bans a player by Steam identity.
func (service *AdminService) BanPlayer(context context.Context, token, steamID, reason string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/players/ban",
		Token:  token,
		Body: map[string]any{
			"steamid64": steamID,
			"reason":    reason,
		},
		Errors: map[int]string{404: "Player not found"},
	}, nil)
}

// UnbanPlayer lifts a player ban.
func (service *AdminService) UnbanPlayer(context context.Context, token, steamID string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/admin/players/unban",
		Token:  token,
		Body:   map[string]any{"steamid64": steamID},
		Errors: map[int]string{404: "Player is not banned"},
	}, nil)
}
