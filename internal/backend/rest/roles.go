// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// RolesService maps the role endpoints of the upstream API.
type RolesService struct {
	client *backend.Client
}

// NewRolesService constructs a [RolesService] over the shared pipeline.
func NewRolesService(client *backend.Client) *RolesService {
	return &RolesService{client: client}
}

// List returns a page of roles.
func (service *RolesService) List(context context.Context, page, size int) (*Page[Role], error) {
	var result Page[Role]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/roles",
		Query:  map[string]any{"page": page, "size": size},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID returns one role with its scopes expanded.
func (service *RolesService) GetByID(context context.Context, roleID int) (*Role, error) {
	var role Role
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/roles/{id}",
		PathParams: map[string]any{"id": roleID},
		Errors:     map[int]string{404: "Role not found"},
	}, &role)
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// ScopesService maps the permission-scope endpoints of the upstream API.
type ScopesService struct {
	client *backend.Client
}

// NewScopesService constructs a [ScopesService] over the shared pipeline.
func NewScopesService(client *backend.Client) *ScopesService {
	return &ScopesService{client: client}
}

// List returns a page of scopes, optionally filtered by role.
func (service *ScopesService) List(context context.Context, roleID, page, size int) (*Page[Scope], error) {
	query := map[string]any{"page": page, "size": size}
	if roleID > 0 {
		query["role_id"] = roleID
	}

	var result Page[Scope]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/scopes",
		Query:  query,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
