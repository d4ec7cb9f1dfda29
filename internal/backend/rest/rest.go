// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import "github.com/frageo/frageo/internal/backend"

// Services bundles every per-resource client over one shared pipeline.
//
// # Usage
//
// Constructed once in main.go and injected wherever upstream data is needed.
type Services struct {
	Auth         *AuthService
	Users        *UsersService
	Forum        *ForumService
	Servers      *ServersService
	Players      *PlayersService
	Roles        *RolesService
	Scopes       *ScopesService
	Admin        *AdminService
	Subscription *SubscriptionService
}

// NewServices constructs the full service bundle for one pipeline client.
func NewServices(client *backend.Client) *Services {
	return &Services{
		Auth:         NewAuthService(client),
		Users:        NewUsersService(client),
		Forum:        NewForumService(client),
		Servers:      NewServersService(client),
		Players:      NewPlayersService(client),
		Roles:        NewRolesService(client),
		Scopes:       NewScopesService(client),
		Admin:        NewAdminService(client),
		Subscription: NewSubscriptionService(client),
	}
}
