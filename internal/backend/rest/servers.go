// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// ServersService maps the game-server endpoints of the upstream API.
type ServersService struct {
	client *backend.Client
}

// NewServersService constructs a [ServersService] over the shared pipeline.
func NewServersService(client *backend.Client) *ServersService {
	return &ServersService{client: client}
}

// List returns every registered game server.
func (service *ServersService) List(context context.Context) (*Page[Server], error) {
	var result Page[Server]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/servers",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByID returns one server including live status fields.
func (service *ServersService) GetByID(context context.Context, serverID int) (*Server, error) {
	var server Server
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/servers/{id}",
		PathParams: map[string]any{"id": serverID},
		Errors:     map[int]string{404: "Server not found"},
	}, &server)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// PlayersService maps the player endpoints of the upstream API.
type PlayersService struct {
	client *backend.Client
}

// NewPlayersService constructs a [PlayersService] over the shared pipeline.
func NewPlayersService(client *backend.Client) *PlayersService {
	return &PlayersService{client: client}
}

// List returns a page of tracked players.
func (service *PlayersService) List(context context.Context, page, size int) (*Page[Player], error) {
	var result Page[Player]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/players",
		Query:  map[string]any{"page": page, "size": size},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetBySteamID returns one player record.
func (service *PlayersService) GetBySteamID(context context.Context, steamID string) (*Player, error) {
	var player Player
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/players/{steamid}",
		PathParams: map[string]any{"steamid": steamID},
		Errors:     map[int]string{404: "Player not found"},
	}, &player)
	if err != nil {
		return nil, err
	}
	return &player, nil
}
