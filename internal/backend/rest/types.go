// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package rest provides the typed per-resource clients for the upstream API.

One service struct exists per backend resource (Auth, Users, Forum, Servers,
Players, Roles, Scopes, Admin, Subscription). Every method is a direct 1:1
mapping to one backend endpoint: it declares a URL template and method and
delegates to the shared [backend] pipeline. No method contains business logic.

# Canonical Types

The upstream schema exposes one response shape per endpoint nesting depth.
Those near-duplicates are collapsed here into a single canonical type per
resource with optional nested fields; consumers tolerate absent fields.
*/
package rest

import "time"

// # Auth

// TokenPair is the access/refresh credential pair issued by the token endpoint.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// # Users & Access Control

// User is the canonical read projection of a backend user record.
type User struct {
	ID          int        `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email,omitempty"`
	AvatarURL   string     `json:"avatar,omitempty"`
	SteamID     string     `json:"steamid64,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsSuperuser bool       `json:"is_superuser"`
	DisplayRole *Role      `json:"display_role,omitempty"`
	Roles       []Role     `json:"roles,omitempty"`
	ThreadCount int        `json:"threads_count,omitempty"`
	PostCount   int        `json:"posts_count,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	LastLoginAt *time.Time `json:"last_login,omitempty"`
}

// Role groups a set of permission scopes under a display identity.
type Role struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Color    string  `json:"color,omitempty"`
	IsStaff  bool    `json:"is_staff"`
	Scopes   []Scope `json:"scopes,omitempty"`
	Position int     `json:"position,omitempty"`
}

// Scope is a single named permission.
type Scope struct {
	ID          int    `json:"id"`
	AppName     string `json:"app_name"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	Protected   bool   `json:"protected,omitempty"`
}

// # Forum

// Category is a forum category or subforum.
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
	ThreadCount int    `json:"threads_count,omitempty"`
}

// Thread is the canonical forum thread shape. Optional nested fields cover
// every endpoint nesting depth the upstream schema distinguishes.
type Thread struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Slug      string     `json:"slug,omitempty"`
	IsClosed  bool       `json:"is_closed"`
	IsPinned  bool       `json:"is_pinned"`
	Author    *User      `json:"author,omitempty"`
	Category  *Category  `json:"category,omitempty"`
	PostCount int        `json:"post_count,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// Post is a reply inside a thread.
type Post struct {
	ID        int        `json:"id"`
	Content   string     `json:"content"`
	ThreadID  int        `json:"thread_id,omitempty"`
	Author    *User      `json:"author,omitempty"`
	Likes     int        `json:"likes_count,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// # Game Servers

// Server is a community game server registration.
type Server struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	IP         string `json:"ip"`
	Port       int    `json:"port"`
	APIURL     string `json:"api_url,omitempty"`
	IsOnline   bool   `json:"is_online,omitempty"`
	MapName    string `json:"map_name,omitempty"`
	PlayerNum  int    `json:"player_num,omitempty"`
	MaxPlayers int    `json:"max_players,omitempty"`
}

// Player is a game-server player record keyed by Steam identity.
type Player struct {
	ID          int    `json:"id"`
	SteamID     string `json:"steamid64"`
	Username    string `json:"username,omitempty"`
	ProfileURL  string `json:"profile_url,omitempty"`
	AvatarURL   string `json:"avatar,omitempty"`
	IsBanned    bool   `json:"is_banned,omitempty"`
	LastServer  string `json:"last_server,omitempty"`
	LastSeenMap string `json:"last_seen_map,omitempty"`
}

// # Subscription

// Subscription is the caller's current paid plan, if any.
type Subscription struct {
	ID        int        `json:"id"`
	PlanName  string     `json:"plan_name"`
	IsActive  bool       `json:"is_active"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// # Pagination Envelope

// Page is the upstream list envelope shared by every paginated endpoint.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Size  int `json:"size"`
}
