// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"io"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// UsersService maps the user profile endpoints of the upstream API.
type UsersService struct {
	client *backend.Client
}

// NewUsersService constructs a [UsersService] over the shared pipeline.
func NewUsersService(client *backend.Client) *UsersService {
	return &UsersService{client: client}
}

// Me returns the profile of the token's owner.
func (service *UsersService) Me(context context.Context, token string) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/users/me",
		Token:  token,
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns one user's public profile.
func (service *UsersService) GetByID(context context.Context, userID int) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/users/{id}",
		PathParams: map[string]any{"id": userID},
		Errors:     map[int]string{404: "User not found"},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns a page of users.
func (service *UsersService) List(context context.Context, page, size int) (*Page[User], error) {
	var result Page[User]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/users",
		Query:  map[string]any{"page": page, "size": size},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Online returns the recently-active users shown on the home page.
func (service *UsersService) Online(context context.Context) (*Page[User], error) {
	var result Page[User]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/users/online",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ChangeUsername updates the caller's display name.
func (service *UsersService) ChangeUsername(context context.Context, token, username string) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/users/me/username",
		Token:  token,
		Body:   map[string]any{"username": username},
		Errors: map[int]string{409: "Username is already taken"},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequestEmailChange starts the e-mail change flow; the backend sends a
// confirmation code to the new address.
func (service *UsersService) RequestEmailChange(context context.Context, token, email string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/users/me/email",
		Token:  token,
		Body:   map[string]any{"email": email},
		Errors: map[int]string{409: "Email is already registered"},
	}, nil)
}

// ConfirmEmailChange completes the e-mail change flow with the mailed code.
func (service *UsersService) ConfirmEmailChange(context context.Context, token, code string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/users/me/email/confirm",
		Token:  token,
		Body:   map[string]any{"code": code},
		Errors: map[int]string{400: "Confirmation code is invalid or expired"},
	}, nil)
}

// UploadAvatar replaces the caller's avatar with the uploaded image.
func (service *UsersService) UploadAvatar(context context.Context, token, filename string, image io.Reader) (*User, error) {
	var user User
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/users/me/avatar",
		Token:  token,
		FormData: map[string]any{
			"avatar": backend.File{Name: filename, Reader: image},
		},
		Errors: map[int]string{413: "Image is too large"},
	}, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteAvatar restores the caller's default avatar.
func (service *UsersService) DeleteAvatar(context context.Context, token string) error {
	return service.client.Do(context, backend.Request{
		Method: http.MethodDelete,
		Path:   "/users/me/avatar",
		Token:  token,
	}, nil)
}
