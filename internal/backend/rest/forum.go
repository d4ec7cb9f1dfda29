// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package rest

import (
	"context"
	"net/http"

	"github.com/frageo/frageo/internal/backend"
)

// ForumService maps the forum endpoints of the upstream API.
type ForumService struct {
	client *backend.Client
}

// NewForumService constructs a [ForumService] over the shared pipeline.
func NewForumService(client *backend.Client) *ForumService {
	return &ForumService{client: client}
}

// Categories returns every forum category.
func (service *ForumService) Categories(context context.Context) (*Page[Category], error) {
	var result Page[Category]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/forum/categories",
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Threads returns a page of threads, optionally filtered by category.
func (service *ForumService) Threads(context context.Context, categoryID, page, size int) (*Page[Thread], error) {
	query := map[string]any{"page": page, "size": size}
	if categoryID > 0 {
		query["category"] = categoryID
	}

	var result Page[Thread]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/forum/threads",
		Query:  query,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// LatestThreads returns the newest threads shown on the home page.
func (service *ForumService) LatestThreads(context context.Context, limit int) (*Page[Thread], error) {
	var result Page[Thread]
	err := service.client.Do(context, backend.Request{
		Method: http.MethodGet,
		Path:   "/forum/threads/latest",
		Query:  map[string]any{"size": limit},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Thread returns one thread with its author and category expanded.
func (service *ForumService) Thread(context context.Context, threadID int) (*Thread, error) {
	var thread Thread
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/forum/threads/{id}",
		PathParams: map[string]any{"id": threadID},
		Errors:     map[int]string{404: "Thread not found"},
	}, &thread)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// CreateThread opens a new thread in a category.
func (service *ForumService) CreateThread(context context.Context, token, title, content string, categoryID int) (*Thread, error) {
	var thread Thread
	err := service.client.Do(context, backend.Request{
		Method: http.MethodPost,
		Path:   "/forum/threads",
		Token:  token,
		Body: map[string]any{
			"title":    title,
			"content":  content,
			"category": categoryID,
		},
		Errors: map[int]string{403: "This category is closed for new threads"},
	}, &thread)
	if err != nil {
		return nil, err
	}
	return &thread, nil
}

// Posts returns a page of replies in a thread.
func (service *ForumService) Posts(context context.Context, threadID, page, size int) (*Page[Post], error) {
	var result Page[Post]
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodGet,
		Path:       "/forum/threads/{id}/posts",
		PathParams: map[string]any{"id": threadID},
		Query:      map[string]any{"page": page, "size": size},
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePost replies to a thread.
func (service *ForumService) CreatePost(context context.Context, token string, threadID int, content string) (*Post, error) {
	var post Post
	err := service.client.Do(context, backend.Request{
		Method:     http.MethodPost,
		Path:       "/forum/threads/{id}/posts",
		PathParams: map[string]any{"id": threadID},
		Token:      token,
		Body:       map[string]any{"content": content},
		Errors:     map[int]string{403: "Thread is closed"},
	}, &post)
	if err != nil {
		return nil, err
	}
	return &post, nil
}
