// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package backend implements the shared HTTP request pipeline for the upstream
REST API.

Every per-resource service in [rest] delegates to this single pipeline. A call
is described declaratively as a [Request] (method, URL template, path/query
parameters, optional body or multipart form, expected error messages) and the
pipeline handles everything mechanical:

  - URL building: {placeholder} substitution and recursive query flattening.
  - Body encoding: JSON objects, raw text, and multipart forms.
  - Header resolution: bearer token first, basic-auth fallback.
  - Error mapping: non-2xx statuses become a typed [*APIError].
  - Cancellation: context-driven abort of the in-flight transport call.

# Architecture

The pipeline is strictly transport-level. It knows nothing about resources,
sessions, or pages; those layers compose on top of it.
*/
package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frageo/frageo/internal/platform/constants"
)

// # Client Definition

// Client issues requests against one upstream API base URL.
//
// # Concurrency
//
// Client is immutable after construction and safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	basicUser  string
	basicPass  string
	log        *slog.Logger
}

// Option customizes a [Client] during construction.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport. Used by tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithBasicAuth sets fallback credentials used when a call carries no bearer token.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.basicUser = username
		c.basicPass = password
	}
}

// WithLogger sets the structured logger for request diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// NewClient constructs a pipeline client for the given base URL.
func NewClient(baseURL string, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: constants.BackendRequestTimeout,
		},
		log: slog.Default(),
	}

	for _, option := range options {
		option(client)
	}

	return client
}

// # Request Description

// Request declaratively describes one upstream API call.
type Request struct {
	// Method is the HTTP verb (GET, POST, PATCH, PUT, DELETE).
	Method string

	// Path is the URL template relative to the base URL. Segments wrapped in
	// braces ({id}) are substituted from PathParams; unmatched placeholders
	// are left untouched.
	Path string

	// PathParams supplies values for {placeholder} segments.
	PathParams map[string]any

	// Query is serialized by recursively flattening nested maps as
	// parent[child]=value and repeating array keys once per element.
	// Nil values are omitted entirely.
	Query map[string]any

	// Body is JSON-encoded unless it is a raw string (sent as text/plain).
	Body any

	// FormData, when non-nil, switches the call to multipart/form-data.
	// String values are appended as fields, [File] values as file parts, and
	// anything else is JSON-stringified.
	FormData map[string]any

	// Headers are caller-supplied headers merged over the defaults.
	Headers map[string]string

	// Token, when set, is attached as 'Authorization: Bearer <token>' and
	// takes precedence over the client's basic-auth fallback.
	Token string

	// Errors overrides the default status→message table for this call.
	Errors map[int]string
}

// # Pipeline Execution

/*
Do issues the described request and decodes a successful JSON response into out.

Description: The single shared request function. Builds the URL, encodes the
body, resolves credential headers, executes the transport call, and normalizes
the response.

Parameters:
  - context: context.Context (cancelling it aborts the in-flight call)
  - request: Request description
  - out: Pointer to the decoded response body, or nil to discard it

Returns:
  - error: ctx.Err() on cancellation, *APIError on non-2xx, transport errors otherwise
*/
func (client *Client) Do(context context.Context, request Request, out any) error {

	// Build the final URL: path substitution plus flattened query string.
	fullURL := client.baseURL + BuildURL(request.Path, request.PathParams, request.Query)

	// Encode the body (JSON, text/plain, or multipart).
	bodyReader, contentType, err := encodeBody(request)
	if err != nil {
		return fmt.Errorf("backend_encode_body_failed: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(context, request.Method, fullURL, bodyReader)
	if err != nil {
		return fmt.Errorf("backend_build_request_failed: %w", err)
	}

	client.resolveHeaders(httpRequest, request, contentType)

	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		// A cancelled context must surface as cancellation, never as a
		// fabricated network result.
		if ctxErr := context.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("backend_transport_failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	rawBody, err := io.ReadAll(response.Body)
	if err != nil {
		if ctxErr := context.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("backend_read_body_failed: %w", err)
	}

	// Non-2xx statuses become a typed APIError via the fixed table.
	if response.StatusCode < 200 || response.StatusCode > 299 {
		apiErr := newAPIError(response.StatusCode, response.Status, rawBody, request.Errors)
		client.log.Debug("backend_request_failed",
			slog.String("method", request.Method),
			slog.String("path", request.Path),
			slog.Int("status", response.StatusCode),
		)
		return apiErr
	}

	if out == nil || len(rawBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(rawBody, out); err != nil {
		return fmt.Errorf("backend_decode_response_failed: %w", err)
	}

	return nil
}

// resolveHeaders merges defaults, caller headers, and credential headers.
//
// Precedence: bearer token wins; basic auth only applies when both username
// and password are configured and no token is present.
func (client *Client) resolveHeaders(httpRequest *http.Request, request Request, contentType string) {
	httpRequest.Header.Set("Accept", "application/json")

	for name, value := range request.Headers {
		httpRequest.Header.Set(name, value)
	}

	if contentType != "" {
		httpRequest.Header.Set("Content-Type", contentType)
	}

	switch {
	case request.Token != "":
		httpRequest.Header.Set(constants.HeaderAuthorization, "Bearer "+request.Token)
	case client.basicUser != "" && client.basicPass != "":
		httpRequest.SetBasicAuth(client.basicUser, client.basicPass)
	}
}
