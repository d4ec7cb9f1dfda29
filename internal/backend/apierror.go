// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package backend

import (
	"encoding/json"
	"errors"
	"fmt"
)

// # Status Table

// statusMessages is the fixed status→message table consulted before falling
// back to a generic error description.
var statusMessages = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
}

// # Typed API Error

// APIError is the typed error produced for every non-2xx upstream response.
//
// It carries the HTTP status, the parsed response body, and a human-readable
// message resolved from the per-request override table, the fixed status
// table, or a generic description embedding the serialized body.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// StatusText is the HTTP status line text.
	StatusText string
	// Body is the parsed JSON response body, or the raw string when not JSON.
	Body any
	// Message is the resolved human-readable description.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string { return e.Message }

// Detail extracts the backend-supplied message from the error body, if the
// body follows a recognized shape ({"detail": ...} or {"error": ...}).
// Returns "" for unrecognized bodies.
func (e *APIError) Detail() string {
	body, ok := e.Body.(map[string]any)
	if !ok {
		return ""
	}

	for _, field := range []string{"detail", "error", "message"} {
		if text, ok := body[field].(string); ok && text != "" {
			return text
		}
	}

	return ""
}

// newAPIError builds an [*APIError] for a non-2xx response.
//
// Message resolution order: per-request overrides, then the fixed table, then
// a generic description embedding status, status text, and serialized body.
func newAPIError(status int, statusText string, rawBody []byte, overrides map[int]string) *APIError {
	var body any
	if len(rawBody) > 0 {
		if err := json.Unmarshal(rawBody, &body); err != nil {
			body = string(rawBody)
		}
	}

	message, found := overrides[status]
	if !found {
		message, found = statusMessages[status]
	}
	if !found {
		message = fmt.Sprintf("Generic Error: status: %d; status text: %s; body: %s",
			status, statusText, string(rawBody))
	}

	return &APIError{
		Status:     status,
		StatusText: statusText,
		Body:       body,
		Message:    message,
	}
}

// # Helpers

// IsAPIError extracts the [*APIError] from err's chain. Returns nil if absent.
func IsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

// IsStatus reports whether err is an [*APIError] with the given HTTP status.
func IsStatus(err error, status int) bool {
	apiErr := IsAPIError(err)
	return apiErr != nil && apiErr.Status == status
}
