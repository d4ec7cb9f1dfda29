// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

/*
Package web wires together the HTTP router, middleware chain, and all page
handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework
    (chi router) and the server-rendered page tree (html/template).
  - Only this package and cmd/portal are allowed to import net/http server
    primitives.

Pages are rendered server-side from embedded templates. Independent page
sections are fetched in parallel and degrade individually on failure.
*/
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/frageo/frageo/internal/session"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// pageNames lists every renderable page template.
var pageNames = []string{
	"home",
	"forum",
	"thread",
	"users",
	"profile",
	"chat",
	"login",
	"register",
	"admin_users",
	"admin_roles",
	"admin_servers",
	"error",
}

// view is the envelope handed to every page template.
type view struct {
	// Title is the page title.
	Title string

	// Session is the caller's session, nil when anonymous.
	Session *session.Session

	// Flash is a one-shot success notice carried via query parameter.
	Flash string

	// Error is a one-shot failure notice carried via query parameter.
	Error string

	// Data is the page-specific payload.
	Data any
}

// # Renderer

// Renderer owns the parsed template set.
type Renderer struct {
	pages map[string]*template.Template
	log   *slog.Logger
}

/*
NewRenderer parses the embedded templates.

Returns:
  - An error when a page template is missing or malformed; the process must
    not start with a broken template set.
*/
func NewRenderer(log *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))

	for _, name := range pageNames {
		parsed, err := template.ParseFS(templateFS, "templates/layout.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("template_parse_failed: %s: %w", name, err)
		}
		pages[name] = parsed
	}

	return &Renderer{pages: pages, log: log}, nil
}

// RenderBytes renders a page into a byte slice, for page caching.
func (renderer *Renderer) RenderBytes(page string, data view) ([]byte, error) {
	parsed, found := renderer.pages[page]
	if !found {
		return nil, fmt.Errorf("template_unknown: %s", page)
	}

	var buffer bytes.Buffer
	if err := parsed.ExecuteTemplate(&buffer, "layout", data); err != nil {
		return nil, fmt.Errorf("template_render_failed: %s: %w", page, err)
	}
	return buffer.Bytes(), nil
}

// Render writes a fully rendered page.
//
// The page is rendered into a buffer first so a template failure never
// leaves a half-written response.
func (renderer *Renderer) Render(writer http.ResponseWriter, status int, page string, data view) {
	rendered, err := renderer.RenderBytes(page, data)
	if err != nil {
		renderer.log.Error("render_failed", slog.String("page", page), slog.String("error", err.Error()))
		http.Error(writer, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write(rendered)
}
