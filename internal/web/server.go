// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/frageo/frageo/internal/platform/config"
	"github.com/frageo/frageo/internal/platform/constants"
	"github.com/frageo/frageo/internal/platform/middleware"
	"github.com/frageo/frageo/internal/session"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all page-specific HTTP handler sets.
//
// # Usage
//
// New surfaces add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Pages renders the public page tree.
	Pages *PageHandler

	// Auth handles login, registration, and logout.
	Auth *AuthHandler

	// Steam handles the Steam OpenID handshake.
	Steam *SteamHandler

	// Forms binds member settings and forum forms to the server actions.
	Forms *FormHandler

	// Admin renders the staff panel.
	Admin *AdminHandler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, manager *session.Manager, codec *session.CookieCodec, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.LoadSession(manager, codec, cfg.IsProduction()))
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Page Tree
	r.Mount("/", h.Pages.Routes())

	// Session lifecycle surfaces
	r.Get("/login", h.Auth.loginForm)
	r.Post("/login", h.Auth.login)
	r.Get("/register", h.Auth.registerForm)
	r.Post("/register", h.Auth.register)
	r.Post("/logout", h.Auth.logout)
	r.Get("/login/steam", h.Steam.redirect)
	r.Get("/login/steam/callback", h.Steam.callback)

	// Member forms behind the session guard
	r.Group(func(member chi.Router) {
		member.Use(middleware.RequireSession)
		member.Post("/settings/username", h.Forms.changeUsername)
		member.Post("/settings/email", h.Forms.requestEmailChange)
		member.Post("/settings/email/confirm", h.Forms.confirmEmailChange)
		member.Post("/settings/avatar", h.Forms.changeAvatar)
		member.Post("/settings/avatar/delete", h.Forms.deleteAvatar)
		member.Post("/forum/threads", h.Forms.createThread)
		member.Post("/forum/threads/{threadID}/posts", h.Forms.createPost)
	})

	// Staff panel behind the staff guard
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireStaff)
		admin.Mount("/", h.Admin.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
