// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

// Command portal is the entry point for the Frageo web portal.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis (sessions + page cache).
//  4. Construct the backend API client and its per-resource services.
//  5. Wire the session manager, server actions, and chat client.
//  6. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frageo/frageo/internal/actions"
	"github.com/frageo/frageo/internal/backend"
	"github.com/frageo/frageo/internal/backend/rest"
	"github.com/frageo/frageo/internal/cache"
	"github.com/frageo/frageo/internal/chat"
	"github.com/frageo/frageo/internal/platform/config"
	"github.com/frageo/frageo/internal/platform/constants"
	redisstore "github.com/frageo/frageo/internal/platform/redis"
	"github.com/frageo/frageo/internal/session"
	"github.com/frageo/frageo/internal/web"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "frageo"))
	slog.SetDefault(log)

	log.Info("[Frageo] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "frageo"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Root context for background workers, cancelled on shutdown.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// ── 3. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 4. Backend API Client ─────────────────────────────────────────────
	clientOptions := []backend.Option{backend.WithLogger(log)}
	if cfg.APIBasicUser != "" && cfg.APIBasicPass != "" {
		clientOptions = append(clientOptions, backend.WithBasicAuth(cfg.APIBasicUser, cfg.APIBasicPass))
	}
	apiClient := backend.NewClient(cfg.APIURL, clientOptions...)
	services := rest.NewServices(apiClient)

	// ── 5. Session Layer ──────────────────────────────────────────────────
	verifier := session.NewTokenVerifier(cfg.APISecret)
	sessionStore := session.NewRedisStore(rdb)
	manager := session.NewManager(services.Auth, services.Users, sessionStore, verifier,
		session.WithManagerLogger(log),
	)
	codec := session.NewCookieCodec(cfg.SessionKey())

	// ── 6. Page Cache & Actions ───────────────────────────────────────────
	pageCache := cache.NewStore(rdb, log)
	actionSet := actions.NewActions(services.Auth, services.Users, services.Forum, services.Admin, pageCache, log)

	// ── 7. Realtime Chat ──────────────────────────────────────────────────
	chatClient := chat.NewClient(cfg.WSURL, chat.WithLogger(log))
	if cfg.WSURL != "" {
		go func() {
			if err := chatClient.Run(rootCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("chat_client_stopped", slog.Any("error", err))
			}
		}()
	}

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := web.NewHealthHandlers(web.HealthDependencies{
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckUpstream: func() error {
			probeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_, err := services.Forum.Categories(probeCtx)
			return err
		},
	}, log)

	// ── 9. Page Handlers ──────────────────────────────────────────────────
	renderer, err := web.NewRenderer(log)
	must(log, err, "parse templates")

	handlers := web.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Pages:     web.NewPageHandler(services, chatClient, renderer, pageCache, log),
		Auth:      web.NewAuthHandler(manager, codec, actionSet, renderer, cfg.IsProduction(), log),
		Steam:     web.NewSteamHandler(services.Auth, manager, codec, cfg.SteamReturnURL, cfg.IsProduction(), log),
		Forms:     web.NewFormHandler(actionSet),
		Admin:     web.NewAdminHandler(services, actionSet, renderer),
	}

	server := web.NewServer(rootCtx, cfg, log, manager, codec, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Stop the chat client before draining HTTP connections.
	if cerr := chatClient.Close(); cerr != nil {
		log.Warn("chat close error", slog.Any("error", cerr))
	}
	rootCancel()

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
