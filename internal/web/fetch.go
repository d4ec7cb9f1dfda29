// Copyright (c) 2026 Frageo. All rights reserved.
// Author: dev@frageo.app

package web

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frageo/frageo/internal/backend/rest"
)

// # Parallel Section Fetching

// settle runs every fetch in parallel and waits for all of them to finish.
//
// Each fetch owns its own failure handling: a section that cannot load
// degrades to its empty state without failing the page.
func settle(fetches ...func()) {
	var group sync.WaitGroup
	group.Add(len(fetches))

	for _, fetch := range fetches {
		go func() {
			defer group.Done()
			fetch()
		}()
	}

	group.Wait()
}

// fetchPage loads one paginated section, degrading to nil on failure.
func fetchPage[T any](context context.Context, log *slog.Logger, name string, load func(context.Context) (*rest.Page[T], error)) []T {
	page, err := load(context)
	if err != nil {
		log.Warn("section_degraded",
			slog.String("section", name),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return page.Items
}

// fetchOne loads one single-record section, degrading to nil on failure.
func fetchOne[T any](context context.Context, log *slog.Logger, name string, load func(context.Context) (*T, error)) *T {
	record, err := load(context)
	if err != nil {
		log.Warn("section_degraded",
			slog.String("section", name),
			slog.String("error", err.Error()),
		)
		return nil
	}
	return record
}
