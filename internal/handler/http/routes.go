// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	router.Post("/api/notifications/changed", h.remoteDataChanged)

	router.Post("/api/sync/pull", h.pull)
	router.Post("/api/sync/push", h.push)
	router.Get("/api/sync/zones", h.zoneStates)

	router.Get("/api/version", h.getServerVersion)

	router.MethodNotAllowed(h.methodNotRegistered)

	return router
}
