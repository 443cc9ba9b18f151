// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package handler assembles the transport handlers of the sync daemon.
package handler

import (
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/handler/http"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

// NewHandlers builds the webhook handler. The daemon cannot receive remote
// notifications without a listen address, so an empty one is an error.
func NewHandlers(engine service.SyncEngine, appInfo service.AppInfoService, cfg config.SyncServer, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(engine, appInfo, logger),
	}, nil
}
