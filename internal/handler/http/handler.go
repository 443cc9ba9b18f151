// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

type Handler struct {
	engine  service.SyncEngine
	appInfo service.AppInfoService

	logger *logger.Logger
}

func NewHandler(engine service.SyncEngine, appInfo service.AppInfoService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		engine:  engine,
		appInfo: appInfo,
		logger:  logger,
	}
}
