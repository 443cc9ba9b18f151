// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/models"
)

type appInfoService struct {
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

// NewAppInfoService returns the service reporting info. Empty build fields
// are reported as "N/A" by the handler.
func NewAppInfoService(info models.AppBuildInfo, logger *logger.Logger) AppInfoService {
	return &appInfoService{
		buildInfo: info,
		logger:    logger,
	}
}

func (s *appInfoService) GetAppBuildInfo(ctx context.Context) models.AppBuildInfo {
	return s.buildInfo
}
