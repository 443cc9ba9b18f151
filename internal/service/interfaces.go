// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// LocalStore is the local-store accessor of one syncable type.
type LocalStore = store.LocalStore

// SyncEngine is the engine surface served by the HTTP handler.
type SyncEngine interface {
	Pull(ctx context.Context) error
	Push(ctx context.Context, refs ...models.ObjectRef) error
	PushAll(ctx context.Context) error
	NotifyRemoteDataChanged()
	ZoneStates() map[string]models.PullState
}

// AppInfoService reports the build of the running daemon.
type AppInfoService interface {
	GetAppBuildInfo(ctx context.Context) models.AppBuildInfo
}
