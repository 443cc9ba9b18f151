// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command syncd keeps a local SQLite object store in sync with a remote
// record store and listens for the remote change notifications.
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/handler"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/server"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo.String())

	cfg, err := config.GetSyncConfig()
	if err != nil {
		logger.NewLogger("syncd").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.New("syncd", logger.Options{
		Enabled: cfg.Log.Enabled,
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
	})
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	remote, err := newRemote(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating remote transport")
	}

	objects := make([]service.LocalStore, 0, len(cfg.Sync.Types))
	for _, typeID := range cfg.Sync.Types {
		objects = append(objects, storages.Objects(typeID))
	}

	engine, err := service.NewEngine(service.Dependencies{
		Remote:      remote,
		Checkpoints: storages.Checkpoints,
		Markers:     storages.Markers,
		Objects:     objects,
		Settings:    cfg.Sync,
		Workers:     cfg.Workers,
		Logger:      log.WithStr("component", "engine"),
		OnReady: func() {
			log.Info().Strs("types", cfg.Sync.Types).Msg("sync engine ready")
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("error creating sync engine")
	}

	// Not fatal: the observer retries Setup on every poll or notification
	// until the engine is ready, and pushes ensure their zones on demand.
	if err := engine.Setup(ctx); err != nil {
		log.Err(err).Msg("sync engine setup incomplete")
	}

	engine.StartObservingLocalAndRemoteChanges(ctx)
	defer engine.StopObservingLocalAndRemoteChanges()

	appInfo := service.NewAppInfoService(buildInfo, log)

	handlers, err := handler.NewHandlers(engine, appInfo, cfg.Server, log)
	if err != nil {
		log.Warn().Err(err).Msg("no webhook listener configured, relying on polling")
		waitForSignal()
		return
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func newRemote(cfg config.SyncAdapter, log *logger.Logger) (adapter.RemoteTransport, error) {
	if cfg.Mode == "memory" {
		log.Warn().Msg("using in-memory remote, data is lost on exit")
		return adapter.NewMemoryRemote(adapter.WithImplicitZones()), nil
	}
	return adapter.NewHTTPTransport(cfg, log.WithStr("component", "transport"))
}

func waitForSignal() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()
	<-ctx.Done()
}
