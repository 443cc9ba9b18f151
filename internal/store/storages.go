// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// Storages groups the repositories of the local sync database into a single
// value that can be passed to the service layer.
type Storages struct {
	DB *DB

	// Checkpoints holds change tokens and zone/subscription flags.
	Checkpoints CheckpointRepository

	// Markers is the dirty queue of local changes awaiting push.
	Markers DirtyMarkerRepository

	mu      sync.Mutex
	objects map[string]LocalStore
	logger  *logger.Logger
}

// NewStorages initialises the storage layer using the supplied configuration
// and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Wires the checkpoint and dirty marker repositories.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewStorages(ctx context.Context, cfg config.SyncStorage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("func", "NewStorages").Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewStoragesFromDB(db, logger), nil
}

// NewStoragesFromDB wires the repositories around an already migrated
// connection.
func NewStoragesFromDB(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		DB:          db,
		Checkpoints: NewCheckpointRepository(db, logger),
		Markers:     NewDirtyMarkerRepository(db, logger),
		objects:     make(map[string]LocalStore),
		logger:      logger,
	}
}

// Objects returns the local store accessor of typeID. Accessors are created
// on first use and shared afterwards.
func (s *Storages) Objects(typeID string) LocalStore {
	s.mu.Lock()
	defer s.mu.Unlock()

	if accessor, ok := s.objects[typeID]; ok {
		return accessor
	}
	accessor := NewObjectRepository(s.DB, typeID, s.logger.WithStr("type_id", typeID))
	s.objects[typeID] = accessor
	return accessor
}

func (s *Storages) Close() error {
	return s.DB.Close()
}
