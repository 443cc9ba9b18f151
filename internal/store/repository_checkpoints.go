// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

var (
	flagSet   = []byte{1}
	flagUnset = []byte{0}
)

// checkpointRepository is the SQLite-backed implementation of
// [CheckpointRepository] over the "checkpoints" table.
type checkpointRepository struct {
	*DB
	logger *logger.Logger
}

// NewCheckpointRepository constructs a [CheckpointRepository] backed by db.
func NewCheckpointRepository(db *DB, logger *logger.Logger) CheckpointRepository {
	return &checkpointRepository{
		DB:     db,
		logger: logger,
	}
}

func (c *checkpointRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	log := logger.FromContextOr(ctx, c.logger)

	var value []byte
	err := c.DB.QueryRowContext(ctx, getCheckpoint, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.Get").
			Str("key", key).
			Msg("failed to read checkpoint")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, true, nil
}

func (c *checkpointRepository) Set(ctx context.Context, key string, value []byte) error {
	log := logger.FromContextOr(ctx, c.logger)

	if value == nil {
		value = []byte{}
	}
	if _, err := c.DB.ExecContext(ctx, setCheckpoint, key, value, time.Now().UTC()); err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.Set").
			Str("key", key).
			Msg("failed to write checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (c *checkpointRepository) Clear(ctx context.Context, key string) error {
	log := logger.FromContextOr(ctx, c.logger)

	if _, err := c.DB.ExecContext(ctx, clearCheckpoint, key); err != nil {
		log.Err(err).
			Str("func", "checkpointRepository.Clear").
			Str("key", key).
			Msg("failed to clear checkpoint")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// Flag reads a boolean stored with SetFlag. A missing key reads as false.
func (c *checkpointRepository) Flag(ctx context.Context, key string) (bool, error) {
	value, found, err := c.Get(ctx, key)
	if err != nil || !found {
		return false, err
	}
	return len(value) > 0 && value[0] != 0, nil
}

func (c *checkpointRepository) SetFlag(ctx context.Context, key string, value bool) error {
	if value {
		return c.Set(ctx, key, flagSet)
	}
	return c.Set(ctx, key, flagUnset)
}
