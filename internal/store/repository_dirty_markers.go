// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/models"
	sq "github.com/Masterminds/squirrel"
)

var dirtyMarkerColumns = []string{"type_id", "object_id", "kind", "seq", "queued_at"}

// dirtyMarkerRepository is the SQLite-backed implementation of
// [DirtyMarkerRepository] over the "dirty_markers" table.
//
// Sequences are global across types, so markers of one type drained in seq
// order are also in the order the mutations happened.
type dirtyMarkerRepository struct {
	*DB
	logger *logger.Logger
}

// NewDirtyMarkerRepository constructs a [DirtyMarkerRepository] backed by db.
func NewDirtyMarkerRepository(db *DB, logger *logger.Logger) DirtyMarkerRepository {
	return &dirtyMarkerRepository{
		DB:     db,
		logger: logger,
	}
}

func (d *dirtyMarkerRepository) Mark(ctx context.Context, typeID, objectID string, kind models.OperationKind) (models.DirtyMarker, error) {
	log := logger.FromContextOr(ctx, d.logger)

	if typeID == "" {
		return models.DirtyMarker{}, ErrEmptyTypeID
	}
	if objectID == "" {
		return models.DirtyMarker{}, ErrEmptyObjectID
	}

	marker := models.DirtyMarker{
		TypeID:   typeID,
		ObjectID: objectID,
		Kind:     kind,
		QueuedAt: time.Now().UTC(),
	}
	if err := d.DB.QueryRowContext(ctx, markDirty, typeID, objectID, string(kind), marker.QueuedAt).Scan(&marker.Seq); err != nil {
		log.Err(err).
			Str("func", "dirtyMarkerRepository.Mark").
			Str("type_id", typeID).
			Str("object_id", objectID).
			Msg("failed to record dirty marker")
		return models.DirtyMarker{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return marker, nil
}

func (d *dirtyMarkerRepository) Drain(ctx context.Context, typeID string, limit int) ([]models.DirtyMarker, error) {
	builder := psql.Select(dirtyMarkerColumns...).
		From("dirty_markers").
		Where(sq.Eq{"type_id": typeID}).
		OrderBy("seq ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	return d.query(ctx, "dirtyMarkerRepository.Drain", builder)
}

func (d *dirtyMarkerRepository) Get(ctx context.Context, typeID string, objectIDs []string) ([]models.DirtyMarker, error) {
	if len(objectIDs) == 0 {
		return nil, nil
	}

	builder := psql.Select(dirtyMarkerColumns...).
		From("dirty_markers").
		Where(sq.Eq{"type_id": typeID, "object_id": objectIDs}).
		OrderBy("seq ASC")

	return d.query(ctx, "dirtyMarkerRepository.Get", builder)
}

func (d *dirtyMarkerRepository) query(ctx context.Context, funcName string, builder sq.SelectBuilder) ([]models.DirtyMarker, error) {
	log := logger.FromContextOr(ctx, d.logger)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query dirty markers")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var markers []models.DirtyMarker
	for rows.Next() {
		var (
			marker models.DirtyMarker
			kind   string
		)
		if err = rows.Scan(&marker.TypeID, &marker.ObjectID, &kind, &marker.Seq, &marker.QueuedAt); err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan dirty marker row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		marker.Kind = models.OperationKind(kind)
		markers = append(markers, marker)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return markers, nil
}

// Acknowledge deletes each marker with a compare-and-set on its sequence, so
// a marker replaced by a newer local write survives the acknowledgement.
func (d *dirtyMarkerRepository) Acknowledge(ctx context.Context, markers ...models.DirtyMarker) (int64, error) {
	if len(markers) == 0 {
		return 0, nil
	}
	log := logger.FromContextOr(ctx, d.logger)

	var removed int64
	err := d.WithTx(ctx, func(tx *sql.Tx) error {
		removed = 0

		stmt, err := tx.PrepareContext(ctx, acknowledgeDirty)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
		}
		defer stmt.Close()

		for _, marker := range markers {
			res, err := stmt.ExecContext(ctx, marker.TypeID, marker.ObjectID, marker.Seq)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			n, err := res.RowsAffected()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
			removed += n
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "dirtyMarkerRepository.Acknowledge").
			Int("count", len(markers)).
			Msg("failed to acknowledge dirty markers")
		return 0, err
	}

	return removed, nil
}

func (d *dirtyMarkerRepository) Remove(ctx context.Context, typeID string, objectIDs ...string) error {
	if len(objectIDs) == 0 {
		return nil
	}

	log := logger.FromContextOr(ctx, d.logger)

	query, args, err := psql.Delete("dirty_markers").
		Where(sq.Eq{"type_id": typeID, "object_id": objectIDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = d.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "dirtyMarkerRepository.Remove").
			Str("type_id", typeID).
			Int("count", len(objectIDs)).
			Msg("failed to remove dirty markers")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (d *dirtyMarkerRepository) Count(ctx context.Context, typeID string) (int, error) {
	var n int
	if err := d.DB.QueryRowContext(ctx, countDirty, typeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return n, nil
}
