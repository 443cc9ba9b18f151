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
	"github.com/MKhiriev/go-cloud-sync/models"
	sq "github.com/Masterminds/squirrel"
)

var objectColumns = []string{"type_id", "id", "payload", "deleted", "modified_at", "change_tag", "pushed", "updated_at"}

// objectRepository is the SQLite-backed [LocalStore] of a single type. All
// types share the "objects" table and are separated by type_id.
type objectRepository struct {
	*DB
	typeID string
	logger *logger.Logger
}

// NewObjectRepository constructs the [LocalStore] of typeID backed by db.
func NewObjectRepository(db *DB, typeID string, logger *logger.Logger) LocalStore {
	return &objectRepository{
		DB:     db,
		typeID: typeID,
		logger: logger,
	}
}

func (o *objectRepository) TypeID() string {
	return o.typeID
}

func (o *objectRepository) Get(ctx context.Context, id string) (models.Record, error) {
	log := logger.FromContextOr(ctx, o.logger)

	record, err := scanRecord(o.DB.QueryRowContext(ctx, getObject, o.typeID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Record{}, ErrObjectNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.Get").
			Str("type_id", o.typeID).
			Str("id", id).
			Msg("failed to scan object row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return record, nil
}

func (o *objectRepository) FetchDirty(ctx context.Context, ids []string) ([]models.Record, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	builder := psql.Select(objectColumns...).
		From("objects").
		Where(sq.Eq{"type_id": o.typeID, "id": ids}).
		OrderBy("id")

	return o.query(ctx, "objectRepository.FetchDirty", builder)
}

func (o *objectRepository) ListAll(ctx context.Context) ([]models.Record, error) {
	log := logger.FromContextOr(ctx, o.logger)

	rows, err := o.DB.QueryContext(ctx, listObjects, o.typeID)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.ListAll").
			Str("type_id", o.typeID).
			Msg("failed to execute query for listing objects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return o.collect(ctx, "objectRepository.ListAll", rows)
}

func (o *objectRepository) query(ctx context.Context, funcName string, builder sq.SelectBuilder) ([]models.Record, error) {
	log := logger.FromContextOr(ctx, o.logger)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := o.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("type_id", o.typeID).
			Msg("failed to execute query for objects")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return o.collect(ctx, funcName, rows)
}

func (o *objectRepository) collect(ctx context.Context, funcName string, rows *sql.Rows) ([]models.Record, error) {
	log := logger.FromContextOr(ctx, o.logger)
	defer rows.Close()

	records := make([]models.Record, 0, 16)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan object row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var (
		record    models.Record
		updatedAt sql.NullTime
	)
	err := row.Scan(
		&record.TypeID,
		&record.ID,
		&record.Payload,
		&record.Deleted,
		&record.ModifiedAt,
		&record.ChangeTag,
		&record.Pushed,
		&updatedAt,
	)
	if err != nil {
		return models.Record{}, err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		record.UpdatedAt = &t
	}

	return record, nil
}

// Upsert stores local edits. The payload is replaced, a pending delete is
// revived and the modification marker grows by one. The change tag and the
// pushed flag of an existing row are kept.
func (o *objectRepository) Upsert(ctx context.Context, records ...models.Record) error {
	if len(records) == 0 {
		return nil
	}
	if err := o.checkRecords(records); err != nil {
		return err
	}
	log := logger.FromContextOr(ctx, o.logger)

	now := time.Now().UTC()
	err := o.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertLocalObject)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
		}
		defer stmt.Close()

		for _, record := range records {
			if _, err = stmt.ExecContext(ctx, o.typeID, record.ID, record.Payload, now); err != nil {
				return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.Upsert").
			Str("type_id", o.typeID).
			Int("count", len(records)).
			Msg("failed to upsert objects")
		return err
	}

	return nil
}

func (o *objectRepository) checkRecords(records []models.Record) error {
	for _, record := range records {
		if record.ID == "" {
			return ErrEmptyObjectID
		}
		if record.TypeID != "" && record.TypeID != o.typeID {
			return fmt.Errorf("%w: %s is not %s", ErrTypeMismatch, record.TypeID, o.typeID)
		}
	}
	return nil
}

func (o *objectRepository) SoftDelete(ctx context.Context, id string) error {
	log := logger.FromContextOr(ctx, o.logger)

	res, err := o.DB.ExecContext(ctx, softDeleteObject, time.Now().UTC(), o.typeID, id)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.SoftDelete").
			Str("type_id", o.typeID).
			Str("id", id).
			Msg("failed to soft delete object")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

func (o *objectRepository) MarkPushed(ctx context.Context, id, changeTag string) error {
	log := logger.FromContextOr(ctx, o.logger)

	res, err := o.DB.ExecContext(ctx, markObjectPushed, changeTag, o.typeID, id)
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.MarkPushed").
			Str("type_id", o.typeID).
			Str("id", id).
			Msg("failed to mark object pushed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if n == 0 {
		return ErrObjectNotFound
	}
	return nil
}

func (o *objectRepository) Purge(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}

	return o.exec(ctx, "objectRepository.Purge", psql.Delete("objects").
		Where(sq.Eq{"type_id": o.typeID, "id": ids}))
}

// ResetZone forgets the cached server state of the type. Rows in keep hold
// unpushed local edits and survive the reset.
func (o *objectRepository) ResetZone(ctx context.Context, keep []string) error {
	return o.exec(ctx, "objectRepository.ResetZone", psql.Delete("objects").
		Where(sq.Eq{"type_id": o.typeID}).
		Where(sq.NotEq{"id": keep}))
}

func (o *objectRepository) exec(ctx context.Context, funcName string, builder sq.DeleteBuilder) error {
	log := logger.FromContextOr(ctx, o.logger)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = o.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", funcName).
			Str("type_id", o.typeID).
			Msg("failed to delete objects")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

// ApplyRemoteChanges writes server copies and purges remote deletions in one
// transaction. Applying the same changes twice leaves the same rows.
func (o *objectRepository) ApplyRemoteChanges(ctx context.Context, upserts []models.Record, purges []string) error {
	if len(upserts) == 0 && len(purges) == 0 {
		return nil
	}
	if err := o.checkRecords(upserts); err != nil {
		return err
	}
	log := logger.FromContextOr(ctx, o.logger)

	now := time.Now().UTC()
	err := o.WithTx(ctx, func(tx *sql.Tx) error {
		if len(upserts) > 0 {
			stmt, err := tx.PrepareContext(ctx, upsertRemoteObject)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrPreparingStatement, err)
			}
			defer stmt.Close()

			for _, record := range upserts {
				_, err = stmt.ExecContext(ctx, o.typeID, record.ID, record.Payload, record.ModifiedAt, record.ChangeTag, now)
				if err != nil {
					return fmt.Errorf("%w (id=%s): %w", ErrExecutingStatement, record.ID, err)
				}
			}
		}

		if len(purges) > 0 {
			query, args, err := psql.Delete("objects").
				Where(sq.Eq{"type_id": o.typeID, "id": purges}).
				ToSql()
			if err != nil {
				return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
			}
			if _, err = tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "objectRepository.ApplyRemoteChanges").
			Str("type_id", o.typeID).
			Int("upserts", len(upserts)).
			Int("purges", len(purges)).
			Msg("failed to apply remote changes")
		return err
	}

	return nil
}
