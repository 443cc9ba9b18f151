// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// ChangeTracker is the entry point for local mutations of registered types.
// It writes the object and queues the dirty marker the push pipeline drains.
// Writes hold the zone lock, so they never interleave with a push or pull of
// the same zone.
type ChangeTracker struct {
	markers store.DirtyMarkerRepository
	objects map[string]*SyncObject
	locks   *zoneLocks

	onChange func(typeID string)
	logger   *logger.Logger
}

func newChangeTracker(markers store.DirtyMarkerRepository, objects map[string]*SyncObject, locks *zoneLocks, logger *logger.Logger) *ChangeTracker {
	return &ChangeTracker{
		markers: markers,
		objects: objects,
		locks:   locks,
		logger:  logger,
	}
}

func (t *ChangeTracker) object(typeID string) (*SyncObject, error) {
	obj, ok := t.objects[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeID)
	}
	return obj, nil
}

// Save stores records of typeID and queues an upsert marker for each. A
// paused type stores the records without queuing anything.
func (t *ChangeTracker) Save(ctx context.Context, typeID string, records ...models.Record) error {
	obj, err := t.object(typeID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		records[i].TypeID = typeID
	}

	queued, err := t.save(ctx, obj, records)
	if err != nil {
		return err
	}
	if queued {
		t.notify(typeID)
	}
	return nil
}

func (t *ChangeTracker) save(ctx context.Context, obj *SyncObject, records []models.Record) (bool, error) {
	unlock := t.locks.lock(obj.ZoneID)
	defer unlock()

	if err := obj.Store.Upsert(ctx, records...); err != nil {
		return false, fmt.Errorf("error saving %s objects: %w", obj.TypeID, err)
	}

	if obj.Paused() {
		return false, nil
	}

	for _, r := range records {
		if _, err := t.markers.Mark(ctx, obj.TypeID, r.ID, models.OperationUpsert); err != nil {
			return false, fmt.Errorf("error marking %s/%s dirty: %w", obj.TypeID, r.ID, err)
		}
	}
	return true, nil
}

// Delete removes objects of typeID. Objects the remote never accepted are
// purged together with their marker. Pushed objects are soft-deleted and a
// delete marker is queued. Unknown ids are skipped.
func (t *ChangeTracker) Delete(ctx context.Context, typeID string, ids ...string) error {
	obj, err := t.object(typeID)
	if err != nil {
		return err
	}

	queued, err := t.delete(ctx, obj, ids)
	if queued > 0 {
		t.notify(typeID)
	}
	return err
}

func (t *ChangeTracker) delete(ctx context.Context, obj *SyncObject, ids []string) (int, error) {
	log := logger.FromContextOr(ctx, t.logger)
	typeID := obj.TypeID

	unlock := t.locks.lock(obj.ZoneID)
	defer unlock()

	var queued int
	for _, id := range ids {
		record, err := obj.Store.Get(ctx, id)
		if errors.Is(err, store.ErrObjectNotFound) {
			log.Debug().
				Str("func", "ChangeTracker.Delete").
				Str("type_id", typeID).
				Str("id", id).
				Msg("object already gone")
			continue
		}
		if err != nil {
			return queued, fmt.Errorf("error loading %s/%s: %w", typeID, id, err)
		}

		if !record.Pushed {
			if err = obj.Store.Purge(ctx, id); err != nil {
				return queued, fmt.Errorf("error purging %s/%s: %w", typeID, id, err)
			}
			if err = t.markers.Remove(ctx, typeID, id); err != nil {
				return queued, fmt.Errorf("error removing %s/%s marker: %w", typeID, id, err)
			}
			continue
		}

		if err = obj.Store.SoftDelete(ctx, id); err != nil {
			return queued, fmt.Errorf("error deleting %s/%s: %w", typeID, id, err)
		}
		if obj.Paused() {
			continue
		}
		if _, err = t.markers.Mark(ctx, typeID, id, models.OperationDelete); err != nil {
			return queued, fmt.Errorf("error marking %s/%s deleted: %w", typeID, id, err)
		}
		queued++
	}
	return queued, nil
}

// Drain returns up to limit markers of typeID oldest-first without removing
// them. A limit of zero returns all of them.
func (t *ChangeTracker) Drain(ctx context.Context, typeID string, limit int) ([]models.DirtyMarker, error) {
	if _, err := t.object(typeID); err != nil {
		return nil, err
	}
	return t.markers.Drain(ctx, typeID, limit)
}

// Acknowledge removes markers whose sequence is unchanged and returns how
// many were removed.
func (t *ChangeTracker) Acknowledge(ctx context.Context, markers ...models.DirtyMarker) (int64, error) {
	if len(markers) == 0 {
		return 0, nil
	}
	return t.markers.Acknowledge(ctx, markers...)
}

// Pending returns the number of markers queued for typeID.
func (t *ChangeTracker) Pending(ctx context.Context, typeID string) (int, error) {
	if _, err := t.object(typeID); err != nil {
		return 0, err
	}
	return t.markers.Count(ctx, typeID)
}

func (t *ChangeTracker) notify(typeID string) {
	if t.onChange != nil {
		t.onChange(typeID)
	}
}
