// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// pushPipeline turns dirty markers into batched remote writes and settles
// every per-record outcome.
type pushPipeline struct {
	remote    adapter.RemoteTransport
	markers   store.DirtyMarkerRepository
	zones     *zoneManager
	locks     *zoneLocks
	retry     retryPolicy
	batchSize int

	logger *logger.Logger
}

// pushEntry is one marker together with the record it refers to.
type pushEntry struct {
	marker models.DirtyMarker
	record models.Record
}

// push writes the pending changes of obj. A nil ids pushes every marker of
// the type, otherwise only the markers of the given objects.
func (p *pushPipeline) push(ctx context.Context, obj *SyncObject, ids []string) error {
	if obj.Paused() {
		return nil
	}

	unlock := p.locks.lock(obj.ZoneID)
	defer unlock()

	var (
		markers []models.DirtyMarker
		err     error
	)
	if ids == nil {
		markers, err = p.markers.Drain(ctx, obj.TypeID, 0)
	} else {
		markers, err = p.markers.Get(ctx, obj.TypeID, ids)
	}
	if err != nil {
		return newSyncError(ClassPermanent, "push", obj.TypeID, err)
	}
	if len(markers) == 0 {
		return nil
	}

	if err = p.zones.EnsureZone(ctx, obj); err != nil {
		return err
	}

	var errs []error
	for start := 0; start < len(markers); start += p.batchSize {
		end := min(start+p.batchSize, len(markers))
		if err = p.pushChunk(ctx, obj, markers[start:end]); err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil || ClassOf(err) == ClassPrecondition {
				break
			}
		}
	}

	p.logger.Debug().
		Str("func", "pushPipeline.push").
		Str("type_id", obj.TypeID).
		Int("count", len(markers)).
		Int("failed", len(errs)).
		Msg("push finished")

	return errors.Join(errs...)
}

// pushChunk writes one batch and retries the records the remote asked to
// come back later.
func (p *pushPipeline) pushChunk(ctx context.Context, obj *SyncObject, markers []models.DirtyMarker) error {
	pending, err := p.load(ctx, obj, markers)
	if err != nil {
		return err
	}

	var (
		backoff = p.retry.backoff()
		errs    []error
	)
	for len(pending) > 0 {
		batch := buildBatch(obj.ZoneID, pending)

		var outcomes []models.WriteOutcome
		err = p.retry.do(ctx, func(ctx context.Context) error {
			var werr error
			outcomes, werr = p.remote.WriteRecords(ctx, batch)
			return werr
		})
		if err != nil {
			if errors.Is(err, adapter.ErrZoneNotFound) {
				_ = p.zones.InvalidateZone(ctx, obj)
				return newSyncError(ClassPrecondition, "push", obj.TypeID, err)
			}
			return newSyncError(classify(err), "push", obj.TypeID, err)
		}

		unsettled, hint, settleErrs, err := p.settle(ctx, obj, pending, outcomes)
		if err != nil {
			return newSyncError(ClassPermanent, "push", obj.TypeID, err)
		}
		errs = append(errs, settleErrs...)

		if len(unsettled) == 0 {
			break
		}

		delay, stop := backoff.Next()
		if stop {
			errs = append(errs, newSyncError(ClassPermanent, "push", obj.TypeID,
				fmt.Errorf("%w: %d records still throttled", ErrRetryBudgetExhausted, len(unsettled))))
			break
		}
		if err = sleep(ctx, max(delay, hint)); err != nil {
			return newSyncError(ClassPermanent, "push", obj.TypeID, err)
		}
		pending = unsettled
	}

	return errors.Join(errs...)
}

// load pairs markers with their records. Markers whose object disappeared
// are dropped.
func (p *pushPipeline) load(ctx context.Context, obj *SyncObject, markers []models.DirtyMarker) ([]pushEntry, error) {
	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		ids = append(ids, m.ObjectID)
	}

	records, err := obj.Store.FetchDirty(ctx, ids)
	if err != nil {
		return nil, newSyncError(ClassPermanent, "push", obj.TypeID, err)
	}
	byID := make(map[string]models.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}

	entries := make([]pushEntry, 0, len(markers))
	var orphans []models.DirtyMarker
	for _, m := range markers {
		r, ok := byID[m.ObjectID]
		if !ok {
			orphans = append(orphans, m)
			continue
		}
		entries = append(entries, pushEntry{marker: m, record: r})
	}

	if len(orphans) > 0 {
		if _, err = p.markers.Acknowledge(ctx, orphans...); err != nil {
			return nil, newSyncError(ClassPermanent, "push", obj.TypeID, err)
		}
		p.logger.Debug().
			Str("func", "pushPipeline.load").
			Str("type_id", obj.TypeID).
			Int("count", len(orphans)).
			Msg("dropped markers of vanished objects")
	}

	return entries, nil
}

func buildBatch(zoneID string, entries []pushEntry) models.WriteBatch {
	batch := models.WriteBatch{ZoneID: zoneID}
	for _, e := range entries {
		if e.record.Deleted {
			batch.Deletes = append(batch.Deletes, e.record.ID)
			continue
		}
		batch.Upserts = append(batch.Upserts, e.record)
	}
	return batch
}

// settle applies the outcomes of one write. It returns the entries to retry
// with the largest remote delay hint among them, the rejections to surface,
// and a local failure that aborts the push.
func (p *pushPipeline) settle(ctx context.Context, obj *SyncObject, entries []pushEntry, outcomes []models.WriteOutcome) ([]pushEntry, time.Duration, []error, error) {
	log := logger.FromContextOr(ctx, p.logger)

	byID := make(map[string]models.WriteOutcome, len(outcomes))
	for _, o := range outcomes {
		byID[o.RecordID] = o
	}

	var (
		unsettled []pushEntry
		hint      time.Duration
		rejected  []error
	)
	for _, e := range entries {
		outcome, ok := byID[e.record.ID]
		if !ok {
			// no answer for this record, write it again
			unsettled = append(unsettled, e)
			continue
		}

		switch class := classifyStatus(outcome.Status); class {
		case "":
			if err := p.settleSuccess(ctx, obj, e, outcome); err != nil {
				return nil, 0, nil, err
			}

		case ClassConflict:
			if outcome.ServerRecord != nil {
				server := *outcome.ServerRecord
				server.ID = e.record.ID
				server.TypeID = obj.TypeID
				if err := obj.Store.ApplyRemoteChanges(ctx, []models.Record{server}, nil); err != nil {
					return nil, 0, nil, err
				}
			}
			if _, err := p.markers.Acknowledge(ctx, e.marker); err != nil {
				return nil, 0, nil, err
			}
			log.Info().
				Str("func", "pushPipeline.settle").
				Str("type_id", obj.TypeID).
				Str("id", e.record.ID).
				Msg("conflict resolved with server copy")

		case ClassTransient:
			unsettled = append(unsettled, e)
			hint = max(hint, outcome.RetryAfter)

		case ClassStaleness:
			if err := p.settleStale(ctx, obj, e, outcome.Status); err != nil {
				return nil, 0, nil, err
			}

		default:
			rejected = append(rejected, newSyncError(class, "push", obj.TypeID,
				fmt.Errorf("%w: %s: %s %s", ErrRecordRejected, e.record.ID, outcome.Status, outcome.Message)))
		}
	}

	return unsettled, hint, rejected, nil
}

// settleStale drops the marker of a write the remote no longer has a target
// for. A missing delete is purged and an invalid zone is forgotten.
func (p *pushPipeline) settleStale(ctx context.Context, obj *SyncObject, e pushEntry, status models.WriteStatus) error {
	log := logger.FromContextOr(ctx, p.logger)

	if _, err := p.markers.Acknowledge(ctx, e.marker); err != nil {
		return err
	}

	if status == models.WriteInvalidZone {
		if err := p.zones.InvalidateZone(ctx, obj); err != nil {
			return err
		}
		log.Warn().
			Str("func", "pushPipeline.settleStale").
			Str("type_id", obj.TypeID).
			Str("zone_id", obj.ZoneID).
			Str("id", e.record.ID).
			Msg("remote zone invalid, marker dropped")
		return nil
	}

	if e.record.Deleted {
		if err := purgeIgnoringMissing(ctx, obj.Store, e.record.ID); err != nil {
			return err
		}
	}
	log.Warn().
		Str("func", "pushPipeline.settleStale").
		Str("type_id", obj.TypeID).
		Str("id", e.record.ID).
		Msg("remote record not found, marker dropped")
	return nil
}

func (p *pushPipeline) settleSuccess(ctx context.Context, obj *SyncObject, e pushEntry, outcome models.WriteOutcome) error {
	removed, err := p.markers.Acknowledge(ctx, e.marker)
	if err != nil {
		return err
	}

	if !e.record.Deleted {
		err = obj.Store.MarkPushed(ctx, e.record.ID, outcome.ChangeTag)
		if errors.Is(err, store.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if removed > 0 {
		return purgeIgnoringMissing(ctx, obj.Store, e.record.ID)
	}

	// a newer local write superseded the delete; the remote copy is gone
	err = obj.Store.MarkPushed(ctx, e.record.ID, "")
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil
	}
	return err
}

func purgeIgnoringMissing(ctx context.Context, local store.LocalStore, id string) error {
	err := local.Purge(ctx, id)
	if errors.Is(err, store.ErrObjectNotFound) {
		return nil
	}
	return err
}
