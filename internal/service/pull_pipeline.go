// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// pullPipeline fetches remote change feeds page by page and applies them to
// the local stores. A token is persisted only after its page is committed.
type pullPipeline struct {
	remote      adapter.RemoteTransport
	checkpoints store.CheckpointRepository
	markers     store.DirtyMarkerRepository
	zones       *zoneManager
	locks       *zoneLocks
	retry       retryPolicy
	pageSize    int

	mu     sync.Mutex
	states map[string]models.PullState

	logger *logger.Logger
}

func (p *pullPipeline) setState(typeID string, state models.PullState) {
	p.mu.Lock()
	p.states[typeID] = state
	p.mu.Unlock()
}

func (p *pullPipeline) state(typeID string) models.PullState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s, ok := p.states[typeID]; ok {
		return s
	}
	return models.PullIdle
}

func (p *pullPipeline) snapshot() map[string]models.PullState {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]models.PullState, len(p.states))
	for k, v := range p.states {
		out[k] = v
	}
	return out
}

// pullZone applies every change of the zone of obj since its token.
func (p *pullPipeline) pullZone(ctx context.Context, obj *SyncObject) error {
	unlock := p.locks.lock(obj.ZoneID)
	defer unlock()
	defer p.setState(obj.TypeID, models.PullIdle)

	log := logger.FromContextOr(ctx, p.logger)
	key := models.ZoneTokenKey(obj.ZoneID)

	var (
		expired bool
		changes int
	)
	for {
		token, found, err := p.checkpoints.Get(ctx, key)
		if err != nil {
			return newSyncError(ClassPermanent, "pull", obj.TypeID, err)
		}
		if !found {
			token = nil
		}

		p.setState(obj.TypeID, models.PullFetching)

		var page models.ZoneChangeSet
		err = p.retry.do(ctx, func(ctx context.Context) error {
			var ferr error
			page, ferr = p.remote.FetchZoneChanges(ctx, obj.ZoneID, token, p.pageSize)
			return ferr
		})
		switch {
		case errors.Is(err, adapter.ErrChangeTokenExpired):
			if expired {
				return newSyncError(ClassPermanent, "pull", obj.TypeID, fmt.Errorf("%w: %w", ErrChangeTokenExpired, err))
			}
			expired = true
			p.setState(obj.TypeID, models.PullExpired)

			log.Warn().
				Str("func", "pullPipeline.pullZone").
				Str("type_id", obj.TypeID).
				Str("zone_id", obj.ZoneID).
				Msg("zone token expired, resyncing")

			if err = p.resetZone(ctx, obj); err != nil {
				return newSyncError(ClassPermanent, "pull", obj.TypeID, err)
			}
			continue

		case errors.Is(err, adapter.ErrZoneNotFound):
			if ierr := p.zones.InvalidateZone(ctx, obj); ierr != nil {
				return newSyncError(ClassPermanent, "pull", obj.TypeID, ierr)
			}
			return newSyncError(ClassPrecondition, "pull", obj.TypeID, err)

		case err != nil:
			return newSyncError(classify(err), "pull", obj.TypeID, err)
		}

		p.setState(obj.TypeID, models.PullApplying)
		if err = p.applyPage(ctx, obj, page); err != nil {
			return newSyncError(ClassPermanent, "pull", obj.TypeID, err)
		}
		changes += len(page.Changes)

		if !page.HasMore {
			break
		}
	}

	log.Debug().
		Str("func", "pullPipeline.pullZone").
		Str("type_id", obj.TypeID).
		Int("count", changes).
		Msg("zone pulled")
	return nil
}

// applyPage commits one page, then persists its token, then retires the
// markers the remote copies superseded. Replaying a page is harmless.
//
// A changed record carrying the change tag of the local row is the echo of
// this device's own push. A queued edit on such a row is newer than the echo,
// so the row and its marker are left alone.
func (p *pullPipeline) applyPage(ctx context.Context, obj *SyncObject, page models.ZoneChangeSet) error {
	var (
		order  []string
		latest = make(map[string]models.Change, len(page.Changes))
	)
	for _, c := range page.Changes {
		if _, seen := latest[c.RecordID]; !seen {
			order = append(order, c.RecordID)
		}
		latest[c.RecordID] = c
	}

	queued, localTags, err := p.queuedState(ctx, obj, order)
	if err != nil {
		return err
	}

	var (
		upserts    []models.Record
		purges     []string
		superseded []models.DirtyMarker
		echoes     int
	)
	for _, id := range order {
		c := latest[id]
		marker, dirty := queued[id]
		switch c.Kind {
		case models.ChangeRecordChanged:
			if c.Record == nil {
				continue
			}
			if dirty && isEcho(localTags, id, c.Record.ChangeTag) {
				echoes++
				continue
			}
			r := *c.Record
			r.ID = id
			r.TypeID = obj.TypeID
			upserts = append(upserts, r)
		case models.ChangeRecordDeleted:
			purges = append(purges, id)
		default:
			continue
		}
		if dirty {
			superseded = append(superseded, marker)
		}
	}

	if len(upserts) > 0 || len(purges) > 0 {
		if err = obj.Store.ApplyRemoteChanges(ctx, upserts, purges); err != nil {
			return err
		}
	}

	if err = p.checkpoints.Set(ctx, models.ZoneTokenKey(obj.ZoneID), page.Token); err != nil {
		return err
	}

	if len(superseded) > 0 {
		if _, err = p.markers.Acknowledge(ctx, superseded...); err != nil {
			return err
		}
	}

	if echoes > 0 {
		p.logger.Debug().
			Str("func", "pullPipeline.applyPage").
			Str("type_id", obj.TypeID).
			Int("count", echoes).
			Msg("kept local edits over echoed writes")
	}
	return nil
}

// queuedState returns the markers queued for ids and the change tags of the
// local rows they point at.
func (p *pullPipeline) queuedState(ctx context.Context, obj *SyncObject, ids []string) (map[string]models.DirtyMarker, map[string]string, error) {
	markers, err := p.markers.Get(ctx, obj.TypeID, ids)
	if err != nil || len(markers) == 0 {
		return nil, nil, err
	}

	queued := make(map[string]models.DirtyMarker, len(markers))
	dirtyIDs := make([]string, 0, len(markers))
	for _, m := range markers {
		queued[m.ObjectID] = m
		dirtyIDs = append(dirtyIDs, m.ObjectID)
	}

	rows, err := obj.Store.FetchDirty(ctx, dirtyIDs)
	if err != nil {
		return nil, nil, err
	}
	tags := make(map[string]string, len(rows))
	for _, r := range rows {
		tags[r.ID] = r.ChangeTag
	}
	return queued, tags, nil
}

func isEcho(localTags map[string]string, id, remoteTag string) bool {
	tag, ok := localTags[id]
	return ok && tag != "" && tag == remoteTag
}

// resetZone forgets the token and the cached server state of obj. Objects
// with a queued marker are kept.
func (p *pullPipeline) resetZone(ctx context.Context, obj *SyncObject) error {
	if err := p.checkpoints.Clear(ctx, models.ZoneTokenKey(obj.ZoneID)); err != nil {
		return err
	}

	markers, err := p.markers.Drain(ctx, obj.TypeID, 0)
	if err != nil {
		return err
	}
	keep := make([]string, 0, len(markers))
	for _, m := range markers {
		keep = append(keep, m.ObjectID)
	}

	return obj.Store.ResetZone(ctx, keep)
}

// dropZone handles a zone the remote deleted: its flag, token and cached
// state go away.
func (p *pullPipeline) dropZone(ctx context.Context, obj *SyncObject) error {
	unlock := p.locks.lock(obj.ZoneID)
	defer unlock()

	if err := p.zones.InvalidateZone(ctx, obj); err != nil {
		return newSyncError(ClassPermanent, "pull", obj.TypeID, err)
	}
	if err := p.resetZone(ctx, obj); err != nil {
		return newSyncError(ClassPermanent, "pull", obj.TypeID, err)
	}

	p.logger.Warn().
		Str("func", "pullPipeline.dropZone").
		Str("type_id", obj.TypeID).
		Str("zone_id", obj.ZoneID).
		Msg("zone deleted remotely")
	return nil
}

// pullDatabase walks the database feed of the private scope and pulls the
// registered zones it reports. The database token advances only after the
// zone pulls of its page succeeded. Registered zones that were never pulled
// are pulled afterwards.
func (p *pullPipeline) pullDatabase(ctx context.Context, objects []*SyncObject) error {
	byZone := make(map[string]*SyncObject, len(objects))
	for _, obj := range objects {
		byZone[obj.ZoneID] = obj
	}

	var (
		expired bool
		handled = make(map[string]bool, len(objects))
	)
	for {
		token, found, err := p.checkpoints.Get(ctx, models.DatabaseTokenKey)
		if err != nil {
			return newSyncError(ClassPermanent, "pull", "", err)
		}
		if !found {
			token = nil
		}

		var page models.DatabaseChangeSet
		err = p.retry.do(ctx, func(ctx context.Context) error {
			var ferr error
			page, ferr = p.remote.FetchDatabaseChanges(ctx, token)
			return ferr
		})
		if errors.Is(err, adapter.ErrChangeTokenExpired) {
			if expired {
				return newSyncError(ClassPermanent, "pull", "", fmt.Errorf("%w: %w", ErrChangeTokenExpired, err))
			}
			expired = true
			if err = p.checkpoints.Clear(ctx, models.DatabaseTokenKey); err != nil {
				return newSyncError(ClassPermanent, "pull", "", err)
			}
			continue
		}
		if err != nil {
			return newSyncError(classify(err), "pull", "", err)
		}

		var errs []error
		for _, zoneID := range page.DeletedZones {
			obj, ok := byZone[zoneID]
			if !ok {
				continue
			}
			handled[zoneID] = true
			if err = p.dropZone(ctx, obj); err != nil {
				errs = append(errs, err)
			}
		}
		for _, zoneID := range page.ChangedZones {
			obj, ok := byZone[zoneID]
			if !ok {
				continue
			}
			handled[zoneID] = true
			if err = p.zones.MarkZone(ctx, obj); err != nil {
				errs = append(errs, newSyncError(ClassPermanent, "pull", obj.TypeID, err))
				continue
			}
			if err = p.pullZone(ctx, obj); err != nil {
				errs = append(errs, err)
			}
		}
		if len(errs) > 0 {
			return errors.Join(errs...)
		}

		if err = p.checkpoints.Set(ctx, models.DatabaseTokenKey, page.Token); err != nil {
			return newSyncError(ClassPermanent, "pull", "", err)
		}
		if !page.HasMore {
			break
		}
	}

	var errs []error
	for _, obj := range objects {
		if handled[obj.ZoneID] {
			continue
		}
		_, found, err := p.checkpoints.Get(ctx, models.ZoneTokenKey(obj.ZoneID))
		if err != nil {
			errs = append(errs, newSyncError(ClassPermanent, "pull", obj.TypeID, err))
			continue
		}
		if found {
			continue
		}
		if err = p.pullZone(ctx, obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// pullZones pulls every zone in objects. Used by the public scope, which has
// no database feed.
func (p *pullPipeline) pullZones(ctx context.Context, objects []*SyncObject) error {
	var errs []error
	for _, obj := range objects {
		if err := p.pullZone(ctx, obj); err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
		}
	}
	return errors.Join(errs...)
}
