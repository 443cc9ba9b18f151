// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// zoneManager makes sure the remote zones and the change subscription exist
// and caches that knowledge as checkpoint flags.
type zoneManager struct {
	remote      adapter.RemoteTransport
	checkpoints store.CheckpointRepository
	scope       models.DatabaseScope
	retry       retryPolicy

	logger *logger.Logger
}

// EnsureZone creates the zone of obj unless its flag says it exists. Records
// of the public scope live in the default zone, so nothing is created there.
func (m *zoneManager) EnsureZone(ctx context.Context, obj *SyncObject) error {
	if m.scope == models.ScopePublic {
		return nil
	}

	key := models.ZoneExistsKey(obj.TypeID)
	exists, err := m.checkpoints.Flag(ctx, key)
	if err != nil {
		return newSyncError(ClassPermanent, "ensure zone", obj.TypeID, err)
	}
	if exists {
		return nil
	}

	err = m.retry.do(ctx, func(ctx context.Context) error {
		err := m.remote.EnsureZoneExists(ctx, obj.ZoneID)
		if errors.Is(err, adapter.ErrZoneAlreadyExists) {
			return nil
		}
		return err
	})
	if err != nil {
		return newSyncError(ClassPrecondition, "ensure zone", obj.TypeID, fmt.Errorf("%w: %w", ErrZoneNotReady, err))
	}

	if err = m.checkpoints.SetFlag(ctx, key, true); err != nil {
		return newSyncError(ClassPermanent, "ensure zone", obj.TypeID, err)
	}

	m.logger.Info().
		Str("func", "zoneManager.EnsureZone").
		Str("type_id", obj.TypeID).
		Str("zone_id", obj.ZoneID).
		Msg("zone registered")
	return nil
}

// EnsureZones runs EnsureZone for every object and joins the failures.
func (m *zoneManager) EnsureZones(ctx context.Context, objects []*SyncObject) error {
	var errs []error
	for _, obj := range objects {
		if err := m.EnsureZone(ctx, obj); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// EnsureSubscription registers the scope's standing change subscription
// unless its flag says it exists.
func (m *zoneManager) EnsureSubscription(ctx context.Context) error {
	exists, err := m.checkpoints.Flag(ctx, models.SubscriptionExistsKey)
	if err != nil {
		return newSyncError(ClassPermanent, "ensure subscription", "", err)
	}
	if exists {
		return nil
	}

	id := m.scope.SubscriptionID()
	err = m.retry.do(ctx, func(ctx context.Context) error {
		err := m.remote.EnsureSubscriptionExists(ctx, id, m.scope)
		if errors.Is(err, adapter.ErrSubscriptionAlreadyExists) {
			return nil
		}
		return err
	})
	if err != nil {
		return newSyncError(ClassPrecondition, "ensure subscription", "", err)
	}

	if err = m.checkpoints.SetFlag(ctx, models.SubscriptionExistsKey, true); err != nil {
		return newSyncError(ClassPermanent, "ensure subscription", "", err)
	}

	m.logger.Info().
		Str("func", "zoneManager.EnsureSubscription").
		Str("subscription_id", id).
		Msg("subscription registered")
	return nil
}

// InvalidateZone forgets that the zone of obj exists. The next push creates
// it again.
func (m *zoneManager) InvalidateZone(ctx context.Context, obj *SyncObject) error {
	return m.checkpoints.SetFlag(ctx, models.ZoneExistsKey(obj.TypeID), false)
}

// MarkZone records that the zone of obj exists remotely.
func (m *zoneManager) MarkZone(ctx context.Context, obj *SyncObject) error {
	return m.checkpoints.SetFlag(ctx, models.ZoneExistsKey(obj.TypeID), true)
}
