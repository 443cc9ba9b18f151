// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// CheckpointRepository persists opaque resumption checkpoints and cached
// registration flags under string keys (see models.ZoneTokenKey and friends).
type CheckpointRepository interface {
	// Get returns the value stored under key. found is false when the key
	// was never set or has been cleared.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// Clear removes key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error

	Flag(ctx context.Context, key string) (bool, error)
	SetFlag(ctx context.Context, key string, value bool) error
}

// DirtyMarkerRepository is the durable queue of local changes awaiting push.
type DirtyMarkerRepository interface {
	// Mark records the pending operation for an object, replacing any marker
	// already queued for it. The returned marker carries the new sequence.
	Mark(ctx context.Context, typeID, objectID string, kind models.OperationKind) (models.DirtyMarker, error)
	// Drain returns up to limit markers of typeID oldest-first. A limit of
	// zero or less returns all of them. Drain does not remove anything.
	Drain(ctx context.Context, typeID string, limit int) ([]models.DirtyMarker, error)
	// Get returns the markers currently queued for the given objects.
	Get(ctx context.Context, typeID string, objectIDs []string) ([]models.DirtyMarker, error)
	// Acknowledge removes each marker only if its sequence is unchanged and
	// returns how many were removed.
	Acknowledge(ctx context.Context, markers ...models.DirtyMarker) (int64, error)
	// Remove unconditionally drops the markers of the given objects.
	Remove(ctx context.Context, typeID string, objectIDs ...string) error
	Count(ctx context.Context, typeID string) (int, error)
}

// LocalStore is the local persistence of one syncable type.
type LocalStore interface {
	TypeID() string

	Get(ctx context.Context, id string) (models.Record, error)
	// FetchDirty loads the records with the given ids, including pending
	// deletes. Ids without a record are skipped.
	FetchDirty(ctx context.Context, ids []string) ([]models.Record, error)
	// Upsert writes the records as local mutations and bumps their
	// modification marker. All records are written or none.
	Upsert(ctx context.Context, records ...models.Record) error
	// SoftDelete flags a record as pending-delete.
	SoftDelete(ctx context.Context, id string) error
	Purge(ctx context.Context, ids ...string) error
	// ListAll returns every record of the type, pending deletes included.
	ListAll(ctx context.Context) ([]models.Record, error)

	// ApplyRemoteChanges stores server copies verbatim and purges the given
	// ids in a single transaction.
	ApplyRemoteChanges(ctx context.Context, upserts []models.Record, purges []string) error
	// MarkPushed records that the remote accepted a record at changeTag.
	MarkPushed(ctx context.Context, id, changeTag string) error
	// ResetZone drops every cached record of the type except keep.
	ResetZone(ctx context.Context, keep []string) error
}
