// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"sync/atomic"

	"github.com/MKhiriev/go-cloud-sync/internal/store"
)

// SyncObject is the capability handle of one registered syncable type: the
// remote zone it maps to, its local store accessor and its pause state.
type SyncObject struct {
	TypeID string
	ZoneID string
	Store  store.LocalStore

	paused atomic.Bool
}

// NewSyncObject registers the type served by local. The zone id equals the
// type id.
func NewSyncObject(local store.LocalStore) *SyncObject {
	return &SyncObject{
		TypeID: local.TypeID(),
		ZoneID: local.TypeID(),
		Store:  local,
	}
}

// Paused reports whether local changes of the type are neither tracked nor
// pushed.
func (o *SyncObject) Paused() bool {
	return o.paused.Load()
}

func (o *SyncObject) setPaused(v bool) {
	o.paused.Store(v)
}
