// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// OperationKind is the pending remote operation recorded by a DirtyMarker.
type OperationKind string

const (
	OperationUpsert OperationKind = "upsert"
	OperationDelete OperationKind = "delete"
)

// DirtyMarker is the queued intent to push a local change of one object.
// There is at most one marker per (TypeID, ObjectID); a later mutation
// replaces the kind and the sequence.
type DirtyMarker struct {
	TypeID   string        `json:"type_id"`
	ObjectID string        `json:"object_id"`
	Kind     OperationKind `json:"kind"`

	// Seq orders markers oldest-first and acts as the compare-and-set value
	// when the marker is acknowledged: an acknowledgement only removes the
	// marker if no newer write replaced it in the meantime.
	Seq int64 `json:"seq"`

	QueuedAt time.Time `json:"queued_at"`
}
