// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the value types shared by the sync engine, the local
// store and the remote transport.
package models

import "time"

// Record is a single syncable object of a registered type as persisted in the
// local store and exchanged with the remote record store.
type Record struct {
	// ID is the stable identifier of the object. It is also the remote record
	// name, so the same object has the same ID on every device.
	ID string `json:"id"`

	// TypeID names the registered syncable type the record belongs to.
	TypeID string `json:"type_id"`

	// Payload is the serialized field values. The engine never inspects it.
	Payload []byte `json:"payload"`

	// Deleted marks the record as pending-delete: the local copy is retained
	// until the remote store confirms the deletion.
	Deleted bool `json:"deleted"`

	// ModifiedAt is the local modification marker. It increases on every
	// local write of the record.
	ModifiedAt int64 `json:"modified_at"`

	// ChangeTag is the remote version of the last server copy this record
	// was reconciled with. Empty for records the remote has never seen.
	ChangeTag string `json:"change_tag,omitempty"`

	// Pushed reports whether the remote store has accepted the record at
	// least once.
	Pushed bool `json:"pushed"`

	// UpdatedAt is the wall clock time of the last local write.
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ObjectRef identifies one object of one registered type. It is used to
// target a push at an explicit set of objects.
type ObjectRef struct {
	TypeID string `json:"type_id"`
	ID     string `json:"id"`
}
