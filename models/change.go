// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeKind is the type of a single entry of a remote change feed.
type ChangeKind string

const (
	ChangeRecordChanged ChangeKind = "changed"
	ChangeRecordDeleted ChangeKind = "deleted"
)

// Change is one entry of a zone change feed.
type Change struct {
	Kind     ChangeKind `json:"kind"`
	RecordID string     `json:"record_id"`

	// Record is set for ChangeRecordChanged only.
	Record *Record `json:"record,omitempty"`
}

// ZoneChangeSet is one page of a zone change feed.
type ZoneChangeSet struct {
	Changes []Change `json:"changes"`

	// Token is the checkpoint that covers every change of this page.
	Token []byte `json:"token"`

	// HasMore reports that the feed has further pages after Token.
	HasMore bool `json:"has_more"`
}

// DatabaseChangeSet is one page of the database-scope feed reporting zone
// membership changes.
type DatabaseChangeSet struct {
	ChangedZones []string `json:"changed_zones"`
	DeletedZones []string `json:"deleted_zones"`
	Token        []byte   `json:"token"`
	HasMore      bool     `json:"has_more"`
}

// WriteStatus classifies the remote outcome of one record in a write batch.
type WriteStatus string

const (
	WriteSuccess     WriteStatus = "success"
	WriteConflict    WriteStatus = "conflict"
	WriteRateLimited WriteStatus = "rate_limited"
	WriteZoneBusy    WriteStatus = "zone_busy"
	WriteNotFound    WriteStatus = "not_found"
	WriteInvalidZone WriteStatus = "invalid_zone"
	WriteFailed      WriteStatus = "failed"
)

// WriteOutcome is the remote result for one record of a write batch.
type WriteOutcome struct {
	RecordID string      `json:"record_id"`
	Status   WriteStatus `json:"status"`

	// ChangeTag is the new remote version on success.
	ChangeTag string `json:"change_tag,omitempty"`

	// ServerRecord is the newer remote copy on conflict.
	ServerRecord *Record `json:"server_record,omitempty"`

	// RetryAfter is the remote-supplied delay for rate limited or busy
	// outcomes. Zero means the default backoff applies.
	RetryAfter time.Duration `json:"retry_after,omitempty"`

	// Message carries the remote error description for failed outcomes.
	Message string `json:"message,omitempty"`
}

// WriteBatch is a single remote write call for one zone.
type WriteBatch struct {
	ZoneID  string   `json:"zone_id"`
	Upserts []Record `json:"upserts"`
	Deletes []string `json:"deletes"`
}

// Len returns the number of records the batch touches.
func (b WriteBatch) Len() int {
	return len(b.Upserts) + len(b.Deletes)
}
