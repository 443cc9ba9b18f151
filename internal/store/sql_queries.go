// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	getCheckpoint = `
		SELECT value
		FROM checkpoints
		WHERE key = ?;`

	setCheckpoint = `
		INSERT INTO checkpoints (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at;`

	clearCheckpoint = `
		DELETE FROM checkpoints
		WHERE key = ?;`
)

const (
	markDirty = `
		INSERT INTO dirty_markers (type_id, object_id, kind, seq, queued_at)
		VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM dirty_markers), ?)
		ON CONFLICT (type_id, object_id) DO UPDATE SET
			kind = excluded.kind,
			seq = excluded.seq,
			queued_at = excluded.queued_at
		RETURNING seq;`

	acknowledgeDirty = `
		DELETE FROM dirty_markers
		WHERE type_id = ? AND object_id = ? AND seq = ?;`

	countDirty = `
		SELECT COUNT(*)
		FROM dirty_markers
		WHERE type_id = ?;`
)

const (
	getObject = `
		SELECT type_id, id, payload, deleted, modified_at, change_tag, pushed, updated_at
		FROM objects
		WHERE type_id = ? AND id = ?;`

	upsertLocalObject = `
		INSERT INTO objects (type_id, id, payload, deleted, modified_at, change_tag, pushed, updated_at)
		VALUES (?, ?, ?, 0, 1, '', 0, ?)
		ON CONFLICT (type_id, id) DO UPDATE SET
			payload = excluded.payload,
			deleted = 0,
			modified_at = objects.modified_at + 1,
			updated_at = excluded.updated_at;`

	upsertRemoteObject = `
		INSERT INTO objects (type_id, id, payload, deleted, modified_at, change_tag, pushed, updated_at)
		VALUES (?, ?, ?, 0, ?, ?, 1, ?)
		ON CONFLICT (type_id, id) DO UPDATE SET
			payload = excluded.payload,
			deleted = 0,
			modified_at = MAX(objects.modified_at, excluded.modified_at),
			change_tag = excluded.change_tag,
			pushed = 1,
			updated_at = excluded.updated_at;`

	softDeleteObject = `
		UPDATE objects
		SET deleted = 1, modified_at = modified_at + 1, updated_at = ?
		WHERE type_id = ? AND id = ?;`

	markObjectPushed = `
		UPDATE objects
		SET pushed = 1, change_tag = ?
		WHERE type_id = ? AND id = ?;`

	listObjects = `
		SELECT type_id, id, payload, deleted, modified_at, change_tag, pushed, updated_at
		FROM objects
		WHERE type_id = ?
		ORDER BY id;`
)
