// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirtyMarkerRepository_MarkSupersedes(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	first, err := repo.Mark(ctx, "notes", "a", models.OperationUpsert)
	require.NoError(t, err)
	second, err := repo.Mark(ctx, "notes", "a", models.OperationDelete)
	require.NoError(t, err)
	assert.Greater(t, second.Seq, first.Seq)

	markers, err := repo.Drain(ctx, "notes", 0)
	require.NoError(t, err)
	require.Len(t, markers, 1)
	assert.Equal(t, models.OperationDelete, markers[0].Kind)
	assert.Equal(t, second.Seq, markers[0].Seq)

	n, err := repo.Count(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestDirtyMarkerRepository_MarkValidates(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	_, err := repo.Mark(ctx, "", "a", models.OperationUpsert)
	assert.ErrorIs(t, err, ErrEmptyTypeID)

	_, err = repo.Mark(ctx, "notes", "", models.OperationUpsert)
	assert.ErrorIs(t, err, ErrEmptyObjectID)
}

func TestDirtyMarkerRepository_DrainOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	for _, id := range []string{"c", "a", "b"} {
		_, err := repo.Mark(ctx, "notes", id, models.OperationUpsert)
		require.NoError(t, err)
	}
	_, err := repo.Mark(ctx, "tasks", "x", models.OperationUpsert)
	require.NoError(t, err)

	all, err := repo.Drain(ctx, "notes", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"c", "a", "b"}, objectIDs(all))

	limited, err := repo.Drain(ctx, "notes", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, objectIDs(limited))

	// drain is not destructive
	n, err := repo.Count(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestDirtyMarkerRepository_AcknowledgeIsCompareAndSet(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	a, err := repo.Mark(ctx, "notes", "a", models.OperationUpsert)
	require.NoError(t, err)
	b, err := repo.Mark(ctx, "notes", "b", models.OperationUpsert)
	require.NoError(t, err)

	// "b" is edited again after it was drained
	_, err = repo.Mark(ctx, "notes", "b", models.OperationUpsert)
	require.NoError(t, err)

	removed, err := repo.Acknowledge(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	left, err := repo.Drain(ctx, "notes", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, objectIDs(left))

	removed, err = repo.Acknowledge(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestDirtyMarkerRepository_GetAndRemove(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	for _, id := range []string{"a", "b", "c"} {
		_, err := repo.Mark(ctx, "notes", id, models.OperationUpsert)
		require.NoError(t, err)
	}

	got, err := repo.Get(ctx, "notes", []string{"a", "c", "zzz"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, objectIDs(got))

	got, err = repo.Get(ctx, "notes", nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, repo.Remove(ctx, "notes", "a", "b"))
	require.NoError(t, repo.Remove(ctx, "notes"))

	left, err := repo.Drain(ctx, "notes", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, objectIDs(left))
}

func TestDirtyMarkerRepository_ConcurrentMarks(t *testing.T) {
	ctx := context.Background()
	repo := newTestStorages(t).Markers

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := repo.Mark(ctx, "notes", fmt.Sprintf("id-%d", i%5), models.OperationUpsert)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	markers, err := repo.Drain(ctx, "notes", 0)
	require.NoError(t, err)
	assert.Len(t, markers, 5)

	seen := make(map[int64]bool)
	for _, m := range markers {
		assert.False(t, seen[m.Seq], "duplicate seq %d", m.Seq)
		seen[m.Seq] = true
	}
}

func TestDirtyMarkerRepository_DrainQueryError(t *testing.T) {
	db, mock := newTestDB(t)
	dbErr := errors.New("no such table: dirty_markers")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT type_id, object_id, kind, seq, queued_at FROM dirty_markers")).
		WillReturnError(dbErr)

	_, err := NewDirtyMarkerRepository(db, logger.Nop()).Drain(context.Background(), "notes", 10)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDirtyMarkerRepository_AcknowledgeRollsBack(t *testing.T) {
	db, mock := newTestDB(t)
	dbErr := errors.New("constraint failed")

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta("DELETE FROM dirty_markers"))
	prep.ExpectExec().WithArgs("notes", "a", int64(1)).WillReturnError(dbErr)
	mock.ExpectRollback()

	_, err := NewDirtyMarkerRepository(db, logger.Nop()).Acknowledge(context.Background(),
		models.DirtyMarker{TypeID: "notes", ObjectID: "a", Seq: 1})
	assert.ErrorIs(t, err, ErrExecutingStatement)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func objectIDs(markers []models.DirtyMarker) []string {
	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		ids = append(ids, m.ObjectID)
	}
	return ids
}
