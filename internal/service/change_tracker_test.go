// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/mock"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTracker(ctrl *gomock.Controller) (*ChangeTracker, *mock.MockDirtyMarkerRepository, *mock.MockLocalStore, *[]string) {
	markers := mock.NewMockDirtyMarkerRepository(ctrl)
	local := mock.NewMockLocalStore(ctrl)
	local.EXPECT().TypeID().Return("notes").AnyTimes()

	obj := NewSyncObject(local)
	tracker := newChangeTracker(markers, map[string]*SyncObject{"notes": obj}, newZoneLocks(), logger.Nop())

	var notified []string
	tracker.onChange = func(typeID string) { notified = append(notified, typeID) }
	return tracker, markers, local, &notified
}

func TestChangeTracker_SaveStoresThenMarks(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, markers, local, notified := newTestTracker(ctrl)

	gomock.InOrder(
		local.EXPECT().Upsert(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, records ...models.Record) error {
				for _, r := range records {
					assert.Equal(t, "notes", r.TypeID)
				}
				return nil
			}),
		markers.EXPECT().Mark(ctx, "notes", "a", models.OperationUpsert).Return(models.DirtyMarker{Seq: 1}, nil),
		markers.EXPECT().Mark(ctx, "notes", "b", models.OperationUpsert).Return(models.DirtyMarker{Seq: 2}, nil),
	)

	require.NoError(t, tracker.Save(ctx, "notes", record("a", "1"), record("b", "2")))
	assert.Equal(t, []string{"notes"}, *notified)
}

func TestChangeTracker_SaveStoreFailureQueuesNothing(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, _, local, notified := newTestTracker(ctrl)
	boom := errors.New("disk")

	local.EXPECT().Upsert(ctx, gomock.Any()).Return(boom)

	require.ErrorIs(t, tracker.Save(ctx, "notes", record("a", "1")), boom)
	assert.Empty(t, *notified)
}

func TestChangeTracker_SaveNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracker, _, _, notified := newTestTracker(ctrl)

	require.NoError(t, tracker.Save(context.Background(), "notes"))
	assert.Empty(t, *notified)
}

func TestChangeTracker_Delete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, markers, local, notified := newTestTracker(ctrl)

	local.EXPECT().Get(ctx, "fresh").Return(models.Record{ID: "fresh"}, nil)
	local.EXPECT().Purge(ctx, "fresh").Return(nil)
	markers.EXPECT().Remove(ctx, "notes", "fresh").Return(nil)

	local.EXPECT().Get(ctx, "synced").Return(models.Record{ID: "synced", Pushed: true}, nil)
	local.EXPECT().SoftDelete(ctx, "synced").Return(nil)
	markers.EXPECT().Mark(ctx, "notes", "synced", models.OperationDelete).Return(models.DirtyMarker{}, nil)

	local.EXPECT().Get(ctx, "ghost").Return(models.Record{}, store.ErrObjectNotFound)

	require.NoError(t, tracker.Delete(ctx, "notes", "fresh", "synced", "ghost"))
	assert.Equal(t, []string{"notes"}, *notified)
}

func TestChangeTracker_DeleteOnlyUnpushedDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, markers, local, notified := newTestTracker(ctrl)

	local.EXPECT().Get(ctx, "fresh").Return(models.Record{ID: "fresh"}, nil)
	local.EXPECT().Purge(ctx, "fresh").Return(nil)
	markers.EXPECT().Remove(ctx, "notes", "fresh").Return(nil)

	require.NoError(t, tracker.Delete(ctx, "notes", "fresh"))
	assert.Empty(t, *notified)
}

func TestChangeTracker_UnknownType(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, _, _, _ := newTestTracker(ctrl)

	assert.ErrorIs(t, tracker.Save(ctx, "photos", record("a", "")), ErrTypeNotRegistered)
	assert.ErrorIs(t, tracker.Delete(ctx, "photos", "a"), ErrTypeNotRegistered)
	_, err := tracker.Drain(ctx, "photos", 0)
	assert.ErrorIs(t, err, ErrTypeNotRegistered)
	_, err = tracker.Pending(ctx, "photos")
	assert.ErrorIs(t, err, ErrTypeNotRegistered)
}

func TestChangeTracker_DrainAndAcknowledge(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	tracker, markers, _, _ := newTestTracker(ctrl)

	queued := []models.DirtyMarker{{TypeID: "notes", ObjectID: "a", Seq: 1}}
	markers.EXPECT().Drain(ctx, "notes", 10).Return(queued, nil)
	markers.EXPECT().Acknowledge(ctx, queued[0]).Return(int64(1), nil)

	got, err := tracker.Drain(ctx, "notes", 10)
	require.NoError(t, err)
	assert.Equal(t, queued, got)

	n, err := tracker.Acknowledge(ctx, got...)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = tracker.Acknowledge(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}
