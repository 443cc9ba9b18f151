// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyCheckpoints fails Set for one key while failKey is armed.
type flakyCheckpoints struct {
	store.CheckpointRepository
	failKey atomic.Pointer[string]
}

var errCheckpointWrite = errors.New("checkpoint write failed")

func (c *flakyCheckpoints) Set(ctx context.Context, key string, value []byte) error {
	if k := c.failKey.Load(); k != nil && *k == key {
		return errCheckpointWrite
	}
	return c.CheckpointRepository.Set(ctx, key, value)
}

func TestEngine_PullAfterPushKeepsNewerLocalEdit(t *testing.T) {
	ctx := context.Background()
	h := newPrivateHarness(t, "notes")

	h.save(t, "notes", record("a", "v1"))
	require.NoError(t, h.engine.PushAll(ctx))

	h.save(t, "notes", record("a", "v2"))
	require.NoError(t, h.engine.Pull(ctx))

	assert.Equal(t, map[string]string{"a": "v2"}, payloads(h.local(t, "notes")))
	assert.Equal(t, 1, h.pending(t, "notes"))

	require.NoError(t, h.engine.PushAll(ctx))
	assert.Equal(t, map[string]string{"a": "v2"}, payloads(h.remote.Records("notes")))
	assert.Zero(t, h.pending(t, "notes"))
}

func TestEngine_PullOfForeignEditStillOverwrites(t *testing.T) {
	ctx := context.Background()
	h := newPrivateHarness(t, "notes")

	h.save(t, "notes", record("a", "v1"))
	require.NoError(t, h.engine.PushAll(ctx))
	require.NoError(t, h.engine.Pull(ctx))

	h.remote.PutRecord("notes", record("a", "other device"))
	h.save(t, "notes", record("a", "v2"))
	require.NoError(t, h.engine.Pull(ctx))

	assert.Equal(t, map[string]string{"a": "other device"}, payloads(h.local(t, "notes")))
	assert.Zero(t, h.pending(t, "notes"))
}

func TestEngine_DeleteDuringFirstPushWaitsForIt(t *testing.T) {
	ctx := context.Background()
	h := newPrivateHarness(t, "notes")
	h.save(t, "notes", record("a", "v1"))

	deleted := make(chan error, 1)
	h.remote.SetFault(func(op string, call int) error {
		if op == adapter.OpWriteRecords && call == 1 {
			go func() { deleted <- h.engine.Tracker().Delete(ctx, "notes", "a") }()
			// give the delete time to queue up on the zone
			time.Sleep(20 * time.Millisecond)
		}
		return nil
	})

	require.NoError(t, h.engine.PushAll(ctx))
	select {
	case err := <-deleted:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("delete did not finish")
	}

	local := h.local(t, "notes")
	require.Len(t, local, 1)
	assert.True(t, local[0].Deleted, "the pushed object becomes a pending delete")
	assert.Equal(t, 1, h.pending(t, "notes"))

	require.NoError(t, h.engine.PushAll(ctx))
	require.NoError(t, h.engine.Pull(ctx))
	assert.Empty(t, h.remote.Records("notes"))
	assert.Empty(t, h.local(t, "notes"))
}

func TestEngine_TokenWriteFailureReplaysIdempotently(t *testing.T) {
	ctx := context.Background()
	storages := newTestStorages(t)
	remote := adapter.NewMemoryRemote()
	checkpoints := &flakyCheckpoints{CheckpointRepository: storages.Checkpoints}

	engine, err := NewEngine(Dependencies{
		Remote:      remote,
		Checkpoints: checkpoints,
		Markers:     storages.Markers,
		Objects:     []LocalStore{storages.Objects("notes")},
		Settings:    testSettings(models.ScopePrivate),
		Workers:     config.SyncWorkers{PushDebounce: 10 * time.Millisecond},
		Logger:      logger.Nop(),
	})
	require.NoError(t, err)
	require.NoError(t, engine.Setup(ctx))

	key := models.ZoneTokenKey("notes")
	before, _, err := storages.Checkpoints.Get(ctx, key)
	require.NoError(t, err)

	remote.PutRecord("notes", record("a", "1"))
	remote.PutRecord("notes", record("b", "2"))
	remote.PutRecord("notes", record("gone", "3"))
	remote.RemoveRecord("notes", "gone")

	checkpoints.failKey.Store(&key)
	err = engine.Pull(ctx)
	require.ErrorIs(t, err, errCheckpointWrite)

	after, _, err := storages.Checkpoints.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, before, after, "token stays put when its write fails")

	local, err := storages.Objects("notes").ListAll(ctx)
	require.NoError(t, err)
	committed := payloads(local)
	assert.Equal(t, map[string]string{"a": "1", "b": "2"}, committed)

	checkpoints.failKey.Store(nil)
	require.NoError(t, engine.Pull(ctx))

	local, err = storages.Objects("notes").ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 2)
	assert.Equal(t, committed, payloads(local), "replayed page applies once")

	replayed, found, err := storages.Checkpoints.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.NotEqual(t, before, replayed)
}

func TestEngine_NotificationRetriesSetupAfterUndeterminedStatus(t *testing.T) {
	ctx := context.Background()
	remote := adapter.NewMemoryRemote(adapter.WithAccountStatus(models.AccountUndetermined), adapter.WithImplicitZones())
	h := newHarness(t, remote, testSettings(models.ScopePrivate), "notes")

	require.ErrorIs(t, h.engine.Setup(ctx), ErrAccountStatusUndetermined)
	remote.PutRecord("notes", record("a", "remote"))

	h.engine.StartObservingLocalAndRemoteChanges(ctx)
	h.engine.NotifyRemoteDataChanged()
	require.Eventually(t, func() bool {
		return remote.Calls(adapter.OpAccountStatus) >= 2
	}, time.Second, 5*time.Millisecond)
	assert.False(t, h.engine.Ready())
	assert.Empty(t, h.local(t, "notes"), "nothing is pulled before the account is known")

	remote.SetAccountStatus(models.AccountAvailable)
	h.engine.NotifyRemoteDataChanged()
	require.Eventually(t, h.engine.Ready, time.Second, 5*time.Millisecond)

	h.engine.NotifyRemoteDataChanged()
	h.engine.StopObservingLocalAndRemoteChanges()

	assert.Equal(t, 1, h.ready, "ready is reported once")
	assert.Equal(t, map[string]string{"a": "remote"}, payloads(h.local(t, "notes")))
}
