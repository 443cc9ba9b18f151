// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the synchronization core: change tracking,
// zone and subscription setup, the push and pull pipelines and the [Engine]
// orchestrating them.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/store"
	"github.com/MKhiriev/go-cloud-sync/models"
	"golang.org/x/sync/singleflight"
)

// Dependencies are the collaborators and settings of an [Engine].
type Dependencies struct {
	Remote      adapter.RemoteTransport
	Checkpoints store.CheckpointRepository
	Markers     store.DirtyMarkerRepository
	// Objects are the local stores of the registered types, one per type.
	Objects []LocalStore

	Settings config.SyncSettings
	Workers  config.SyncWorkers
	Logger   *logger.Logger

	// OnReady is called once Setup completed.
	OnReady func()
}

// Engine keeps a set of local stores in sync with the remote record store.
type Engine struct {
	scope   models.DatabaseScope
	remote  adapter.RemoteTransport
	retry   retryPolicy
	objects []*SyncObject
	byType  map[string]*SyncObject

	tracker  *ChangeTracker
	zones    *zoneManager
	pusher   *pushPipeline
	puller   *pullPipeline
	observer *observer
	pulls    singleflight.Group

	ready   atomic.Bool
	onReady func()
	logger  *logger.Logger
}

// NewEngine validates deps and wires the engine. The shared scope is
// rejected with [ErrSharedScopeUnsupported].
func NewEngine(deps Dependencies) (*Engine, error) {
	scope := models.DatabaseScope(deps.Settings.Scope)
	switch scope {
	case models.ScopePrivate, models.ScopePublic:
	case models.ScopeShared:
		return nil, ErrSharedScopeUnsupported
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScope, deps.Settings.Scope)
	}

	if deps.Remote == nil {
		return nil, ErrNilRemote
	}
	if deps.Checkpoints == nil || deps.Markers == nil {
		return nil, ErrNilStorage
	}
	if len(deps.Objects) == 0 {
		return nil, ErrNoSyncObjects
	}

	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	objects := make([]*SyncObject, 0, len(deps.Objects))
	byType := make(map[string]*SyncObject, len(deps.Objects))
	for _, local := range deps.Objects {
		obj := NewSyncObject(local)
		if _, dup := byType[obj.TypeID]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSyncObject, obj.TypeID)
		}
		objects = append(objects, obj)
		byType[obj.TypeID] = obj
	}

	batchSize := deps.Settings.BatchSize
	if batchSize <= 0 {
		batchSize = config.DefaultBatchSize
	}
	pageSize := deps.Settings.PageSize
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	debounce := deps.Workers.PushDebounce
	if debounce <= 0 {
		debounce = config.DefaultPushDebounce
	}

	policy := newRetryPolicy(deps.Settings)
	locks := newZoneLocks()
	zones := &zoneManager{
		remote:      deps.Remote,
		checkpoints: deps.Checkpoints,
		scope:       scope,
		retry:       policy,
		logger:      log,
	}

	e := &Engine{
		scope:   scope,
		remote:  deps.Remote,
		retry:   policy,
		objects: objects,
		byType:  byType,
		tracker: newChangeTracker(deps.Markers, byType, locks, log),
		zones:   zones,
		pusher: &pushPipeline{
			remote:    deps.Remote,
			markers:   deps.Markers,
			zones:     zones,
			locks:     locks,
			retry:     policy,
			batchSize: batchSize,
			logger:    log,
		},
		puller: &pullPipeline{
			remote:      deps.Remote,
			checkpoints: deps.Checkpoints,
			markers:     deps.Markers,
			zones:       zones,
			locks:       locks,
			retry:       policy,
			pageSize:    pageSize,
			states:      make(map[string]models.PullState, len(objects)),
			logger:      log,
		},
		onReady: deps.OnReady,
		logger:  log,
	}
	e.observer = newObserver(e, debounce, deps.Workers.PollInterval, log)
	e.tracker.onChange = func(string) { e.observer.localChanged() }

	return e, nil
}

// Setup gates on the account status, registers zones and the subscription,
// resumes pending remote operations and runs the initial pull. The engine
// reports ready only when every step succeeded.
func (e *Engine) Setup(ctx context.Context) error {
	log := logger.FromContextOr(ctx, e.logger)

	var status models.AccountStatus
	err := e.retry.do(ctx, func(ctx context.Context) error {
		var serr error
		status, serr = e.remote.AccountStatus(ctx)
		return serr
	})
	if err != nil {
		return newSyncError(classify(err), "setup", "", err)
	}

	switch status {
	case models.AccountAvailable:
	case models.AccountNoAccount, models.AccountRestricted:
		if e.scope != models.ScopePublic {
			return fmt.Errorf("%w: %s", ErrAccountUnavailable, status)
		}
	case models.AccountUndetermined:
		return ErrAccountStatusUndetermined
	default:
		return fmt.Errorf("%w: %s", ErrAccountUnavailable, status)
	}

	var errs []error
	if err = e.zones.EnsureZones(ctx, e.objects); err != nil {
		log.Err(err).Str("func", "Engine.Setup").Msg("some zones are not registered")
		errs = append(errs, err)
	}

	err = e.retry.do(ctx, e.remote.ResumeLongLivedOperations)
	if err != nil {
		return errors.Join(append(errs, newSyncError(classify(err), "setup", "", err))...)
	}

	if err = e.zones.EnsureSubscription(ctx); err != nil {
		return errors.Join(append(errs, err)...)
	}

	if err = e.Pull(ctx); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	e.ready.Store(true)
	log.Info().
		Str("func", "Engine.Setup").
		Str("scope", string(e.scope)).
		Int("count", len(e.objects)).
		Msg("sync engine ready")

	if e.onReady != nil {
		e.onReady()
	}
	return nil
}

// Ready reports whether Setup completed.
func (e *Engine) Ready() bool {
	return e.ready.Load()
}

// Pull applies every remote change since the stored tokens. Concurrent calls
// share one run. A caller whose ctx ends stops waiting; the run itself
// completes.
func (e *Engine) Pull(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ch := e.pulls.DoChan("pull", func() (any, error) {
		return nil, e.pull(context.WithoutCancel(ctx))
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (e *Engine) pull(ctx context.Context) error {
	if e.scope == models.ScopePrivate {
		return e.puller.pullDatabase(ctx, e.objects)
	}
	return e.puller.pullZones(ctx, e.objects)
}

// Push writes the pending changes of the given objects. Objects of paused
// types are skipped.
func (e *Engine) Push(ctx context.Context, refs ...models.ObjectRef) error {
	var (
		order []*SyncObject
		ids   = make(map[string][]string)
		errs  []error
	)
	for _, ref := range refs {
		obj, ok := e.byType[ref.TypeID]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %s", ErrTypeNotRegistered, ref.TypeID))
			continue
		}
		if _, seen := ids[ref.TypeID]; !seen {
			order = append(order, obj)
		}
		ids[ref.TypeID] = append(ids[ref.TypeID], ref.ID)
	}

	for _, obj := range order {
		if err := e.pusher.push(ctx, obj, ids[obj.TypeID]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PushAll writes every pending change of every non-paused type.
func (e *Engine) PushAll(ctx context.Context) error {
	var errs []error
	for _, obj := range e.objects {
		if err := e.pusher.push(ctx, obj, nil); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StartObservingLocalAndRemoteChanges turns on notification handling,
// polling and debounced pushes. A running observation is restarted.
func (e *Engine) StartObservingLocalAndRemoteChanges(ctx context.Context) {
	e.observer.start(ctx)
}

// StopObservingLocalAndRemoteChanges turns observation off and waits for the
// triggered operation in flight, if any.
func (e *Engine) StopObservingLocalAndRemoteChanges() {
	e.observer.stop()
}

// NotifyRemoteDataChanged signals that the remote store changed. It triggers
// a pull followed by a push while observing and is ignored otherwise.
func (e *Engine) NotifyRemoteDataChanged() {
	if !e.observer.remoteChanged() {
		e.logger.Debug().
			Str("func", "Engine.NotifyRemoteDataChanged").
			Msg("not observing, notification ignored")
	}
}

// Pause stops tracking and pushing local changes of typeID. Local writes are
// still stored.
func (e *Engine) Pause(typeID string) error {
	obj, ok := e.byType[typeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeID)
	}
	obj.setPaused(true)
	return nil
}

// Resume undoes Pause. Writes made while paused are not queued.
func (e *Engine) Resume(typeID string) error {
	obj, ok := e.byType[typeID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeID)
	}
	obj.setPaused(false)
	return nil
}

// ZoneState reports where the pull of typeID currently is.
func (e *Engine) ZoneState(typeID string) (models.PullState, error) {
	if _, ok := e.byType[typeID]; !ok {
		return "", fmt.Errorf("%w: %s", ErrTypeNotRegistered, typeID)
	}
	return e.puller.state(typeID), nil
}

// ZoneStates reports the pull state of every registered type.
func (e *Engine) ZoneStates() map[string]models.PullState {
	out := e.puller.snapshot()
	for _, obj := range e.objects {
		if _, ok := out[obj.TypeID]; !ok {
			out[obj.TypeID] = models.PullIdle
		}
	}
	return out
}

// Tracker returns the change tracker local writes go through.
func (e *Engine) Tracker() *ChangeTracker {
	return e.tracker
}
