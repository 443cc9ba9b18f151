// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// syncRunner is what the observer triggers.
type syncRunner interface {
	Setup(ctx context.Context) error
	Ready() bool
	Pull(ctx context.Context) error
	PushAll(ctx context.Context) error
}

// observer reacts to remote notifications, an optional poll ticker and
// local changes while observation is on. It is idle until start is called.
type observer struct {
	runner       syncRunner
	debounce     time.Duration
	pollInterval time.Duration
	logger       *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	notify  chan struct{}
	pushes  chan struct{}
	timer   *time.Timer
	running bool
	wg      sync.WaitGroup
}

func newObserver(runner syncRunner, debounce, pollInterval time.Duration, logger *logger.Logger) *observer {
	return &observer{
		runner:       runner,
		debounce:     debounce,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// start stops any previous run, then launches the goroutine serving
// notifications, polls and debounced pushes. It exits when ctx is cancelled
// or stop is called.
func (o *observer) start(ctx context.Context) {
	o.stop()

	o.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	o.notify = make(chan struct{}, 1)
	o.pushes = make(chan struct{}, 1)
	o.running = true
	notify, pushes := o.notify, o.pushes
	o.wg.Add(1)
	o.mu.Unlock()

	go func() {
		defer o.wg.Done()

		var poll <-chan time.Time
		if o.pollInterval > 0 {
			t := time.NewTicker(o.pollInterval)
			defer t.Stop()
			poll = t.C
		}

		// triggered work is not cut short by stop
		opCtx := context.WithoutCancel(runCtx)

		for {
			select {
			case <-runCtx.Done():
				return
			case <-notify:
				o.pullThenPush(opCtx)
			case <-poll:
				o.pullThenPush(opCtx)
			case <-pushes:
				if err := o.runner.PushAll(opCtx); err != nil {
					o.logger.Err(err).Str("func", "observer.run").Msg("debounced push failed")
				}
			}
		}
	}()
}

// pullThenPush runs Setup instead of the pull until the runner is ready.
// Nothing is pushed while Setup keeps failing.
func (o *observer) pullThenPush(ctx context.Context) {
	if !o.runner.Ready() {
		if err := o.runner.Setup(ctx); err != nil {
			o.logger.Err(err).Str("func", "observer.pullThenPush").Msg("setup retry failed")
			return
		}
	} else if err := o.runner.Pull(ctx); err != nil {
		o.logger.Err(err).Str("func", "observer.pullThenPush").Msg("triggered pull failed")
	}
	if err := o.runner.PushAll(ctx); err != nil {
		o.logger.Err(err).Str("func", "observer.pullThenPush").Msg("push after pull failed")
	}
}

// remoteChanged queues one pull. Notifications arriving while a pull is
// queued collapse into it. Ignored when not running.
func (o *observer) remoteChanged() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return false
	}
	select {
	case o.notify <- struct{}{}:
	default:
	}
	return true
}

// localChanged schedules a push after the debounce delay. Further changes
// within the delay restart it.
func (o *observer) localChanged() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running {
		return
	}
	if o.timer != nil {
		o.timer.Stop()
	}
	pushes := o.pushes
	o.timer = time.AfterFunc(o.debounce, func() {
		select {
		case pushes <- struct{}{}:
		default:
		}
	})
}

// stop cancels the goroutine and blocks until it has exited. Operations it
// already started run to completion first. Safe to call when not running.
func (o *observer) stop() {
	o.mu.Lock()
	cancel := o.cancel
	o.cancel = nil
	o.running = false
	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	o.wg.Wait()
}

func (o *observer) isRunning() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}
