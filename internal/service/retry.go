// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/sethvargo/go-retry"
)

// retryPolicy is the bounded exponential backoff applied to transient
// failures.
type retryPolicy struct {
	attempts uint64
	base     time.Duration
	max      time.Duration
}

func newRetryPolicy(settings config.SyncSettings) retryPolicy {
	p := retryPolicy{
		base: settings.RetryBaseDelay,
		max:  settings.RetryMaxDelay,
	}
	if settings.RetryMaxAttempts > 0 {
		p.attempts = uint64(settings.RetryMaxAttempts)
	}
	if p.base <= 0 {
		p.base = config.DefaultRetryBaseDelay
	}
	if p.max < p.base {
		p.max = p.base
	}
	return p
}

// backoff returns a fresh backoff sequence. Backoffs are stateful, so every
// retried operation needs its own.
func (p retryPolicy) backoff() retry.Backoff {
	b := retry.NewExponential(p.base)
	b = retry.WithCappedDuration(p.max, b)
	return retry.WithMaxRetries(p.attempts, b)
}

// hinted wraps b so the next delay is at least the remote hint.
func hinted(b retry.Backoff, hint *time.Duration) retry.Backoff {
	return retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := b.Next()
		if stop {
			return 0, true
		}
		if *hint > next {
			next = *hint
		}
		*hint = 0
		return next, false
	})
}

// do runs fn until it succeeds, fails with a non-transient error, or the
// attempts run out. Exhaustion wraps the last error with
// [ErrRetryBudgetExhausted].
func (p retryPolicy) do(ctx context.Context, fn func(ctx context.Context) error) error {
	var (
		hint      time.Duration
		transient bool
	)

	err := retry.Do(ctx, hinted(p.backoff(), &hint), func(ctx context.Context) error {
		err := fn(ctx)
		transient = err != nil && classify(err) == ClassTransient
		if !transient {
			return err
		}
		if after, ok := adapter.RetryAfter(err); ok {
			hint = after
		}
		return retry.RetryableError(err)
	})
	if err != nil && transient && ctx.Err() == nil {
		return fmt.Errorf("%w: %w", ErrRetryBudgetExhausted, err)
	}
	return err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
