// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRetryPolicy_Defaults(t *testing.T) {
	p := newRetryPolicy(config.SyncSettings{RetryMaxAttempts: -1, RetryMaxDelay: time.Millisecond})

	assert.Zero(t, p.attempts)
	assert.Equal(t, config.DefaultRetryBaseDelay, p.base)
	assert.Equal(t, config.DefaultRetryBaseDelay, p.max, "max never below base")
}

func TestRetryPolicy_Do(t *testing.T) {
	tests := []struct {
		name      string
		failures  []error
		wantCalls int
		wantErr   error
		exhausted bool
	}{
		{
			name:      "success first time",
			wantCalls: 1,
		},
		{
			name:      "transient then success",
			failures:  []error{adapter.ErrNetwork, adapter.ErrZoneBusy},
			wantCalls: 3,
		},
		{
			name:      "permanent not retried",
			failures:  []error{adapter.ErrUnauthorized},
			wantCalls: 1,
			wantErr:   adapter.ErrUnauthorized,
		},
		{
			name:      "staleness not retried",
			failures:  []error{adapter.ErrChangeTokenExpired},
			wantCalls: 1,
			wantErr:   adapter.ErrChangeTokenExpired,
		},
		{
			name:      "budget exhausted",
			failures:  []error{adapter.ErrRateLimited, adapter.ErrRateLimited, adapter.ErrRateLimited, adapter.ErrRateLimited},
			wantCalls: 3,
			wantErr:   adapter.ErrRateLimited,
			exhausted: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := retryPolicy{attempts: 2, base: time.Millisecond, max: 2 * time.Millisecond}

			calls := 0
			err := p.do(context.Background(), func(context.Context) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.exhausted, errors.Is(err, ErrRetryBudgetExhausted))
		})
	}
}

func TestRetryPolicy_HonoursRetryAfter(t *testing.T) {
	p := retryPolicy{attempts: 1, base: time.Millisecond, max: time.Millisecond}

	calls := 0
	start := time.Now()
	err := p.do(context.Background(), func(context.Context) error {
		calls++
		if calls == 1 {
			return &adapter.RetryAfterError{Err: adapter.ErrServiceUnavailable, After: 40 * time.Millisecond}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestRetryPolicy_ContextCancelled(t *testing.T) {
	p := retryPolicy{attempts: 5, base: time.Hour, max: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	err := p.do(ctx, func(context.Context) error {
		cancel()
		return fmt.Errorf("dial: %w", adapter.ErrNetwork)
	})

	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRetryBudgetExhausted))
}

func TestSleep(t *testing.T) {
	require.NoError(t, sleep(context.Background(), 0))
	require.NoError(t, sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleep(ctx, time.Hour), context.Canceled)
}
