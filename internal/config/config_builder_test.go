// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = errors.New("boom")

	cfg, err := b.build()

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "boom")
}

func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Engine: Engine{Scope: "private", BatchSize: 100}},
		&StructuredConfig{Engine: Engine{Scope: "public"}},
	)

	cfg, err := b.build()

	require.NoError(t, err)
	assert.Equal(t, "public", cfg.Engine.Scope)
	assert.Equal(t, 100, cfg.Engine.BatchSize, "zero fields of later sources do not override")
}

func TestBuild_NegativeLimitsRejected(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Engine: Engine{BatchSize: -1}})

	_, err := b.build()

	require.ErrorIs(t, err, ErrInvalidEngineConfigs)
}

// ── withEnv / withJSON ────────────────────────────────────────────────────────

func TestWithEnv_ThenJSON(t *testing.T) {
	path := writeTempJSONConfig(t, map[string]any{
		"engine": map[string]any{"batch_size": 250},
	})
	t.Setenv("SYNCD_CONFIG", path)
	t.Setenv("SYNCD_ENGINE_BATCH_SIZE", "10")
	t.Setenv("SYNCD_ENGINE_PAGE_SIZE", "20")

	cfg, err := newConfigBuilder().withEnv().withJSON().build()

	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Engine.BatchSize)
	assert.Equal(t, 20, cfg.Engine.PageSize)
}

func TestWithJSON_NoPathSkipsFile(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	b.withJSON()

	assert.NoError(t, b.err)
	assert.Len(t, b.configs, 1)
}

func TestWithJSON_BadPathRecordsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})

	b.withJSON()

	assert.Error(t, b.err)
}

// ── NewSyncConfig / validate ──────────────────────────────────────────────────

func TestNewSyncConfig_Defaults(t *testing.T) {
	cfg := NewSyncConfig(&StructuredConfig{Engine: Engine{Types: []string{" Note ", "Note", "", "Task"}}})

	assert.Equal(t, "private", cfg.Sync.Scope)
	assert.Equal(t, []string{"Note", "Task"}, cfg.Sync.Types)
	assert.Equal(t, DefaultBatchSize, cfg.Sync.BatchSize)
	assert.Equal(t, DefaultPageSize, cfg.Sync.PageSize)
	assert.Equal(t, DefaultRetryMaxAttempts, cfg.Sync.RetryMaxAttempts)
	assert.Equal(t, DefaultRetryBaseDelay, cfg.Sync.RetryBaseDelay)
	assert.Equal(t, DefaultDSN, cfg.Storage.DSN)
	assert.Equal(t, "http", cfg.Adapter.Mode)
	assert.Equal(t, DefaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, DefaultPushDebounce, cfg.Workers.PushDebounce)
	assert.True(t, cfg.Log.Enabled)
}

func TestSyncConfig_Validate(t *testing.T) {
	valid := func() *SyncConfig {
		return NewSyncConfig(&StructuredConfig{
			Engine:  Engine{Types: []string{"Note"}},
			Adapter: Adapter{Mode: "memory"},
		})
	}

	tests := []struct {
		name    string
		mutate  func(c *SyncConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(c *SyncConfig) {}},
		{name: "shared scope", mutate: func(c *SyncConfig) { c.Sync.Scope = "shared" }, wantErr: ErrInvalidEngineConfigs},
		{name: "no types", mutate: func(c *SyncConfig) { c.Sync.Types = nil }, wantErr: ErrInvalidEngineConfigs},
		{name: "max below base", mutate: func(c *SyncConfig) { c.Sync.RetryMaxDelay = time.Millisecond }, wantErr: ErrInvalidEngineConfigs},
		{name: "memory dsn", mutate: func(c *SyncConfig) { c.Storage.DSN = ":memory:" }, wantErr: ErrInvalidStorageConfigs},
		{name: "http without address", mutate: func(c *SyncConfig) { c.Adapter.Mode = "http" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "unknown mode", mutate: func(c *SyncConfig) { c.Adapter.Mode = "grpc" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "negative poll", mutate: func(c *SyncConfig) { c.Workers.PollInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSyncConfig_MarshalOmitsToken(t *testing.T) {
	cfg := NewSyncConfig(&StructuredConfig{
		Engine:  Engine{Types: []string{"Note"}},
		Adapter: Adapter{HTTPAddress: "http://remote", Token: "s3cr3t-bearer"},
	})
	require.Equal(t, "s3cr3t-bearer", cfg.Adapter.Token)

	out, err := json.Marshal(cfg)
	require.NoError(t, err)

	assert.NotContains(t, string(out), "s3cr3t-bearer")
	assert.Contains(t, string(out), "http://remote")
}
