// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"SYNCD_CONFIG": "/path/to/config.json",

		"SYNCD_ENGINE_SCOPE":              "public",
		"SYNCD_ENGINE_TYPES":              "Note,Task",
		"SYNCD_ENGINE_BATCH_SIZE":         "100",
		"SYNCD_ENGINE_PAGE_SIZE":          "50",
		"SYNCD_ENGINE_RETRY_MAX_ATTEMPTS": "3",
		"SYNCD_ENGINE_RETRY_BASE_DELAY":   "250ms",
		"SYNCD_ENGINE_RETRY_MAX_DELAY":    "10s",

		"SYNCD_STORAGE_DB_DSN": "/var/lib/syncd/sync.db",

		"SYNCD_ADAPTER_MODE":            "http",
		"SYNCD_ADAPTER_ADDRESS":         "https://records.example.com",
		"SYNCD_ADAPTER_REQUEST_TIMEOUT": "15s",
		"SYNCD_ADAPTER_TOKEN":           "secret",

		"SYNCD_SERVER_ADDRESS": "localhost:8081",

		"SYNCD_WORKERS_PUSH_DEBOUNCE": "1s",
		"SYNCD_WORKERS_POLL_INTERVAL": "5m",

		"SYNCD_LOG_LEVEL": "info",
		"SYNCD_LOG_FILE":  "/var/log/syncd.log",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "public", cfg.Engine.Scope)
	assert.Equal(t, []string{"Note", "Task"}, cfg.Engine.Types)
	assert.Equal(t, 100, cfg.Engine.BatchSize)
	assert.Equal(t, 50, cfg.Engine.PageSize)
	assert.Equal(t, 3, cfg.Engine.RetryMaxAttempts)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.RetryBaseDelay)
	assert.Equal(t, 10*time.Second, cfg.Engine.RetryMaxDelay)
	assert.Equal(t, "/var/lib/syncd/sync.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "https://records.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 15*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "secret", cfg.Adapter.Token)
	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Workers.PushDebounce)
	assert.Equal(t, 5*time.Minute, cfg.Workers.PollInterval)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "/var/log/syncd.log", cfg.Log.File)
}

func TestParseEnv_UnprefixedIgnored(t *testing.T) {
	setEnvVars(t, map[string]string{"ENGINE_SCOPE": "public"})

	cfg := &StructuredConfig{}
	require.NoError(t, parseEnv(cfg))

	assert.Empty(t, cfg.Engine.Scope)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SYNCD_ENGINE_RETRY_BASE_DELAY": "not-a-duration"})

	err := parseEnv(&StructuredConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "error getting env configs")
}
