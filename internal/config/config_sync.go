// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied by [GetSyncConfig] and [DefaultSyncSettings].
const (
	DefaultBatchSize        = 400
	DefaultPageSize         = 200
	DefaultRetryMaxAttempts = 5
	DefaultRetryBaseDelay   = 500 * time.Millisecond
	DefaultRetryMaxDelay    = 30 * time.Second
	DefaultPushDebounce     = 2 * time.Second
	DefaultRequestTimeout   = 30 * time.Second
	DefaultDSN              = "sync.db"
)

// SyncSettings is the engine tuning consumed by the service layer.
type SyncSettings struct {
	// Scope is "private" or "public".
	Scope string
	// Types are the registered syncable type identifiers.
	Types []string
	// BatchSize is the per-call record limit of remote writes.
	BatchSize int
	// PageSize is the per-page change limit of remote feeds.
	PageSize int
	// RetryMaxAttempts bounds retries of transient failures.
	RetryMaxAttempts int
	// RetryBaseDelay is the first exponential backoff delay.
	RetryBaseDelay time.Duration
	// RetryMaxDelay caps one backoff delay.
	RetryMaxDelay time.Duration
}

// SyncStorage contains local database settings.
type SyncStorage struct {
	DSN string
}

// SyncAdapter contains remote transport settings.
type SyncAdapter struct {
	Mode           string
	HTTPAddress    string
	RequestTimeout time.Duration
	// Token is kept out of JSON so logging the config does not leak it.
	Token string `json:"-"`
}

// SyncServer contains webhook listener settings.
type SyncServer struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// SyncWorkers contains observer timing settings.
type SyncWorkers struct {
	PushDebounce time.Duration
	PollInterval time.Duration
}

// SyncLog contains logging settings.
type SyncLog struct {
	Enabled bool
	Level   string
	File    string
}

// SyncConfig is the validated configuration view of the sync daemon.
type SyncConfig struct {
	Sync    SyncSettings
	Storage SyncStorage
	Adapter SyncAdapter
	Server  SyncServer
	Workers SyncWorkers
	Log     SyncLog
}

// DefaultSyncSettings returns engine settings with every default applied.
func DefaultSyncSettings() SyncSettings {
	return SyncSettings{
		Scope:            "private",
		BatchSize:        DefaultBatchSize,
		PageSize:         DefaultPageSize,
		RetryMaxAttempts: DefaultRetryMaxAttempts,
		RetryBaseDelay:   DefaultRetryBaseDelay,
		RetryMaxDelay:    DefaultRetryMaxDelay,
	}
}

// GetSyncConfig builds and validates the daemon configuration view from the
// merged structured configuration, filling defaults for unset values.
func GetSyncConfig() (*SyncConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	syncCfg := NewSyncConfig(cfg)

	return syncCfg, syncCfg.validate()
}

// NewSyncConfig maps cfg onto a [SyncConfig] and applies defaults. It does not
// validate the result.
func NewSyncConfig(cfg *StructuredConfig) *SyncConfig {
	settings := DefaultSyncSettings()
	if cfg.Engine.Scope != "" {
		settings.Scope = strings.ToLower(strings.TrimSpace(cfg.Engine.Scope))
	}
	settings.Types = normalizeTypes(cfg.Engine.Types)
	settings.BatchSize = orInt(cfg.Engine.BatchSize, settings.BatchSize)
	settings.PageSize = orInt(cfg.Engine.PageSize, settings.PageSize)
	settings.RetryMaxAttempts = orInt(cfg.Engine.RetryMaxAttempts, settings.RetryMaxAttempts)
	settings.RetryBaseDelay = orDuration(cfg.Engine.RetryBaseDelay, settings.RetryBaseDelay)
	settings.RetryMaxDelay = orDuration(cfg.Engine.RetryMaxDelay, settings.RetryMaxDelay)

	mode := cfg.Adapter.Mode
	if mode == "" {
		mode = "http"
	}

	return &SyncConfig{
		Sync: settings,
		Storage: SyncStorage{
			DSN: orString(cfg.Storage.DB.DSN, DefaultDSN),
		},
		Adapter: SyncAdapter{
			Mode:           mode,
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: orDuration(cfg.Adapter.RequestTimeout, DefaultRequestTimeout),
			Token:          cfg.Adapter.Token,
		},
		Server: SyncServer{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: orDuration(cfg.Server.RequestTimeout, DefaultRequestTimeout),
		},
		Workers: SyncWorkers{
			PushDebounce: orDuration(cfg.Workers.PushDebounce, DefaultPushDebounce),
			PollInterval: cfg.Workers.PollInterval,
		},
		Log: SyncLog{
			Enabled: !cfg.Log.Disabled,
			Level:   cfg.Log.Level,
			File:    cfg.Log.File,
		},
	}
}

func normalizeTypes(types []string) []string {
	out := make([]string, 0, len(types))
	seen := make(map[string]struct{}, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func orDuration(v, fallback time.Duration) time.Duration {
	if v > 0 {
		return v
	}
	return fallback
}

func orString(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
