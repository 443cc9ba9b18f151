// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged [StructuredConfig] before defaults are applied.
// Only values that are wrong in every context are rejected here; missing
// values are filled in by [NewSyncConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Engine.BatchSize < 0 || cfg.Engine.PageSize < 0 || cfg.Engine.RetryMaxAttempts < 0 {
		return fmt.Errorf("%w: negative limits", ErrInvalidEngineConfigs)
	}
	return nil
}

func (cfg *SyncConfig) validate() error {
	switch cfg.Sync.Scope {
	case "private", "public":
	default:
		return fmt.Errorf("%w: unsupported scope %q", ErrInvalidEngineConfigs, cfg.Sync.Scope)
	}

	if len(cfg.Sync.Types) == 0 {
		return fmt.Errorf("%w: no syncable types registered", ErrInvalidEngineConfigs)
	}

	if cfg.Sync.RetryMaxDelay < cfg.Sync.RetryBaseDelay {
		return fmt.Errorf("%w: retry max delay below base delay", ErrInvalidEngineConfigs)
	}

	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Adapter.Mode {
	case "memory":
	case "http":
		if cfg.Adapter.HTTPAddress == "" {
			return ErrInvalidAdapterConfigs
		}
	default:
		return fmt.Errorf("%w: unsupported mode %q", ErrInvalidAdapterConfigs, cfg.Adapter.Mode)
	}

	if cfg.Workers.PushDebounce <= 0 || cfg.Workers.PollInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
