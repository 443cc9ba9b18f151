// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [SyncConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidEngineConfigs indicates invalid engine settings (for example,
	// an unsupported scope or no registered types).
	ErrInvalidEngineConfigs = errors.New("invalid engine configuration")
	// ErrInvalidAdapterConfigs indicates invalid remote transport settings
	// (for example, http mode without an address).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an in-memory DSN, which is not crash-durable).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidWorkerConfigs indicates invalid observer timing settings.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
