// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Engine holds the tuning of the synchronization core.
	Engine Engine `envPrefix:"ENGINE_"`

	// Storage holds configuration of the local SQLite database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Adapter holds the remote record store transport settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Server holds the notification webhook listener settings.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds the observer timing settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Engine holds the tuning of the synchronization core.
type Engine struct {
	// Scope is the remote database scope: "private" or "public".
	// Env: ENGINE_SCOPE
	Scope string `env:"SCOPE"`

	// Types lists the registered syncable type identifiers. Each type syncs
	// into the zone "<type>Zone".
	// Env: ENGINE_TYPES (comma separated)
	Types []string `env:"TYPES" envSeparator:","`

	// BatchSize is the maximum number of records per remote write call.
	// Env: ENGINE_BATCH_SIZE
	BatchSize int `env:"BATCH_SIZE"`

	// PageSize is the maximum number of changes requested per feed page.
	// Env: ENGINE_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// RetryMaxAttempts bounds the retries of transient remote failures.
	// Env: ENGINE_RETRY_MAX_ATTEMPTS
	RetryMaxAttempts int `env:"RETRY_MAX_ATTEMPTS"`

	// RetryBaseDelay is the first backoff delay; it doubles per attempt.
	// Env: ENGINE_RETRY_BASE_DELAY
	RetryBaseDelay time.Duration `env:"RETRY_BASE_DELAY"`

	// RetryMaxDelay caps a single backoff delay.
	// Env: ENGINE_RETRY_MAX_DELAY
	RetryMaxDelay time.Duration `env:"RETRY_MAX_DELAY"`
}

// Storage groups the configuration of the local persistence backends.
type Storage struct {
	// DB holds the SQLite database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local SQLite database.
type DB struct {
	// DSN is the SQLite database file path.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Adapter holds the remote record store transport settings.
type Adapter struct {
	// Mode selects the transport: "http" or "memory".
	// Env: ADAPTER_MODE
	Mode string `env:"MODE"`

	// HTTPAddress is the base address of the remote record store API.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration of one remote call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token attached to remote calls.
	// Env: ADAPTER_TOKEN
	Token string `env:"TOKEN" json:"-"`
}

// Server holds network settings of the inbound notification webhook.
type Server struct {
	// HTTPAddress is the TCP address the webhook listens on ("host:port").
	// Empty disables the listener.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the read/write timeout of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds the observer timing settings.
type Workers struct {
	// PushDebounce delays the automatic push after a local change so bursts
	// of writes are pushed together.
	// Env: WORKERS_PUSH_DEBOUNCE
	PushDebounce time.Duration `env:"PUSH_DEBOUNCE"`

	// PollInterval triggers a pull periodically while observing. Zero
	// disables polling; pulls are then notification driven only.
	// Env: WORKERS_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Log holds logging settings.
type Log struct {
	// Disabled turns logging off.
	// Env: LOG_DISABLED
	Disabled bool `env:"DISABLED"`

	// Level is the minimum zerolog level name.
	// Env: LOG_LEVEL
	Level string `env:"LEVEL"`

	// File is the rotated log file path; empty logs to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
