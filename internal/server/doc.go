// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the webhook and control listener of the sync daemon.
//
// It handles startup, stop signals and graceful shutdown of the listener.
package server
