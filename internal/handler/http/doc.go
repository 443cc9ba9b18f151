// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP surface of the sync daemon.
//
// It exposes the remote change notification webhook and a few control
// endpoints (pull, push, zone states, version). Request tracing and access
// logging are handled by middleware before requests reach the sync engine.
package http
