// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle of the daemon listener.
//
// RunServer blocks until a stop signal arrives and the listener has been shut
// down. Shutdown may also be called directly.
type Server interface {
	RunServer()
	Shutdown()
}
