// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "sync"

// zoneLocks hands out one mutex per zone. Push and pull of the same zone
// hold it around drain/write/acknowledge and fetch/apply/persist.
type zoneLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newZoneLocks() *zoneLocks {
	return &zoneLocks{locks: make(map[string]*sync.Mutex)}
}

// lock blocks until the zone is free and returns its unlock func.
func (z *zoneLocks) lock(zoneID string) func() {
	z.mu.Lock()
	l, ok := z.locks[zoneID]
	if !ok {
		l = &sync.Mutex{}
		z.locks[zoneID] = l
	}
	z.mu.Unlock()

	l.Lock()
	return l.Unlock
}
