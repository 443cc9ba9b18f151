// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
)

var (
	ErrSharedScopeUnsupported = errors.New("shared database scope is not supported")
	ErrUnknownScope           = errors.New("unknown database scope")
	ErrNoSyncObjects          = errors.New("no sync objects registered")
	ErrDuplicateSyncObject    = errors.New("sync object registered twice")
	ErrNilRemote              = errors.New("remote transport is nil")
	ErrNilStorage             = errors.New("checkpoint or marker repository is nil")

	// ErrAccountStatusUndetermined is returned by Setup when the remote could
	// not tell whether an account is available. Nothing was done; call Setup
	// again later.
	ErrAccountStatusUndetermined = errors.New("account status undetermined")
	ErrAccountUnavailable        = errors.New("account unavailable")

	ErrTypeNotRegistered = errors.New("type is not registered")

	// ErrChangeTokenExpired is returned when a zone token expired a second
	// time during one pull.
	ErrChangeTokenExpired = errors.New("change token expired again during resync")

	ErrRetryBudgetExhausted = errors.New("retry budget exhausted")
	ErrRecordRejected       = errors.New("record rejected by remote")
	ErrZoneNotReady         = errors.New("zone is not available remotely")
)

// Class groups sync failures by how the engine reacts to them.
type Class string

const (
	// ClassTransient failures are retried with backoff.
	ClassTransient Class = "transient"
	// ClassStaleness means a local assumption is out of date; the assumption
	// is dropped and the state resynced.
	ClassStaleness Class = "staleness"
	// ClassConflict means the remote copy is newer. The remote copy wins and
	// the failure is never surfaced.
	ClassConflict Class = "conflict"
	// ClassPermanent failures are surfaced to the caller.
	ClassPermanent Class = "permanent"
	// ClassPrecondition means a zone or the subscription is missing; the
	// affected type is blocked.
	ClassPrecondition Class = "precondition"
)

// SyncError is the terminal error of a push, pull or setup step.
type SyncError struct {
	Class  Class
	Op     string
	TypeID string
	Err    error
}

func (e *SyncError) Error() string {
	if e.TypeID == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Class, e.Err)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.TypeID, e.Class, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func newSyncError(class Class, op, typeID string, err error) *SyncError {
	return &SyncError{Class: class, Op: op, TypeID: typeID, Err: err}
}

// ClassOf returns the class of the first SyncError in err's chain, or the
// class derived from the underlying transport error.
func ClassOf(err error) Class {
	var se *SyncError
	if errors.As(err, &se) {
		return se.Class
	}
	return classify(err)
}
