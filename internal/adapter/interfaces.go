// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport abstraction between the sync engine
// and the remote cloud record store.
//
// The primary abstraction is [RemoteTransport], which decouples the service
// layer from the wire protocol. The package ships an HTTP/REST
// implementation ([NewHTTPTransport]) and an in-memory remote
// ([NewMemoryRemote]) used by the daemon's memory mode and by tests.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrChangeTokenExpired] for 410, [ErrRateLimited] for
// 429).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cloud-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_transport_mock.go -package=mock

// RemoteTransport is the remote record store as seen by the sync engine.
// Every call blocks until the remote answered or ctx is done.
type RemoteTransport interface {
	// AccountStatus reports whether the remote account can be used.
	AccountStatus(ctx context.Context) (models.AccountStatus, error)

	// EnsureZoneExists creates the zone. An existing zone is reported as
	// [ErrZoneAlreadyExists].
	EnsureZoneExists(ctx context.Context, zoneID string) error

	// EnsureSubscriptionExists registers the standing change subscription
	// with a fixed id. An existing one is reported as
	// [ErrSubscriptionAlreadyExists].
	EnsureSubscriptionExists(ctx context.Context, subscriptionID string, scope models.DatabaseScope) error

	// FetchDatabaseChanges returns zone membership changes since token. A nil
	// token fetches from the beginning.
	FetchDatabaseChanges(ctx context.Context, token []byte) (models.DatabaseChangeSet, error)

	// FetchZoneChanges returns up to limit record changes of the zone since
	// token. A nil token fetches the whole zone. An expired token is reported
	// as [ErrChangeTokenExpired].
	FetchZoneChanges(ctx context.Context, zoneID string, token []byte, limit int) (models.ZoneChangeSet, error)

	// WriteRecords submits one batch and returns one outcome per record. A
	// non-nil error means the batch as a whole failed and no outcome applies.
	WriteRecords(ctx context.Context, batch models.WriteBatch) ([]models.WriteOutcome, error)

	// ResumeLongLivedOperations asks the remote to continue writes that were
	// accepted before a restart.
	ResumeLongLivedOperations(ctx context.Context) error
}
