// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"time"
)

// Transport-agnostic sentinel errors. Transports wrap them so callers can
// match with [errors.Is] regardless of the wire protocol.
var (
	// ErrNetwork is a failed or timed out round trip. The remote state is
	// unknown and the call may be repeated.
	ErrNetwork = errors.New("remote unreachable")

	// ErrRateLimited means the remote throttled the call. The wrapping
	// [RetryAfterError] carries the suggested delay when there is one.
	ErrRateLimited = errors.New("remote rate limited")

	// ErrZoneBusy means another writer holds the zone; retry later.
	ErrZoneBusy = errors.New("zone busy")

	// ErrServiceUnavailable is a 5xx answer of the remote.
	ErrServiceUnavailable = errors.New("remote service unavailable")

	ErrNotFound             = errors.New("remote resource not found")
	ErrZoneNotFound         = errors.New("zone not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrChangeTokenExpired means the remote no longer accepts the change
	// token. The zone must be fetched again from scratch.
	ErrChangeTokenExpired = errors.New("change token expired")

	// ErrAlreadyExists is a 409 answer to a create call.
	ErrAlreadyExists             = errors.New("remote resource already exists")
	ErrZoneAlreadyExists         = errors.New("zone already exists")
	ErrSubscriptionAlreadyExists = errors.New("subscription already exists")

	ErrBadRequest    = errors.New("bad request")
	ErrUnauthorized  = errors.New("client unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrQuotaExceeded = errors.New("remote quota exceeded")
)

// RetryAfterError decorates a throttling error with the delay the remote
// asked for.
type RetryAfterError struct {
	Err   error
	After time.Duration
}

func (e *RetryAfterError) Error() string {
	if e.After <= 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (retry after %s)", e.Err, e.After)
}

func (e *RetryAfterError) Unwrap() error {
	return e.Err
}

// RetryAfter returns the remote-suggested delay carried by err, if any.
func RetryAfter(err error) (time.Duration, bool) {
	var rae *RetryAfterError
	if errors.As(err, &rae) && rae.After > 0 {
		return rae.After, true
	}
	return 0, false
}
