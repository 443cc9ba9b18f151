// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// classify maps a transport or storage error onto a [Class]. Anything the
// transport does not recognise, local store failures included, is permanent.
func classify(err error) Class {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, ErrRetryBudgetExhausted),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ClassPermanent

	case errors.Is(err, adapter.ErrNetwork),
		errors.Is(err, adapter.ErrRateLimited),
		errors.Is(err, adapter.ErrZoneBusy),
		errors.Is(err, adapter.ErrServiceUnavailable):
		return ClassTransient

	case errors.Is(err, adapter.ErrChangeTokenExpired),
		errors.Is(err, adapter.ErrNotFound):
		return ClassStaleness

	case errors.Is(err, adapter.ErrZoneNotFound),
		errors.Is(err, adapter.ErrSubscriptionNotFound):
		return ClassPrecondition
	}

	return ClassPermanent
}

// classifyStatus maps a per-record write outcome onto a [Class].
func classifyStatus(status models.WriteStatus) Class {
	switch status {
	case models.WriteSuccess:
		return ""
	case models.WriteConflict:
		return ClassConflict
	case models.WriteRateLimited, models.WriteZoneBusy:
		return ClassTransient
	case models.WriteNotFound, models.WriteInvalidZone:
		return ClassStaleness
	}
	return ClassPermanent
}
