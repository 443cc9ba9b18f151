// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
)

// errorStatusMap is consulted before the error class. Order matters, the
// first match wins.
var errorStatusMap = []struct {
	target error
	status int
}{
	{service.ErrTypeNotRegistered, http.StatusBadRequest},
	{service.ErrAccountStatusUndetermined, http.StatusServiceUnavailable},
	{service.ErrAccountUnavailable, http.StatusForbidden},
	{adapter.ErrUnauthorized, http.StatusBadGateway},
	{adapter.ErrForbidden, http.StatusBadGateway},
	{adapter.ErrQuotaExceeded, http.StatusInsufficientStorage},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
	{context.Canceled, http.StatusServiceUnavailable},
}

var classStatusMap = map[service.Class]int{
	service.ClassTransient:    http.StatusServiceUnavailable,
	service.ClassStaleness:    http.StatusConflict,
	service.ClassConflict:     http.StatusConflict,
	service.ClassPrecondition: http.StatusFailedDependency,
	service.ClassPermanent:    http.StatusInternalServerError,
}

// statusFromError returns the response status for err and the sync error
// class reported with it.
func statusFromError(err error) (int, string) {
	class := service.ClassOf(err)

	for _, e := range errorStatusMap {
		if errors.Is(err, e.target) {
			return e.status, string(class)
		}
	}
	if status, ok := classStatusMap[class]; ok {
		return status, string(class)
	}
	return http.StatusInternalServerError, string(class)
}
