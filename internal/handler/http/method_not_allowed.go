// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
)

// methodNotRegistered answers a known path requested with a method it does
// not serve. The control API replies 404 instead of 405 and sends no Allow
// header, so it does not advertise which methods a path accepts.
func (h *Handler) methodNotRegistered(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("func", "*Handler.methodNotRegistered").
		Str("method", r.Method).
		Str("uri", r.RequestURI).
		Msg("method not registered for path")

	http.NotFound(w, r)
}
