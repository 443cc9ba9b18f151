// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// remoteDataChanged is the webhook the remote store calls when a
// subscription fires. The body carries nothing the engine needs.
func (h *Handler) remoteDataChanged(w http.ResponseWriter, r *http.Request) {
	h.engine.NotifyRemoteDataChanged()
	w.WriteHeader(http.StatusAccepted)
}
