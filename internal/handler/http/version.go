// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.appInfo.GetAppBuildInfo(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(info.String()))
}
