// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoteDataChanged_NotifiesEngine(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().NotifyRemoteDataChanged().Times(1)

	rec := httptest.NewRecorder()
	d.handler.remoteDataChanged(rec, httptest.NewRequest(http.MethodPost, "/api/notifications/changed",
		strings.NewReader(`{"subscription":"private-changes"}`)))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
