// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/mock"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	engine  *mock.MockSyncEngine
	appInfo *mock.MockAppInfoService
	handler *Handler
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	engine := mock.NewMockSyncEngine(ctrl)
	appInfo := mock.NewMockAppInfoService(ctrl)
	return testDeps{
		engine:  engine,
		appInfo: appInfo,
		handler: NewHandler(engine, appInfo, logger.Nop()),
	}
}

// newTestHandler builds a Handler with no collaborators, enough for the
// middleware tests.
func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func TestNewHandler_StoresCollaborators(t *testing.T) {
	d := newTestDeps(t)

	require.NotNil(t, d.handler)
	assert.Same(t, d.engine, d.handler.engine)
	assert.Same(t, d.appInfo, d.handler.appInfo)
	assert.NotNil(t, d.handler.logger)
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().NotifyRemoteDataChanged()
	d.engine.EXPECT().Pull(gomock.Any()).Return(nil)
	d.engine.EXPECT().PushAll(gomock.Any()).Return(nil)
	d.engine.EXPECT().ZoneStates().Return(map[string]models.PullState{})
	d.appInfo.EXPECT().GetAppBuildInfo(gomock.Any()).Return(models.NewAppBuildInfo("1", "", ""))

	router := d.handler.Init()

	routes := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodPost, "/api/notifications/changed", http.StatusAccepted},
		{http.MethodPost, "/api/sync/pull", http.StatusNoContent},
		{http.MethodPost, "/api/sync/push", http.StatusNoContent},
		{http.MethodGet, "/api/sync/zones", http.StatusOK},
		{http.MethodGet, "/api/version", http.StatusOK},
	}
	for _, tc := range routes {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, tc.want, rec.Code)
			assert.NotEmpty(t, rec.Header().Get(traceIDHeader))
		})
	}
}

func TestInit_UnknownRoutes(t *testing.T) {
	router := newTestDeps(t).handler.Init()

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/nonexistent"},
		{http.MethodGet, "/api/sync/pull"},
		{http.MethodDelete, "/api/sync/zones"},
		{http.MethodPost, "/api/version"},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestInit_TraceIDEchoed(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().NotifyRemoteDataChanged()

	req := httptest.NewRequest(http.MethodPost, "/api/notifications/changed", nil)
	req.Header.Set(traceIDHeader, "remote-trace")
	rec := httptest.NewRecorder()
	d.handler.Init().ServeHTTP(rec, req)

	assert.Equal(t, "remote-trace", rec.Header().Get(traceIDHeader))
}
