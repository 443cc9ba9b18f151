// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-cloud-sync/internal/adapter"
	"github.com/MKhiriev/go-cloud-sync/internal/service"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPull(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantClass  string
	}{
		{name: "success", wantStatus: http.StatusNoContent},
		{
			name:       "account undetermined",
			err:        service.ErrAccountStatusUndetermined,
			wantStatus: http.StatusServiceUnavailable,
			wantClass:  "permanent",
		},
		{
			name: "transient failure",
			err: &service.SyncError{Class: service.ClassTransient, Op: "pull", TypeID: "notes",
				Err: adapter.ErrNetwork},
			wantStatus: http.StatusServiceUnavailable,
			wantClass:  "transient",
		},
		{
			name: "zone missing",
			err: &service.SyncError{Class: service.ClassPrecondition, Op: "pull", TypeID: "notes",
				Err: adapter.ErrZoneNotFound},
			wantStatus: http.StatusFailedDependency,
			wantClass:  "precondition",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			d.engine.EXPECT().Pull(gomock.Any()).Return(tt.err)

			rec := httptest.NewRecorder()
			d.handler.pull(rec, httptest.NewRequest(http.MethodPost, "/api/sync/pull", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.err == nil {
				assert.Empty(t, rec.Body.String())
				return
			}
			var body errorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.err.Error(), body.Error)
			assert.Equal(t, tt.wantClass, body.Class)
		})
	}
}

func TestPush_EmptyBodyPushesEverything(t *testing.T) {
	bodies := []string{"", `{}`, `{"objects":[]}`}

	for _, body := range bodies {
		t.Run("body "+body, func(t *testing.T) {
			d := newTestDeps(t)
			d.engine.EXPECT().PushAll(gomock.Any()).Return(nil)

			rec := httptest.NewRecorder()
			d.handler.push(rec, httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(body)))

			assert.Equal(t, http.StatusNoContent, rec.Code)
		})
	}
}

func TestPush_SelectedObjects(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().
		Push(gomock.Any(), models.ObjectRef{TypeID: "notes", ID: "a"}, models.ObjectRef{TypeID: "tags", ID: "b"}).
		Return(nil)

	body := `{"objects":[{"type_id":"notes","id":"a"},{"type_id":"tags","id":"b"}]}`
	rec := httptest.NewRecorder()
	d.handler.push(rec, httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(body)))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPush_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "malformed json", body: `{"objects":`, want: ErrInvalidPushRequest.Error()},
		{name: "wrong shape", body: `{"objects":"notes"}`, want: ErrInvalidPushRequest.Error()},
		{name: "missing id", body: `{"objects":[{"type_id":"notes"}]}`, want: ErrInvalidObjectRef.Error()},
		{name: "missing type", body: `{"objects":[{"id":"a"}]}`, want: ErrInvalidObjectRef.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)

			rec := httptest.NewRecorder()
			d.handler.push(rec, httptest.NewRequest(http.MethodPost, "/api/sync/push", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestPush_EngineErrors(t *testing.T) {
	d := newTestDeps(t)
	err := errors.Join(
		&service.SyncError{Class: service.ClassPermanent, Op: "push", TypeID: "notes", Err: service.ErrRecordRejected},
		service.ErrTypeNotRegistered,
	)
	d.engine.EXPECT().Push(gomock.Any(), models.ObjectRef{TypeID: "ghost", ID: "a"}).Return(err)

	rec := httptest.NewRecorder()
	d.handler.push(rec, httptest.NewRequest(http.MethodPost, "/api/sync/push",
		strings.NewReader(`{"objects":[{"type_id":"ghost","id":"a"}]}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestZoneStates(t *testing.T) {
	d := newTestDeps(t)
	d.engine.EXPECT().ZoneStates().Return(map[string]models.PullState{
		"notes": models.PullIdle,
		"tags":  models.PullFetching,
	})

	rec := httptest.NewRecorder()
	d.handler.zoneStates(rec, httptest.NewRequest(http.MethodGet, "/api/sync/zones", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"notes":"idle","tags":"fetching"}`, rec.Body.String())
}
