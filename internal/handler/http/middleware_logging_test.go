// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

// makeRequest attaches a buffer-backed logger to the request context the way
// withTraceID does.
func makeRequest(method, path string, buf *bytes.Buffer) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	l := zerolog.New(buf)
	return req.WithContext(l.WithContext(req.Context()))
}

func TestWithLogging_TableTest(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		handler http.HandlerFunc
		want    []string
	}{
		{
			name:   "accepted notification",
			method: http.MethodPost,
			path:   "/api/notifications/changed",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			want: []string{`"method":"POST"`, `"uri":"/api/notifications/changed"`, `"status":202`, `"size":0`},
		},
		{
			name:   "json body",
			method: http.MethodGet,
			path:   "/api/sync/zones",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"notes":"idle"}`))
			},
			want: []string{`"method":"GET"`, `"status":200`, `"size":16`, `"duration":`},
		},
		{
			name:    "no status written",
			method:  http.MethodPost,
			path:    "/api/sync/pull",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			want:    []string{`"status":200`},
		},
		{
			name:   "error status",
			method: http.MethodPost,
			path:   "/api/sync/push",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "down", http.StatusServiceUnavailable)
			},
			want: []string{`"status":503`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rec := httptest.NewRecorder()

			newTestHandler().withLogging(tt.handler).ServeHTTP(rec, makeRequest(tt.method, tt.path, &buf))

			for _, s := range tt.want {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestWithLogging_PanicNotSuppressed(t *testing.T) {
	var buf bytes.Buffer
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	assert.Panics(t, func() {
		newTestHandler().withLogging(next).ServeHTTP(httptest.NewRecorder(), makeRequest(http.MethodGet, "/", &buf))
	})
}
