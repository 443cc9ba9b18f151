// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name   string
		data   any
		status int
		want   string
	}{
		{name: "zone states", data: map[string]string{"notes": "idle"}, status: http.StatusOK, want: `{"notes":"idle"}`},
		{name: "error body", data: struct {
			Error string `json:"error"`
		}{"boom"}, status: http.StatusServiceUnavailable, want: `{"error":"boom"}`},
		{name: "nil", data: nil, status: http.StatusOK, want: `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			n, err := WriteJSON(rec, tt.data, tt.status)

			require.NoError(t, err)
			assert.Equal(t, len(tt.want), n)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.want, rec.Body.String())
		})
	}
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rec := httptest.NewRecorder()

	n, err := WriteJSON(rec, make(chan int), http.StatusOK)

	require.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestUUIDGenerator_Unique(t *testing.T) {
	g := NewUUIDGenerator()
	seen := make(map[string]struct{})

	for range 100 {
		seen[g.Generate()] = struct{}{}
	}

	assert.Len(t, seen, 100)
}
