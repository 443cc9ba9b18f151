// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNewHandlers_WithAddress(t *testing.T) {
	ctrl := gomock.NewController(t)

	h, err := NewHandlers(mock.NewMockSyncEngine(ctrl), mock.NewMockAppInfoService(ctrl),
		config.SyncServer{HTTPAddress: ":8080"}, logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP)
}

func TestNewHandlers_NoAddress(t *testing.T) {
	ctrl := gomock.NewController(t)

	h, err := NewHandlers(mock.NewMockSyncEngine(ctrl), mock.NewMockAppInfoService(ctrl),
		config.SyncServer{}, logger.Nop())

	assert.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}
