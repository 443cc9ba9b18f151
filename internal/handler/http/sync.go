// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/models"
)

type pushRequest struct {
	Objects []models.ObjectRef `json:"objects"`
}

type errorResponse struct {
	Error string `json:"error"`
	Class string `json:"class,omitempty"`
}

func (h *Handler) pull(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.engine.Pull(r.Context()); err != nil {
		log.Err(err).Str("func", "*Handler.pull").Msg("pull failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// push writes the listed objects, or everything pending when the body is
// empty or lists nothing.
func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Err(err).Str("func", "*Handler.push").Msg("invalid push request")
		http.Error(w, ErrInvalidPushRequest.Error(), http.StatusBadRequest)
		return
	}
	for _, ref := range req.Objects {
		if ref.TypeID == "" || ref.ID == "" {
			http.Error(w, ErrInvalidObjectRef.Error(), http.StatusBadRequest)
			return
		}
	}

	var err error
	if len(req.Objects) == 0 {
		err = h.engine.PushAll(ctx)
	} else {
		err = h.engine.Push(ctx, req.Objects...)
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.push").Int("count", len(req.Objects)).Msg("push failed")
		h.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) zoneStates(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.engine.ZoneStates(), http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.zoneStates").Msg("error writing response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status, class := statusFromError(err)
	utils.WriteJSON(w, errorResponse{Error: err.Error(), Class: class}, status)
}
