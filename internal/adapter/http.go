// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-cloud-sync/internal/config"
	"github.com/MKhiriev/go-cloud-sync/internal/logger"
	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/models"
	"github.com/go-resty/resty/v2"
)

// Wire bodies of the reference remote record store API.
type (
	accountResponse struct {
		Status models.AccountStatus `json:"status"`
	}

	createZoneRequest struct {
		ZoneID string `json:"zone_id"`
	}

	createSubscriptionRequest struct {
		SubscriptionID string               `json:"subscription_id"`
		Scope          models.DatabaseScope `json:"scope"`
	}

	fetchChangesRequest struct {
		Token []byte `json:"token,omitempty"`
		Limit int    `json:"limit,omitempty"`
	}

	modifyRecordsResponse struct {
		Outcomes []models.WriteOutcome `json:"outcomes"`
	}
)

type httpTransport struct {
	client *utils.HTTPClient
	token  string

	logger *logger.Logger
}

// NewHTTPTransport constructs an HTTP/REST implementation of
// [RemoteTransport]. It normalises and validates the base URL from
// cfg.HTTPAddress and configures the underlying HTTP client with the resolved
// base URL, request timeout and bearer token.
//
// Returns an error if cfg.HTTPAddress is empty or cannot be parsed as a valid
// URL.
func NewHTTPTransport(cfg config.SyncAdapter, logger *logger.Logger) (RemoteTransport, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, cfg.RequestTimeout)

	return &httpTransport{
		client: client,
		token:  strings.TrimSpace(cfg.Token),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// AccountStatus implements [RemoteTransport] with GET /account.
func (h *httpTransport) AccountStatus(ctx context.Context) (models.AccountStatus, error) {
	var out accountResponse
	if err := h.do(ctx, "account status", h.request(ctx).SetResult(&out), resty.MethodGet, "/account"); err != nil {
		return models.AccountUndetermined, err
	}
	if out.Status == "" {
		return models.AccountUndetermined, nil
	}
	return out.Status, nil
}

// EnsureZoneExists implements [RemoteTransport] with POST /zones. A 409
// answer is reported as [ErrZoneAlreadyExists].
func (h *httpTransport) EnsureZoneExists(ctx context.Context, zoneID string) error {
	err := h.do(ctx, "create zone", h.request(ctx).SetBody(createZoneRequest{ZoneID: zoneID}), resty.MethodPost, "/zones")
	if errors.Is(err, ErrAlreadyExists) {
		return fmt.Errorf("%w: %s", ErrZoneAlreadyExists, zoneID)
	}
	return err
}

// EnsureSubscriptionExists implements [RemoteTransport] with
// POST /subscriptions. A 409 answer is reported as
// [ErrSubscriptionAlreadyExists].
func (h *httpTransport) EnsureSubscriptionExists(ctx context.Context, subscriptionID string, scope models.DatabaseScope) error {
	body := createSubscriptionRequest{SubscriptionID: subscriptionID, Scope: scope}
	err := h.do(ctx, "create subscription", h.request(ctx).SetBody(body), resty.MethodPost, "/subscriptions")
	if errors.Is(err, ErrAlreadyExists) {
		return fmt.Errorf("%w: %s", ErrSubscriptionAlreadyExists, subscriptionID)
	}
	return err
}

// FetchDatabaseChanges implements [RemoteTransport] with
// POST /changes/database.
func (h *httpTransport) FetchDatabaseChanges(ctx context.Context, token []byte) (models.DatabaseChangeSet, error) {
	var out models.DatabaseChangeSet
	req := h.request(ctx).SetBody(fetchChangesRequest{Token: token}).SetResult(&out)
	if err := h.do(ctx, "fetch database changes", req, resty.MethodPost, "/changes/database"); err != nil {
		return models.DatabaseChangeSet{}, err
	}
	return out, nil
}

// FetchZoneChanges implements [RemoteTransport] with
// POST /zones/{zone}/changes.
func (h *httpTransport) FetchZoneChanges(ctx context.Context, zoneID string, token []byte, limit int) (models.ZoneChangeSet, error) {
	var out models.ZoneChangeSet
	req := h.request(ctx).
		SetPathParam("zone", zoneID).
		SetBody(fetchChangesRequest{Token: token, Limit: limit}).
		SetResult(&out)
	if err := h.do(ctx, "fetch zone changes", req, resty.MethodPost, "/zones/{zone}/changes"); err != nil {
		return models.ZoneChangeSet{}, err
	}
	return out, nil
}

// WriteRecords implements [RemoteTransport] with
// POST /zones/{zone}/records:modify. The remote answers 200 with one outcome
// per record even when some of them failed.
func (h *httpTransport) WriteRecords(ctx context.Context, batch models.WriteBatch) ([]models.WriteOutcome, error) {
	var out modifyRecordsResponse
	req := h.request(ctx).
		SetPathParam("zone", batch.ZoneID).
		SetBody(batch).
		SetResult(&out)
	if err := h.do(ctx, "write records", req, resty.MethodPost, "/zones/{zone}/records:modify"); err != nil {
		return nil, err
	}
	return out.Outcomes, nil
}

// ResumeLongLivedOperations implements [RemoteTransport] with
// POST /operations/resume.
func (h *httpTransport) ResumeLongLivedOperations(ctx context.Context) error {
	return h.do(ctx, "resume operations", h.request(ctx), resty.MethodPost, "/operations/resume")
}

func (h *httpTransport) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if h.token != "" {
		req.SetAuthToken(h.token)
	}
	return req
}

func (h *httpTransport) do(ctx context.Context, op string, req *resty.Request, method, path string) error {
	log := logger.FromContextOr(ctx, h.logger)

	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s request: %w", op, ctxErr)
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return fmt.Errorf("%s decode response: %w", op, err)
		}
		log.Warn().Err(err).
			Str("func", "httpTransport.do").
			Str("op", op).
			Msg("remote request failed")
		return fmt.Errorf("%w: %s request: %w", ErrNetwork, op, err)
	}

	if err = mapHTTPError(resp); err != nil {
		log.Debug().
			Str("func", "httpTransport.do").
			Str("op", op).
			Int("status", resp.StatusCode()).
			Msg("remote returned error")
		return err
	}

	return nil
}
