// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Reasons the reference remote puts in the X-Error-Reason header to tell
// apart errors that share an HTTP status.
const (
	reasonZoneNotFound         = "zone_not_found"
	reasonSubscriptionNotFound = "subscription_not_found"
	reasonZoneBusy             = "zone_busy"
	reasonQuotaExceeded        = "quota_exceeded"
	reasonTokenExpired         = "change_token_expired"

	errorReasonHeader = "X-Error-Reason"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	reason := resp.Header().Get(errorReasonHeader)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		if reason == reasonTokenExpired {
			return fmt.Errorf("%w: %s", ErrChangeTokenExpired, body)
		}
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		if reason == reasonQuotaExceeded {
			return fmt.Errorf("%w: %s", ErrQuotaExceeded, body)
		}
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		switch reason {
		case reasonZoneNotFound:
			return fmt.Errorf("%w: %s", ErrZoneNotFound, body)
		case reasonSubscriptionNotFound:
			return fmt.Errorf("%w: %s", ErrSubscriptionNotFound, body)
		}
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusGone:
		return fmt.Errorf("%w: %s", ErrChangeTokenExpired, body)
	case http.StatusConflict:
		if reason == reasonZoneBusy {
			return &RetryAfterError{Err: fmt.Errorf("%w: %s", ErrZoneBusy, body), After: parseRetryAfter(resp)}
		}
		return fmt.Errorf("%w: %s", ErrAlreadyExists, body)
	case http.StatusTooManyRequests:
		return &RetryAfterError{Err: fmt.Errorf("%w: %s", ErrRateLimited, body), After: parseRetryAfter(resp)}
	case http.StatusServiceUnavailable:
		return &RetryAfterError{Err: fmt.Errorf("%w: %s", ErrServiceUnavailable, body), After: parseRetryAfter(resp)}
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// parseRetryAfter reads the Retry-After header in its delay-seconds form.
// The HTTP-date form is accepted as well.
func parseRetryAfter(resp *resty.Response) time.Duration {
	value := strings.TrimSpace(resp.Header().Get("Retry-After"))
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}
