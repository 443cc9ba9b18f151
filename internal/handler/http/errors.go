// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidPushRequest is answered when the push body is not the
	// expected JSON document.
	ErrInvalidPushRequest = errors.New("invalid push request body")

	// ErrInvalidObjectRef is answered when a listed object lacks its type
	// or id.
	ErrInvalidObjectRef = errors.New("object reference needs type_id and id")
)
