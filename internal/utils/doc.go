// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils holds small helpers shared by the transport and webhook
// layers: the resty client wrapper, JSON responses and change tag
// generation.
package utils
