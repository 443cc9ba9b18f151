// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AccountStatus is the availability of the remote account the engine syncs
// against.
type AccountStatus string

const (
	AccountAvailable    AccountStatus = "available"
	AccountNoAccount    AccountStatus = "no_account"
	AccountRestricted   AccountStatus = "restricted"
	AccountUndetermined AccountStatus = "undetermined"
)

// DatabaseScope selects the remote database an engine synchronizes with.
type DatabaseScope string

const (
	ScopePrivate DatabaseScope = "private"
	ScopePublic  DatabaseScope = "public"
	ScopeShared  DatabaseScope = "shared"
)

// SubscriptionID returns the fixed, well-known identifier of the standing
// change subscription for the scope. Reusing the same identifier keeps
// repeated setups from creating duplicate subscriptions.
func (s DatabaseScope) SubscriptionID() string {
	return string(s) + "-changes"
}

// PullState is the position of a zone in the pull state machine.
type PullState string

const (
	PullIdle     PullState = "idle"
	PullFetching PullState = "fetching"
	PullApplying PullState = "applying"
	PullExpired  PullState = "expired"
)
