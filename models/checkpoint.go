// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Keys of the persisted checkpoint namespace.
const (
	DatabaseTokenKey      = "databaseToken"
	SubscriptionExistsKey = "subscriptionExists"
)

// ZoneTokenKey returns the checkpoint key of the change token of zoneID.
func ZoneTokenKey(zoneID string) string {
	return "zoneToken:" + zoneID
}

// ZoneExistsKey returns the checkpoint key of the zone-exists flag of the
// registered type typeID.
func ZoneExistsKey(typeID string) string {
	return "zoneExists:" + typeID
}
