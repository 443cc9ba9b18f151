// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MKhiriev/go-cloud-sync/internal/utils"
	"github.com/MKhiriev/go-cloud-sync/models"
)

// Operation names passed to a [FaultFunc].
const (
	OpAccountStatus      = "AccountStatus"
	OpEnsureZone         = "EnsureZoneExists"
	OpEnsureSubscription = "EnsureSubscriptionExists"
	OpFetchDatabase      = "FetchDatabaseChanges"
	OpFetchZone          = "FetchZoneChanges"
	OpWriteRecords       = "WriteRecords"
	OpResume             = "ResumeLongLivedOperations"
)

// FaultFunc is consulted at the start of every [MemoryRemote] call. call is
// the 1-based count of calls of op so far. A non-nil result fails the call.
type FaultFunc func(op string, call int) error

// MemoryRemote is an in-process remote record store. It keeps zones, change
// tags and compacted change feeds in memory and implements [RemoteTransport].
type MemoryRemote struct {
	mu sync.Mutex

	account       models.AccountStatus
	maxBatchSize  int
	implicitZones bool
	zones         map[string]*memoryZone
	subscriptions map[string]models.DatabaseScope

	// every zone incarnation gets its own token epoch
	zoneEpoch int64

	// database feed of zone membership
	dbEpoch int64
	dbSeq   int64
	dbLog   []zoneEvent

	calls          map[string]int
	fault          FaultFunc
	writeStatuses  map[string][]models.WriteStatus
	retryAfterHint int64
	batchSizes     []int

	tags *utils.UUIDGenerator
}

type memoryZone struct {
	id      string
	epoch   int64
	seq     int64
	records map[string]models.Record
	log     []recordEvent
}

type recordEvent struct {
	seq     int64
	id      string
	deleted bool
}

type zoneEvent struct {
	seq     int64
	zoneID  string
	deleted bool
}

// MemoryOption configures a [MemoryRemote].
type MemoryOption func(*MemoryRemote)

// WithMaxBatchSize rejects write batches larger than n with [ErrBadRequest].
func WithMaxBatchSize(n int) MemoryOption {
	return func(m *MemoryRemote) {
		m.maxBatchSize = n
	}
}

// WithAccountStatus sets the status reported by AccountStatus.
func WithAccountStatus(status models.AccountStatus) MemoryOption {
	return func(m *MemoryRemote) {
		m.account = status
	}
}

// WithImplicitZones creates zones on first write or fetch, the way the
// default zone of a public database behaves.
func WithImplicitZones() MemoryOption {
	return func(m *MemoryRemote) {
		m.implicitZones = true
	}
}

// NewMemoryRemote returns an empty remote with an available account.
func NewMemoryRemote(opts ...MemoryOption) *MemoryRemote {
	m := &MemoryRemote{
		account:       models.AccountAvailable,
		zones:         make(map[string]*memoryZone),
		subscriptions: make(map[string]models.DatabaseScope),
		calls:         make(map[string]int),
		writeStatuses: make(map[string][]models.WriteStatus),
		tags:          utils.NewUUIDGenerator(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetAccountStatus changes the status reported by AccountStatus.
func (m *MemoryRemote) SetAccountStatus(status models.AccountStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.account = status
}

// SetFault installs fn as the fault hook. A nil fn removes it.
func (m *MemoryRemote) SetFault(fn FaultFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fault = fn
}

// InjectWriteStatus makes the next writes of recordID answer with statuses,
// one per attempt, before the record is processed normally again.
func (m *MemoryRemote) InjectWriteStatus(recordID string, statuses ...models.WriteStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeStatuses[recordID] = append(m.writeStatuses[recordID], statuses...)
}

// SetRetryAfterHint sets the delay, in milliseconds, attached to injected
// rate limited and zone busy outcomes.
func (m *MemoryRemote) SetRetryAfterHint(ms int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retryAfterHint = ms
}

// Calls returns how many times op was called.
func (m *MemoryRemote) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// BatchSizes returns the size of every accepted WriteRecords call in order.
func (m *MemoryRemote) BatchSizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.batchSizes...)
}

// HasSubscription reports whether the subscription id is registered.
func (m *MemoryRemote) HasSubscription(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.subscriptions[id]
	return ok
}

// Records returns the records of zoneID ordered by id.
func (m *MemoryRemote) Records(zoneID string) []models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	zone, ok := m.zones[zoneID]
	if !ok {
		return nil
	}
	out := make([]models.Record, 0, len(zone.records))
	for _, r := range zone.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// PutRecord writes a record as another device would, bypassing conflict
// checks. It returns the stored copy.
func (m *MemoryRemote) PutRecord(zoneID string, record models.Record) models.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	zone := m.zoneLocked(zoneID)
	return m.storeLocked(zone, record)
}

// RemoveRecord deletes a record as another device would.
func (m *MemoryRemote) RemoveRecord(zoneID, recordID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if zone, ok := m.zones[zoneID]; ok {
		m.deleteLocked(zone, recordID)
	}
}

// DeleteZone removes the zone and reports it on the database feed.
func (m *MemoryRemote) DeleteZone(zoneID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.zones[zoneID]; !ok {
		return
	}
	delete(m.zones, zoneID)
	m.appendZoneEventLocked(zoneID, true)
}

// ExpireTokens invalidates every change token handed out for zoneID. An
// empty zoneID expires database tokens instead. The feeds stay compacted, so
// a fetch without token still returns the whole state.
func (m *MemoryRemote) ExpireTokens(zoneID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if zoneID == "" {
		m.dbEpoch++
		return
	}
	if zone, ok := m.zones[zoneID]; ok {
		m.zoneEpoch++
		zone.epoch = m.zoneEpoch
	}
}

func (m *MemoryRemote) enter(op string) error {
	m.mu.Lock()
	m.calls[op]++
	call, fault := m.calls[op], m.fault
	m.mu.Unlock()

	if fault != nil {
		return fault(op, call)
	}
	return nil
}

func (m *MemoryRemote) AccountStatus(ctx context.Context) (models.AccountStatus, error) {
	if err := m.enter(OpAccountStatus); err != nil {
		return models.AccountUndetermined, err
	}
	if err := ctx.Err(); err != nil {
		return models.AccountUndetermined, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.account, nil
}

func (m *MemoryRemote) EnsureZoneExists(ctx context.Context, zoneID string) error {
	if err := m.enter(OpEnsureZone); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.zones[zoneID]; ok {
		return fmt.Errorf("%w: %s", ErrZoneAlreadyExists, zoneID)
	}
	m.zoneLocked(zoneID)
	return nil
}

func (m *MemoryRemote) EnsureSubscriptionExists(ctx context.Context, subscriptionID string, scope models.DatabaseScope) error {
	if err := m.enter(OpEnsureSubscription); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.subscriptions[subscriptionID]; ok {
		return fmt.Errorf("%w: %s", ErrSubscriptionAlreadyExists, subscriptionID)
	}
	m.subscriptions[subscriptionID] = scope
	return nil
}

func (m *MemoryRemote) FetchDatabaseChanges(ctx context.Context, token []byte) (models.DatabaseChangeSet, error) {
	if err := m.enter(OpFetchDatabase); err != nil {
		return models.DatabaseChangeSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.DatabaseChangeSet{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	since, err := parseToken(token, m.dbEpoch)
	if err != nil {
		return models.DatabaseChangeSet{}, err
	}

	out := models.DatabaseChangeSet{Token: formatToken(m.dbEpoch, m.dbSeq)}
	for _, ev := range m.dbLog {
		if ev.seq <= since {
			continue
		}
		if ev.deleted {
			out.DeletedZones = append(out.DeletedZones, ev.zoneID)
		} else {
			out.ChangedZones = append(out.ChangedZones, ev.zoneID)
		}
	}
	return out, nil
}

func (m *MemoryRemote) FetchZoneChanges(ctx context.Context, zoneID string, token []byte, limit int) (models.ZoneChangeSet, error) {
	if err := m.enter(OpFetchZone); err != nil {
		return models.ZoneChangeSet{}, err
	}
	if err := ctx.Err(); err != nil {
		return models.ZoneChangeSet{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	zone, ok := m.zones[zoneID]
	if !ok && m.implicitZones {
		zone, ok = m.zoneLocked(zoneID), true
	}
	if !ok {
		return models.ZoneChangeSet{}, fmt.Errorf("%w: %s", ErrZoneNotFound, zoneID)
	}
	since, err := parseToken(token, zone.epoch)
	if err != nil {
		return models.ZoneChangeSet{}, err
	}

	out := models.ZoneChangeSet{}
	last := since
	for _, ev := range zone.log {
		if ev.seq <= since {
			continue
		}
		if limit > 0 && len(out.Changes) == limit {
			out.HasMore = true
			break
		}
		last = ev.seq
		if ev.deleted {
			out.Changes = append(out.Changes, models.Change{Kind: models.ChangeRecordDeleted, RecordID: ev.id})
			continue
		}
		record := zone.records[ev.id]
		out.Changes = append(out.Changes, models.Change{Kind: models.ChangeRecordChanged, RecordID: ev.id, Record: &record})
	}
	if !out.HasMore {
		last = zone.seq
	}
	out.Token = formatToken(zone.epoch, last)
	return out, nil
}

func (m *MemoryRemote) WriteRecords(ctx context.Context, batch models.WriteBatch) ([]models.WriteOutcome, error) {
	if err := m.enter(OpWriteRecords); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxBatchSize > 0 && batch.Len() > m.maxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit %d", ErrBadRequest, batch.Len(), m.maxBatchSize)
	}
	m.batchSizes = append(m.batchSizes, batch.Len())

	zone, ok := m.zones[batch.ZoneID]
	if !ok && m.implicitZones {
		zone, ok = m.zoneLocked(batch.ZoneID), true
	}
	outcomes := make([]models.WriteOutcome, 0, batch.Len())

	for _, record := range batch.Upserts {
		if injected, hit := m.injectedLocked(record.ID); hit {
			outcomes = append(outcomes, injected)
			continue
		}
		if !ok {
			outcomes = append(outcomes, models.WriteOutcome{RecordID: record.ID, Status: models.WriteInvalidZone})
			continue
		}

		current, exists := zone.records[record.ID]
		if exists && current.ChangeTag != record.ChangeTag {
			server := current
			outcomes = append(outcomes, models.WriteOutcome{RecordID: record.ID, Status: models.WriteConflict, ServerRecord: &server})
			continue
		}
		if !exists && record.ChangeTag != "" {
			// the record was deleted remotely after this device saw it
			outcomes = append(outcomes, models.WriteOutcome{RecordID: record.ID, Status: models.WriteNotFound})
			continue
		}

		stored := m.storeLocked(zone, record)
		outcomes = append(outcomes, models.WriteOutcome{RecordID: record.ID, Status: models.WriteSuccess, ChangeTag: stored.ChangeTag})
	}

	for _, id := range batch.Deletes {
		if injected, hit := m.injectedLocked(id); hit {
			outcomes = append(outcomes, injected)
			continue
		}
		if !ok {
			outcomes = append(outcomes, models.WriteOutcome{RecordID: id, Status: models.WriteInvalidZone})
			continue
		}
		if _, exists := zone.records[id]; !exists {
			outcomes = append(outcomes, models.WriteOutcome{RecordID: id, Status: models.WriteNotFound})
			continue
		}
		m.deleteLocked(zone, id)
		outcomes = append(outcomes, models.WriteOutcome{RecordID: id, Status: models.WriteSuccess})
	}

	return outcomes, nil
}

func (m *MemoryRemote) ResumeLongLivedOperations(ctx context.Context) error {
	if err := m.enter(OpResume); err != nil {
		return err
	}
	return ctx.Err()
}

func (m *MemoryRemote) injectedLocked(recordID string) (models.WriteOutcome, bool) {
	queue := m.writeStatuses[recordID]
	if len(queue) == 0 {
		return models.WriteOutcome{}, false
	}
	status := queue[0]
	if len(queue) == 1 {
		delete(m.writeStatuses, recordID)
	} else {
		m.writeStatuses[recordID] = queue[1:]
	}

	outcome := models.WriteOutcome{RecordID: recordID, Status: status}
	switch status {
	case models.WriteRateLimited, models.WriteZoneBusy:
		outcome.RetryAfter = time.Duration(m.retryAfterHint) * time.Millisecond
	case models.WriteFailed:
		outcome.Message = "injected failure"
	}
	return outcome, true
}

func (m *MemoryRemote) zoneLocked(zoneID string) *memoryZone {
	zone, ok := m.zones[zoneID]
	if !ok {
		m.zoneEpoch++
		zone = &memoryZone{id: zoneID, epoch: m.zoneEpoch, records: make(map[string]models.Record)}
		m.zones[zoneID] = zone
		m.appendZoneEventLocked(zoneID, false)
	}
	return zone
}

func (m *MemoryRemote) storeLocked(zone *memoryZone, record models.Record) models.Record {
	record.ChangeTag = m.tags.Generate()
	record.Deleted = false
	record.Pushed = true
	record.UpdatedAt = nil
	zone.records[record.ID] = record
	zone.appendLocked(record.ID, false)
	m.appendZoneEventLocked(zone.id, false)
	return record
}

func (m *MemoryRemote) deleteLocked(zone *memoryZone, recordID string) {
	if _, ok := zone.records[recordID]; !ok {
		return
	}
	delete(zone.records, recordID)
	zone.appendLocked(recordID, true)
	m.appendZoneEventLocked(zone.id, false)
}

// appendLocked keeps the feed compacted to the latest event per record.
func (z *memoryZone) appendLocked(recordID string, deleted bool) {
	z.seq++
	kept := z.log[:0]
	for _, ev := range z.log {
		if ev.id != recordID {
			kept = append(kept, ev)
		}
	}
	z.log = append(kept, recordEvent{seq: z.seq, id: recordID, deleted: deleted})
}

func (m *MemoryRemote) appendZoneEventLocked(zoneID string, deleted bool) {
	m.dbSeq++
	kept := m.dbLog[:0]
	for _, ev := range m.dbLog {
		if ev.zoneID != zoneID {
			kept = append(kept, ev)
		}
	}
	m.dbLog = append(kept, zoneEvent{seq: m.dbSeq, zoneID: zoneID, deleted: deleted})
}

func formatToken(epoch, seq int64) []byte {
	return []byte(strconv.FormatInt(epoch, 10) + ":" + strconv.FormatInt(seq, 10))
}

// parseToken returns the sequence a token covers. A nil token covers
// nothing; a token of an older epoch or a malformed one has expired.
func parseToken(token []byte, epoch int64) (int64, error) {
	if len(token) == 0 {
		return 0, nil
	}

	epochPart, seqPart, ok := strings.Cut(string(token), ":")
	if !ok {
		return 0, ErrChangeTokenExpired
	}
	tokenEpoch, err := strconv.ParseInt(epochPart, 10, 64)
	if err != nil || tokenEpoch != epoch {
		return 0, ErrChangeTokenExpired
	}
	seq, err := strconv.ParseInt(seqPart, 10, 64)
	if err != nil {
		return 0, ErrChangeTokenExpired
	}
	return seq, nil
}
