// Package store keeps the shopper device's local view of its orders. The
// event channel and the reconciliation poll both feed it; merging is by
// order id and aggregate version, so a stale snapshot can never clobber
// newer local state.
package store

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/order"
	"github.com/mnpatel007/delhiveryway-shopper/internal/wire"
)

// Store is a versioned in-memory order collection. Safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	orders map[string]wire.OrderSnapshot

	// pendingRevision marks orders whose revision was proposed locally but
	// not yet echoed back by the server. Reconciliation must not roll these
	// back to the pre-revision state.
	pendingRevision map[string]bool
}

// New creates an empty store.
func New() *Store {
	return &Store{
		orders:          make(map[string]wire.OrderSnapshot),
		pendingRevision: make(map[string]bool),
	}
}

// Upsert merges one snapshot into the store. Returns true when the stored
// state changed. A snapshot older than what is already held is ignored, and
// a same-version snapshot cannot roll back a locally pending revision.
func (s *Store) Upsert(snapshot wire.OrderSnapshot) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.merge(snapshot)
}

func (s *Store) merge(snapshot wire.OrderSnapshot) bool {
	existing, ok := s.orders[snapshot.ID]
	if ok && snapshot.Version < existing.Version {
		return false
	}

	if ok && s.pendingRevision[snapshot.ID] {
		if snapshot.Status != string(order.CustomerReviewingRevision) &&
			snapshot.Version <= existing.Version {
			// The server has not seen our revision yet; keep the local view.
			return false
		}
		// The server caught up (or moved past the review); the local
		// optimistic record is no longer authoritative.
		delete(s.pendingRevision, snapshot.ID)
	}

	s.orders[snapshot.ID] = snapshot
	return true
}

// MarkRevisionPending records a locally proposed revision: the order is
// shown in customer review with the proposed items until the server echoes
// the change back.
func (s *Store) MarkRevisionPending(orderID string, revision wire.RevisionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.orders[orderID]
	if !ok {
		return
	}

	snapshot.Status = string(order.CustomerReviewingRevision)
	snapshot.DisplayStatus = order.CustomerReviewingRevision.DisplayName()
	snapshot.Revision = &revision
	snapshot.Total = revision.ProposedTotal
	s.orders[orderID] = snapshot
	s.pendingRevision[orderID] = true
}

// Reconcile merges the server's full active set into the store and drops
// local orders the server no longer reports, except those carrying a
// locally pending revision the server has not echoed yet.
func (s *Store) Reconcile(snapshots []wire.OrderSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(snapshots))
	for _, snapshot := range snapshots {
		seen[snapshot.ID] = struct{}{}
		s.merge(snapshot)
	}

	for id := range s.orders {
		if _, ok := seen[id]; ok {
			continue
		}
		if s.pendingRevision[id] {
			continue
		}
		delete(s.orders, id)
	}
}

// ApplyEvent merges the order snapshot carried in an event payload, if any.
// Events without an order payload (or with a malformed one) leave the store
// untouched.
func (s *Store) ApplyEvent(event wire.Event) bool {
	snapshot, ok := snapshotFromPayload(event.Payload)
	if !ok {
		return false
	}
	return s.Upsert(snapshot)
}

// Get returns the stored snapshot for the given order id.
func (s *Store) Get(orderID string) (wire.OrderSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.orders[orderID]
	return snapshot, ok
}

// All returns every stored snapshot ordered by order number.
func (s *Store) All() []wire.OrderSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshots := make([]wire.OrderSnapshot, 0, len(s.orders))
	for _, snapshot := range s.orders {
		snapshots = append(snapshots, snapshot)
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].OrderNumber < snapshots[j].OrderNumber
	})
	return snapshots
}

// Len returns the number of stored orders.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}

// snapshotFromPayload extracts the "order" snapshot from an event payload.
// Payloads travel as generic JSON objects, so the snapshot is recovered by
// a marshal round trip.
func snapshotFromPayload(payload map[string]any) (wire.OrderSnapshot, bool) {
	raw, ok := payload["order"]
	if !ok {
		return wire.OrderSnapshot{}, false
	}

	encoded, err := json.Marshal(raw)
	if err != nil {
		return wire.OrderSnapshot{}, false
	}

	var snapshot wire.OrderSnapshot
	if err := json.Unmarshal(encoded, &snapshot); err != nil || snapshot.ID == "" {
		return wire.OrderSnapshot{}, false
	}
	return snapshot, true
}
