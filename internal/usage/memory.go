// Package usage provides UsageHistoryProvider adapters: an in-memory rolling
// ledger and a Redis-backed windowed counter store. Both also record
// completed transfers so callers can feed usage back after settlement.
package usage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"cleargate/internal/compliance"
)

// Clock abstracts time.Now for deterministic window tests.
type Clock func() time.Time

const retention = 30 * 24 * time.Hour

type entry struct {
	at  time.Time
	usd decimal.Decimal
}

// MemoryStore keeps a per-actor ledger of timestamped transfers and computes
// rolling windows at read time. Entries older than the month window are
// pruned on write.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]entry
	clock   Clock
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithClock sets the clock function for testability.
func WithClock(clock Clock) MemoryStoreOption {
	return func(s *MemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewMemoryStore builds an empty in-memory usage ledger.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string][]entry),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record accounts one completed transfer for the actor.
func (s *MemoryStore) Record(_ context.Context, actor string, amountUSD decimal.Decimal) error {
	now := s.clock()
	key := normalize(actor)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.entries[key][:0]
	for _, e := range s.entries[key] {
		if now.Sub(e.at) < retention {
			kept = append(kept, e)
		}
	}
	s.entries[key] = append(kept, entry{at: now, usd: amountUSD})
	return nil
}

// Resolve returns the actor's rolling usage, zero-filled when no history.
func (s *MemoryStore) Resolve(_ context.Context, actor string) (compliance.UsageSnapshot, error) {
	now := s.clock()

	s.mu.Lock()
	defer s.mu.Unlock()

	var snap compliance.UsageSnapshot
	snap.Hour.VolumeUSD = decimal.Zero
	snap.Day.VolumeUSD = decimal.Zero
	snap.Week.VolumeUSD = decimal.Zero
	snap.Month.VolumeUSD = decimal.Zero

	for _, e := range s.entries[normalize(actor)] {
		age := now.Sub(e.at)
		if age < 0 || age >= retention {
			continue
		}
		snap.Month.Count++
		snap.Month.VolumeUSD = snap.Month.VolumeUSD.Add(e.usd)
		if age < 7*24*time.Hour {
			snap.Week.Count++
			snap.Week.VolumeUSD = snap.Week.VolumeUSD.Add(e.usd)
		}
		if age < 24*time.Hour {
			snap.Day.Count++
			snap.Day.VolumeUSD = snap.Day.VolumeUSD.Add(e.usd)
		}
		if age < time.Hour {
			snap.Hour.Count++
			snap.Hour.VolumeUSD = snap.Hour.VolumeUSD.Add(e.usd)
		}
	}
	return snap, nil
}

func normalize(actor string) string {
	return strings.ToLower(strings.TrimSpace(actor))
}
