// Package verification provides VerificationProvider adapters: an in-memory
// store for development and tests, and a PostgreSQL-backed store.
package verification

import (
	"context"
	"strings"
	"sync"

	"cleargate/internal/compliance"
)

type record struct {
	profile compliance.VerificationProfile
	active  bool
}

// MemoryStore is a seedable in-memory verification provider. Safe for
// concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]record
}

// NewMemoryStore builds an empty in-memory provider.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]record)}
}

// Put registers or replaces an actor's verification state.
func (s *MemoryStore) Put(actor string, profile compliance.VerificationProfile, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[normalize(actor)] = record{profile: profile, active: active}
}

// Remove deletes an actor's verification state.
func (s *MemoryStore) Remove(actor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, normalize(actor))
}

// Resolve returns the actor's profile, or nil when no record exists.
func (s *MemoryStore) Resolve(_ context.Context, actor string) (*compliance.VerificationProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[normalize(actor)]
	if !ok {
		return nil, nil
	}
	profile := rec.profile
	return &profile, nil
}

// HasActiveIdentity reports whether the actor has an active identity record.
func (s *MemoryStore) HasActiveIdentity(_ context.Context, actor string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[normalize(actor)]
	return ok && rec.active, nil
}

func normalize(actor string) string {
	return strings.ToLower(strings.TrimSpace(actor))
}
