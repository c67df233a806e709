// Package sanctions provides SanctionsLookup adapters: a static in-process
// denylist, a remote screening client, and a circuit-breaker wrapper that
// keeps the screening rule fail-closed when the remote is unhealthy.
package sanctions

import (
	"context"
	"strings"
)

// StaticLookup is a case-normalized in-process denylist, typically loaded
// from the policy file.
type StaticLookup struct {
	set map[string]struct{}
}

// NewStatic builds a static lookup from the given addresses.
func NewStatic(addrs ...string) *StaticLookup {
	set := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return &StaticLookup{set: set}
}

// NewStaticFromSet wraps an already-normalized address set.
func NewStaticFromSet(set map[string]struct{}) *StaticLookup {
	if set == nil {
		set = map[string]struct{}{}
	}
	return &StaticLookup{set: set}
}

// Contains reports denylist membership, case-insensitively.
func (l *StaticLookup) Contains(_ context.Context, address string) (bool, error) {
	_, ok := l.set[strings.ToLower(strings.TrimSpace(address))]
	return ok, nil
}
