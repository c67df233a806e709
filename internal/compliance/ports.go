package compliance

import "context"

// Provider ports. The engine depends on these but never implements them, so
// real network or storage adapters can be substituted without touching rule
// logic. Adapters live under internal/verification, internal/usage,
// internal/sanctions, and internal/chains.

// VerificationProvider resolves an actor's KYC state.
type VerificationProvider interface {
	// Resolve returns the actor's verification profile, or nil (with no
	// error) when the actor has no verification record. Errors are reserved
	// for genuine transport failure.
	Resolve(ctx context.Context, actor string) (*VerificationProfile, error)

	// HasActiveIdentity reports whether the actor has any verified identity
	// record at all, distinct from the tier on the profile.
	HasActiveIdentity(ctx context.Context, actor string) (bool, error)
}

// UsageHistoryProvider resolves an actor's rolling usage counters. It always
// returns a snapshot, zero-filled when the actor has no history.
type UsageHistoryProvider interface {
	Resolve(ctx context.Context, actor string) (UsageSnapshot, error)
}

// ChainNameResolver maps a chain identifier to a display name. Display only:
// absence degrades message text, never logic.
type ChainNameResolver interface {
	Resolve(chainID int64) (string, bool)
}

// SanctionsLookup is a case-insensitive denylist membership test. Errors must
// be surfaced distinctly from "not listed" so the screening rule can fail
// closed.
type SanctionsLookup interface {
	Contains(ctx context.Context, address string) (bool, error)
}
