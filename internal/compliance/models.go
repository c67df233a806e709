// Package compliance gates transfer requests behind a multi-rule risk
// evaluation: verification tier, transfer limits, sanctions screening, chain
// restrictions, and velocity controls, combined into a single approval
// decision with an aggregate risk level and corrective actions.
package compliance

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cleargate/pkg/domainerrors"
)

// Tier is a ranked identity-assurance level. Higher tiers unlock larger
// transfer ceilings and restricted destinations.
type Tier int

const (
	TierNone Tier = iota
	TierBasic
	TierEnhanced
	TierInstitutional
)

func (t Tier) String() string {
	switch t {
	case TierBasic:
		return "basic"
	case TierEnhanced:
		return "enhanced"
	case TierInstitutional:
		return "institutional"
	}
	return "none"
}

// ParseTier maps a tier name to its enum value; unknown names resolve to
// TierNone so stale provider data degrades safely.
func ParseTier(s string) Tier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "basic":
		return TierBasic
	case "enhanced":
		return TierEnhanced
	case "institutional":
		return TierInstitutional
	}
	return TierNone
}

// RiskLevel is the aggregate severity of one evaluation.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
	RiskCritical
)

func (r RiskLevel) String() string {
	switch r {
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	case RiskCritical:
		return "critical"
	}
	return "low"
}

// CheckKind identifies one of the compliance rules.
type CheckKind string

const (
	KindVerificationLevel  CheckKind = "verification_level"
	KindTransferLimit      CheckKind = "transfer_limit"
	KindSanctionsScreening CheckKind = "sanctions_screening"
	KindChainRestriction   CheckKind = "chain_restriction"
	KindVelocity           CheckKind = "velocity"

	// KindEvaluation is reserved for the synthesized outcome produced when the
	// pipeline itself fails; it never appears in a normal five-check result.
	KindEvaluation CheckKind = "evaluation"
)

// CheckStatus is the outcome of a single rule.
type CheckStatus string

const (
	StatusPassed  CheckStatus = "passed"
	StatusWarning CheckStatus = "warning"
	StatusFailed  CheckStatus = "failed"
)

// CheckOutcome is one rule's verdict. RequiredAction is set only when the
// status is not Passed and a concrete corrective step exists.
type CheckOutcome struct {
	Kind           CheckKind
	Status         CheckStatus
	Message        string
	Detail         string
	RequiredAction string
}

// EvaluationRequest describes the transfer under evaluation. Amount is in
// asset-native units; conversion to USD happens against the configured rate.
// Immutable once constructed.
type EvaluationRequest struct {
	Amount           decimal.Decimal
	Asset            string
	DestinationChain int64
	Recipient        string
	Actor            string
}

// Validate rejects malformed requests before any rule runs.
func (r EvaluationRequest) Validate() error {
	if !r.Amount.IsPositive() {
		return domainerrors.New(domainerrors.CodeValidation, "amount must be positive")
	}
	if strings.TrimSpace(r.Recipient) == "" {
		return domainerrors.New(domainerrors.CodeValidation, "recipient is required")
	}
	if strings.TrimSpace(r.Actor) == "" {
		return domainerrors.New(domainerrors.CodeValidation, "actor is required")
	}
	if r.DestinationChain < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "destination chain must not be negative")
	}
	return nil
}

// VerificationProfile is the resolved KYC state of an actor. A nil profile
// means the actor has no verification record and is treated as TierNone.
type VerificationProfile struct {
	Tier         Tier
	Jurisdiction string // optional 2-letter code
}

// WindowUsage holds rolling counters for one time window.
type WindowUsage struct {
	Count     int
	VolumeUSD decimal.Decimal
}

// UsageSnapshot is an actor's rolling usage up to now. It is fetched fresh
// for every evaluation; the engine never caches it.
type UsageSnapshot struct {
	Hour  WindowUsage
	Day   WindowUsage
	Week  WindowUsage
	Month WindowUsage
}

// EvaluationResult is the engine's verdict. Checks holds exactly five entries
// in canonical rule order on every non-fault path; RecommendedActions is the
// ordered concatenation of the outcomes' required actions (not deduplicated).
type EvaluationResult struct {
	Approved           bool
	Checks             []CheckOutcome
	RiskLevel          RiskLevel
	RecommendedActions []string
	EvaluatedAt        time.Time
}

// checkOrder is the canonical ordering of the five rules in a result.
var checkOrder = [5]CheckKind{
	KindVerificationLevel,
	KindTransferLimit,
	KindSanctionsScreening,
	KindChainRestriction,
	KindVelocity,
}
