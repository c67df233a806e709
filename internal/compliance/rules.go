package compliance

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Verification thresholds in USD. Transfers above enhancedThresholdUSD need
// more than Basic; above institutionalThresholdUSD only Institutional passes.
var (
	enhancedThresholdUSD      = decimal.NewFromInt(5000)
	institutionalThresholdUSD = decimal.NewFromInt(50000)
	monitoredThresholdUSD     = decimal.NewFromInt(10000)
)

// warningRatio marks the "approaching limit" band for both the daily volume
// headroom and the hourly velocity counter.
const warningRatio = 0.8

// CheckVerificationLevel gates the transfer on the actor's identity state and
// tier. Pure: deterministic given its inputs, no I/O.
func CheckVerificationLevel(cfg Config, amount decimal.Decimal, profile *VerificationProfile, hasActiveIdentity bool) CheckOutcome {
	if !hasActiveIdentity {
		return CheckOutcome{
			Kind:           KindVerificationLevel,
			Status:         StatusFailed,
			Message:        "identity verification required",
			RequiredAction: "create and activate a verified identity",
		}
	}
	if profile == nil {
		return CheckOutcome{
			Kind:           KindVerificationLevel,
			Status:         StatusFailed,
			Message:        "verification record required",
			RequiredAction: "complete verification",
		}
	}

	usd := cfg.ToUSD(amount)
	if usd.GreaterThan(enhancedThresholdUSD) && profile.Tier == TierBasic {
		return CheckOutcome{
			Kind:           KindVerificationLevel,
			Status:         StatusFailed,
			Message:        "transfer amount exceeds basic verification ceiling",
			Detail:         fmt.Sprintf("%s USD is above the %s USD basic tier threshold", usd.StringFixed(2), enhancedThresholdUSD.StringFixed(2)),
			RequiredAction: "upgrade to Enhanced verification",
		}
	}
	if usd.GreaterThan(institutionalThresholdUSD) && profile.Tier != TierInstitutional {
		return CheckOutcome{
			Kind:           KindVerificationLevel,
			Status:         StatusFailed,
			Message:        "transfer amount requires institutional verification",
			Detail:         fmt.Sprintf("%s USD is above the %s USD institutional threshold", usd.StringFixed(2), institutionalThresholdUSD.StringFixed(2)),
			RequiredAction: "upgrade to Institutional verification",
		}
	}

	return CheckOutcome{
		Kind:    KindVerificationLevel,
		Status:  StatusPassed,
		Message: fmt.Sprintf("verified at %s tier", profile.Tier),
	}
}

// CheckTransferLimit enforces per-tier single, daily, and monthly USD
// ceilings. All thresholds are strict: a transfer exactly at the remaining
// allowance passes.
func CheckTransferLimit(cfg Config, amount decimal.Decimal, tier Tier, usage UsageSnapshot) CheckOutcome {
	limits := cfg.LimitsFor(tier)
	usd := cfg.ToUSD(amount)

	if usd.GreaterThan(limits.SingleUSD) {
		return CheckOutcome{
			Kind:           KindTransferLimit,
			Status:         StatusFailed,
			Message:        "single transfer limit exceeded",
			Detail:         fmt.Sprintf("%s USD exceeds the %s USD single transfer limit for the %s tier", usd.StringFixed(2), limits.SingleUSD.StringFixed(2), tier),
			RequiredAction: "reduce the amount or upgrade your verification tier",
		}
	}

	dailyRemaining := limits.DailyUSD.Sub(usage.Day.VolumeUSD)
	if usd.GreaterThan(dailyRemaining) {
		return CheckOutcome{
			Kind:           KindTransferLimit,
			Status:         StatusFailed,
			Message:        "daily limit exceeded",
			Detail:         fmt.Sprintf("used %s of %s USD today; %s USD remaining", usage.Day.VolumeUSD.StringFixed(2), limits.DailyUSD.StringFixed(2), dailyRemaining.StringFixed(2)),
			RequiredAction: "wait until tomorrow or upgrade your verification tier",
		}
	}

	monthlyRemaining := limits.MonthlyUSD.Sub(usage.Month.VolumeUSD)
	if usd.GreaterThan(monthlyRemaining) {
		return CheckOutcome{
			Kind:           KindTransferLimit,
			Status:         StatusFailed,
			Message:        "monthly limit exceeded",
			Detail:         fmt.Sprintf("used %s of %s USD this month; %s USD remaining", usage.Month.VolumeUSD.StringFixed(2), limits.MonthlyUSD.StringFixed(2), monthlyRemaining.StringFixed(2)),
			RequiredAction: "wait until next month or upgrade your verification tier",
		}
	}

	warnBand := dailyRemaining.Mul(decimal.NewFromFloat(warningRatio))
	if usd.GreaterThan(warnBand) {
		pct := decimal.Zero
		if dailyRemaining.IsPositive() {
			pct = usd.Div(dailyRemaining).Mul(decimal.NewFromInt(100))
		}
		return CheckOutcome{
			Kind:           KindTransferLimit,
			Status:         StatusWarning,
			Message:        "approaching daily limit",
			Detail:         fmt.Sprintf("this transfer consumes %s%% of your remaining daily allowance", pct.StringFixed(1)),
			RequiredAction: "consider splitting the transfer across days",
		}
	}

	return CheckOutcome{
		Kind:    KindTransferLimit,
		Status:  StatusPassed,
		Message: "within transfer limits",
		Detail:  fmt.Sprintf("%s USD daily and %s USD monthly allowance remaining", dailyRemaining.Sub(usd).StringFixed(2), monthlyRemaining.Sub(usd).StringFixed(2)),
	}
}

// CheckSanctions screens recipient then actor against the denylist. This is
// the one rule permitted to perform I/O. A lookup error fails closed: the
// transfer is blocked with a generic message, never silently passed.
func CheckSanctions(ctx context.Context, lookup SanctionsLookup, recipient, actor string) CheckOutcome {
	listed, err := lookup.Contains(ctx, recipient)
	if err != nil {
		return sanctionsUnavailable()
	}
	if listed {
		return CheckOutcome{
			Kind:           KindSanctionsScreening,
			Status:         StatusFailed,
			Message:        "recipient on sanctions list",
			RequiredAction: "blocked, contact compliance",
		}
	}

	listed, err = lookup.Contains(ctx, actor)
	if err != nil {
		return sanctionsUnavailable()
	}
	if listed {
		return CheckOutcome{
			Kind:           KindSanctionsScreening,
			Status:         StatusFailed,
			Message:        "account restricted",
			RequiredAction: "contact compliance",
		}
	}

	return CheckOutcome{
		Kind:    KindSanctionsScreening,
		Status:  StatusPassed,
		Message: "sanctions screening clear",
	}
}

func sanctionsUnavailable() CheckOutcome {
	return CheckOutcome{
		Kind:           KindSanctionsScreening,
		Status:         StatusFailed,
		Message:        "screening unavailable",
		RequiredAction: "retry later or contact compliance",
	}
}

// CheckChainRestriction enforces destination policy: restricted chains need
// an elevated tier, restricted jurisdictions are blocked outright, and
// high-value transfers to monitored chains get a warning. chainName is for
// messages only.
func CheckChainRestriction(cfg Config, amount decimal.Decimal, chainID int64, chainName string, profile *VerificationProfile) CheckOutcome {
	tier := TierNone
	jurisdiction := ""
	if profile != nil {
		tier = profile.Tier
		jurisdiction = profile.Jurisdiction
	}

	if cfg.IsRestrictedChain(chainID) && tier != TierEnhanced && tier != TierInstitutional {
		return CheckOutcome{
			Kind:           KindChainRestriction,
			Status:         StatusFailed,
			Message:        fmt.Sprintf("destination %s requires a higher verification tier", chainName),
			RequiredAction: "upgrade verification tier",
		}
	}

	if cfg.IsRestrictedJurisdiction(jurisdiction) {
		return CheckOutcome{
			Kind:           KindChainRestriction,
			Status:         StatusFailed,
			Message:        "geographic restriction",
			Detail:         fmt.Sprintf("transfers to %s are not available from your jurisdiction", chainName),
			RequiredAction: "choose a different destination",
		}
	}

	usd := cfg.ToUSD(amount)
	if usd.GreaterThan(monitoredThresholdUSD) && cfg.IsMonitoredChain(chainID) {
		return CheckOutcome{
			Kind:    KindChainRestriction,
			Status:  StatusWarning,
			Message: "high-value transfer to monitored chain",
			Detail:  fmt.Sprintf("%s USD to %s will receive additional scrutiny", usd.StringFixed(2), chainName),
		}
	}

	return CheckOutcome{
		Kind:    KindChainRestriction,
		Status:  StatusPassed,
		Message: fmt.Sprintf("destination %s allowed", chainName),
	}
}

// CheckVelocity enforces transfer-count limits over rolling windows. Counts
// at the limit fail (inclusive semantics), and the hourly counter warns at
// 80% of its limit. First match wins.
func CheckVelocity(cfg Config, usage UsageSnapshot) CheckOutcome {
	limits := cfg.Velocity

	if usage.Hour.Count >= limits.Hourly {
		return CheckOutcome{
			Kind:           KindVelocity,
			Status:         StatusFailed,
			Message:        "hourly count limit exceeded",
			Detail:         fmt.Sprintf("%d of %d transfers this hour", usage.Hour.Count, limits.Hourly),
			RequiredAction: "wait before retrying",
		}
	}
	if usage.Day.Count >= limits.Daily {
		return CheckOutcome{
			Kind:           KindVelocity,
			Status:         StatusFailed,
			Message:        "daily count limit exceeded",
			Detail:         fmt.Sprintf("%d of %d transfers today", usage.Day.Count, limits.Daily),
			RequiredAction: "wait before retrying",
		}
	}
	if usage.Week.Count >= limits.Weekly {
		return CheckOutcome{
			Kind:           KindVelocity,
			Status:         StatusFailed,
			Message:        "weekly count limit exceeded",
			Detail:         fmt.Sprintf("%d of %d transfers this week", usage.Week.Count, limits.Weekly),
			RequiredAction: "wait before retrying",
		}
	}
	if float64(usage.Hour.Count) >= warningRatio*float64(limits.Hourly) {
		return CheckOutcome{
			Kind:    KindVelocity,
			Status:  StatusWarning,
			Message: "approaching hourly count limit",
			Detail:  fmt.Sprintf("%d of %d transfers this hour", usage.Hour.Count, limits.Hourly),
		}
	}

	return CheckOutcome{
		Kind:    KindVelocity,
		Status:  StatusPassed,
		Message: "within velocity limits",
		Detail: fmt.Sprintf("hour %d/%d, day %d/%d, week %d/%d",
			usage.Hour.Count, limits.Hourly,
			usage.Day.Count, limits.Daily,
			usage.Week.Count, limits.Weekly),
	}
}

// unavailableOutcome is the fail-closed outcome used when a provider the rule
// depends on could not be reached.
func unavailableOutcome(kind CheckKind, message string) CheckOutcome {
	return CheckOutcome{
		Kind:           kind,
		Status:         StatusFailed,
		Message:        message,
		RequiredAction: "retry later or contact support",
	}
}
