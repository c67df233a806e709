package compliance

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TierLimits are USD ceilings for a verification tier.
type TierLimits struct {
	SingleUSD  decimal.Decimal
	DailyUSD   decimal.Decimal
	MonthlyUSD decimal.Decimal
}

// VelocityLimits are transfer-count ceilings per rolling window, independent
// of monetary value.
type VelocityLimits struct {
	Hourly int
	Daily  int
	Weekly int
}

// Config is the immutable policy the engine evaluates against. It is loaded
// once (or explicitly reloaded) and may be shared across concurrent
// evaluations without locking; nothing mutates it mid-evaluation.
type Config struct {
	LimitsByTier            map[Tier]TierLimits
	Velocity                VelocityLimits
	RestrictedChains        map[int64]struct{}
	MonitoredChains         map[int64]struct{}
	SanctionedAddresses     map[string]struct{} // lower-cased
	RestrictedJurisdictions map[string]struct{} // upper-cased 2-letter codes
	USDConversionRate       decimal.Decimal     // native-asset units to USD
}

// DefaultConfig returns the built-in policy. Every value is overridable via
// the policy file; these defaults only exist so the engine is usable without
// one.
func DefaultConfig() Config {
	return Config{
		LimitsByTier: map[Tier]TierLimits{
			TierNone: {
				SingleUSD:  decimal.NewFromInt(100),
				DailyUSD:   decimal.NewFromInt(200),
				MonthlyUSD: decimal.NewFromInt(1000),
			},
			TierBasic: {
				SingleUSD:  decimal.NewFromInt(500),
				DailyUSD:   decimal.NewFromInt(1000),
				MonthlyUSD: decimal.NewFromInt(10000),
			},
			TierEnhanced: {
				SingleUSD:  decimal.NewFromInt(25000),
				DailyUSD:   decimal.NewFromInt(50000),
				MonthlyUSD: decimal.NewFromInt(250000),
			},
			TierInstitutional: {
				SingleUSD:  decimal.NewFromInt(1000000),
				DailyUSD:   decimal.NewFromInt(5000000),
				MonthlyUSD: decimal.NewFromInt(50000000),
			},
		},
		Velocity: VelocityLimits{
			Hourly: 10,
			Daily:  50,
			Weekly: 200,
		},
		RestrictedChains:        map[int64]struct{}{},
		MonitoredChains:         map[int64]struct{}{},
		SanctionedAddresses:     map[string]struct{}{},
		RestrictedJurisdictions: map[string]struct{}{},
		USDConversionRate:       decimal.NewFromInt(1),
	}
}

// ToUSD converts a native-asset amount to USD at the configured rate.
func (c Config) ToUSD(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(c.USDConversionRate)
}

// LimitsFor resolves the limits for a tier, falling back to TierNone's limits
// when the tier is absent from the table.
func (c Config) LimitsFor(tier Tier) TierLimits {
	if limits, ok := c.LimitsByTier[tier]; ok {
		return limits
	}
	return c.LimitsByTier[TierNone]
}

// IsRestrictedChain reports whether a destination requires an elevated tier.
func (c Config) IsRestrictedChain(chainID int64) bool {
	_, ok := c.RestrictedChains[chainID]
	return ok
}

// IsMonitoredChain reports whether a destination is designated high-scrutiny.
func (c Config) IsMonitoredChain(chainID int64) bool {
	_, ok := c.MonitoredChains[chainID]
	return ok
}

// IsRestrictedJurisdiction performs a case-insensitive membership test.
func (c Config) IsRestrictedJurisdiction(code string) bool {
	if code == "" {
		return false
	}
	_, ok := c.RestrictedJurisdictions[strings.ToUpper(code)]
	return ok
}

// NewAddressSet builds a case-normalized address set for sanctions matching.
func NewAddressSet(addrs ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(addrs))
	for _, a := range addrs {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			set[a] = struct{}{}
		}
	}
	return set
}

// NewJurisdictionSet builds an upper-cased jurisdiction set.
func NewJurisdictionSet(codes ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			set[c] = struct{}{}
		}
	}
	return set
}

// NewChainSet builds a chain-id set.
func NewChainSet(ids ...int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
