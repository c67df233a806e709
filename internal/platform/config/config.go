package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"cleargate/internal/compliance"
)

// Server captures process level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	PolicyFile    string
	PostgresDSN   string
	SanctionsURL  string
	Redis         RedisConfig
	GatherTimeout time.Duration
}

// RedisConfig holds the usage-store Redis connection settings.
type RedisConfig struct {
	URL string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("CLEARGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	gatherTimeout := 5 * time.Second
	if raw := os.Getenv("CLEARGATE_GATHER_TIMEOUT"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			gatherTimeout = d
		}
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: os.Getenv("CLEARGATE_JWT_SIGNING_KEY"),
		PolicyFile:    os.Getenv("CLEARGATE_POLICY_FILE"),
		PostgresDSN:   os.Getenv("CLEARGATE_POSTGRES_DSN"),
		SanctionsURL:  os.Getenv("CLEARGATE_SANCTIONS_URL"),
		Redis:         RedisConfig{URL: os.Getenv("CLEARGATE_REDIS_URL")},
		GatherTimeout: gatherTimeout,
	}
}

// policyFile is the YAML shape of the compliance policy. Every field is
// optional; absent fields keep their defaults.
type policyFile struct {
	Limits map[string]struct {
		SingleUSD  string `yaml:"single_usd"`
		DailyUSD   string `yaml:"daily_usd"`
		MonthlyUSD string `yaml:"monthly_usd"`
	} `yaml:"limits"`
	Velocity *struct {
		Hourly int `yaml:"hourly"`
		Daily  int `yaml:"daily"`
		Weekly int `yaml:"weekly"`
	} `yaml:"velocity"`
	RestrictedChains        []int64  `yaml:"restricted_chains"`
	MonitoredChains         []int64  `yaml:"monitored_chains"`
	SanctionedAddresses     []string `yaml:"sanctioned_addresses"`
	RestrictedJurisdictions []string `yaml:"restricted_jurisdictions"`
	USDConversionRate       string   `yaml:"usd_conversion_rate"`
}

// LoadPolicy overlays the YAML policy file at path onto the default policy.
// An empty path returns the defaults unchanged.
func LoadPolicy(path string) (compliance.Config, error) {
	cfg := compliance.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read policy file: %w", err)
	}

	var file policyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cfg, fmt.Errorf("parse policy file: %w", err)
	}

	for tierName, entry := range file.Limits {
		tier := compliance.ParseTier(tierName)
		limits, err := overlayLimits(cfg.LimitsByTier[tier], entry.SingleUSD, entry.DailyUSD, entry.MonthlyUSD)
		if err != nil {
			return cfg, fmt.Errorf("policy limits for %q: %w", tierName, err)
		}
		cfg.LimitsByTier[tier] = limits
	}

	if file.Velocity != nil {
		if file.Velocity.Hourly > 0 {
			cfg.Velocity.Hourly = file.Velocity.Hourly
		}
		if file.Velocity.Daily > 0 {
			cfg.Velocity.Daily = file.Velocity.Daily
		}
		if file.Velocity.Weekly > 0 {
			cfg.Velocity.Weekly = file.Velocity.Weekly
		}
	}

	if len(file.RestrictedChains) > 0 {
		cfg.RestrictedChains = compliance.NewChainSet(file.RestrictedChains...)
	}
	if len(file.MonitoredChains) > 0 {
		cfg.MonitoredChains = compliance.NewChainSet(file.MonitoredChains...)
	}
	if len(file.SanctionedAddresses) > 0 {
		cfg.SanctionedAddresses = compliance.NewAddressSet(file.SanctionedAddresses...)
	}
	if len(file.RestrictedJurisdictions) > 0 {
		cfg.RestrictedJurisdictions = compliance.NewJurisdictionSet(file.RestrictedJurisdictions...)
	}

	if file.USDConversionRate != "" {
		rate, err := decimal.NewFromString(file.USDConversionRate)
		if err != nil || !rate.IsPositive() {
			return cfg, fmt.Errorf("policy usd_conversion_rate %q is not a positive decimal", file.USDConversionRate)
		}
		cfg.USDConversionRate = rate
	}

	return cfg, nil
}

func overlayLimits(limits compliance.TierLimits, single, daily, monthly string) (compliance.TierLimits, error) {
	var err error
	if single != "" {
		if limits.SingleUSD, err = decimal.NewFromString(single); err != nil {
			return limits, fmt.Errorf("single_usd: %w", err)
		}
	}
	if daily != "" {
		if limits.DailyUSD, err = decimal.NewFromString(daily); err != nil {
			return limits, fmt.Errorf("daily_usd: %w", err)
		}
	}
	if monthly != "" {
		if limits.MonthlyUSD, err = decimal.NewFromString(monthly); err != nil {
			return limits, fmt.Errorf("monthly_usd: %w", err)
		}
	}
	return limits, nil
}
