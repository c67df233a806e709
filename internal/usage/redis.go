package usage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"cleargate/internal/compliance"
)

// window key suffixes and their expiries. Fixed-window buckets keyed by TTL:
// a bucket starts at the first transfer and expires one window later, which
// approximates rolling windows without per-entry storage.
var windows = []struct {
	name string
	ttl  time.Duration
}{
	{"hour", time.Hour},
	{"day", 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
}

// RedisStore accounts usage in per-window Redis counters.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore constructs a Redis-backed usage provider.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "usage"}
}

func (s *RedisStore) countKey(actor, window string) string {
	return fmt.Sprintf("%s:%s:%s:count", s.prefix, normalize(actor), window)
}

func (s *RedisStore) volumeKey(actor, window string) string {
	return fmt.Sprintf("%s:%s:%s:volume", s.prefix, normalize(actor), window)
}

// Record accounts one completed transfer across all windows atomically.
func (s *RedisStore) Record(ctx context.Context, actor string, amountUSD decimal.Decimal) error {
	usd, _ := amountUSD.Float64()

	pipe := s.client.TxPipeline()
	for _, w := range windows {
		countKey := s.countKey(actor, w.name)
		volumeKey := s.volumeKey(actor, w.name)
		pipe.Incr(ctx, countKey)
		pipe.IncrByFloat(ctx, volumeKey, usd)
		pipe.ExpireNX(ctx, countKey, w.ttl)
		pipe.ExpireNX(ctx, volumeKey, w.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record usage: %w", err)
	}
	return nil
}

// Resolve reads all window counters in one round trip. Missing keys read as
// zero so actors without history get a zero-filled snapshot.
func (s *RedisStore) Resolve(ctx context.Context, actor string) (compliance.UsageSnapshot, error) {
	var snap compliance.UsageSnapshot

	pipe := s.client.Pipeline()
	counts := make([]*redis.StringCmd, len(windows))
	volumes := make([]*redis.StringCmd, len(windows))
	for i, w := range windows {
		counts[i] = pipe.Get(ctx, s.countKey(actor, w.name))
		volumes[i] = pipe.Get(ctx, s.volumeKey(actor, w.name))
	}
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return snap, fmt.Errorf("resolve usage: %w", err)
	}

	usages := [4]*compliance.WindowUsage{&snap.Hour, &snap.Day, &snap.Week, &snap.Month}
	for i, target := range usages {
		target.VolumeUSD = decimal.Zero

		count, err := counts[i].Int()
		if err != nil && err != redis.Nil {
			return snap, fmt.Errorf("parse usage count: %w", err)
		}
		target.Count = count

		raw, err := volumes[i].Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return snap, fmt.Errorf("read usage volume: %w", err)
		}
		volume, err := decimal.NewFromString(raw)
		if err != nil {
			return snap, fmt.Errorf("parse usage volume: %w", err)
		}
		target.VolumeUSD = volume
	}
	return snap, nil
}
