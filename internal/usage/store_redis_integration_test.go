//go:build integration

package usage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"cleargate/internal/usage"
	"cleargate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *usage.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = usage.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestResolveUnknownActorIsZeroFilled() {
	snap, err := s.store.Resolve(context.Background(), "0xfresh")
	s.Require().NoError(err)

	s.Equal(0, snap.Hour.Count)
	s.Equal(0, snap.Month.Count)
	s.True(snap.Hour.VolumeUSD.IsZero())
	s.True(snap.Month.VolumeUSD.IsZero())
}

func (s *RedisStoreSuite) TestRecordAccumulatesAcrossWindows() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, "0xActor", decimal.NewFromInt(100)))
	s.Require().NoError(s.store.Record(ctx, "0xactor", decimal.RequireFromString("25.50")))

	snap, err := s.store.Resolve(ctx, "0xACTOR")
	s.Require().NoError(err)

	for _, window := range []struct {
		name  string
		usage func() (int, decimal.Decimal)
	}{
		{"hour", func() (int, decimal.Decimal) { return snap.Hour.Count, snap.Hour.VolumeUSD }},
		{"day", func() (int, decimal.Decimal) { return snap.Day.Count, snap.Day.VolumeUSD }},
		{"week", func() (int, decimal.Decimal) { return snap.Week.Count, snap.Week.VolumeUSD }},
		{"month", func() (int, decimal.Decimal) { return snap.Month.Count, snap.Month.VolumeUSD }},
	} {
		count, volume := window.usage()
		s.Equal(2, count, window.name)
		s.True(volume.Equal(decimal.RequireFromString("125.5")), "%s volume = %s", window.name, volume)
	}
}

func (s *RedisStoreSuite) TestActorIsolation() {
	ctx := context.Background()

	s.Require().NoError(s.store.Record(ctx, "0xalpha", decimal.NewFromInt(10)))
	s.Require().NoError(s.store.Record(ctx, "0xbeta", decimal.NewFromInt(20)))

	alpha, err := s.store.Resolve(ctx, "0xalpha")
	s.Require().NoError(err)
	beta, err := s.store.Resolve(ctx, "0xbeta")
	s.Require().NoError(err)

	s.Equal(1, alpha.Day.Count)
	s.True(alpha.Day.VolumeUSD.Equal(decimal.NewFromInt(10)))
	s.Equal(1, beta.Day.Count)
	s.True(beta.Day.VolumeUSD.Equal(decimal.NewFromInt(20)))
}

func (s *RedisStoreSuite) TestWindowKeysCarryTTLs() {
	ctx := context.Background()
	s.Require().NoError(s.store.Record(ctx, "0xactor", decimal.NewFromInt(1)))

	ttl, err := s.redis.Client.TTL(ctx, "usage:0xactor:hour:count").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0), "hour bucket should expire")
	s.LessOrEqual(ttl, time.Hour)

	ttl, err = s.redis.Client.TTL(ctx, "usage:0xactor:month:volume").Result()
	s.Require().NoError(err)
	s.Greater(ttl, 7*24*time.Hour, "month bucket should outlive the week bucket")
}

func (s *RedisStoreSuite) TestConcurrentRecordsAreAtomic() {
	ctx := context.Background()

	const goroutines = 25
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.NoError(s.store.Record(ctx, "0xbusy", decimal.NewFromInt(4)))
		}()
	}
	wg.Wait()

	snap, err := s.store.Resolve(ctx, "0xbusy")
	s.Require().NoError(err)
	s.Equal(goroutines, snap.Hour.Count)
	s.True(snap.Hour.VolumeUSD.Equal(decimal.NewFromInt(4*goroutines)))
}
