package sanctions

import (
	"context"
	"fmt"
	"log/slog"

	"cleargate/internal/compliance"
	"cleargate/pkg/platform/circuit"
	"cleargate/pkg/platform/sentinel"
)

// BreakerLookup wraps a SanctionsLookup with a circuit breaker. While the
// circuit is open every call returns sentinel.ErrUnavailable immediately, so
// the screening rule fails closed instead of hammering a dead remote.
type BreakerLookup struct {
	next    compliance.SanctionsLookup
	breaker *circuit.Breaker
	logger  *slog.Logger
}

// BreakerOption configures a BreakerLookup.
type BreakerOption func(*BreakerLookup)

func WithBreakerLogger(logger *slog.Logger) BreakerOption {
	return func(l *BreakerLookup) {
		l.logger = logger
	}
}

// NewBreaker wraps next with the given breaker.
func NewBreaker(next compliance.SanctionsLookup, breaker *circuit.Breaker, opts ...BreakerOption) *BreakerLookup {
	l := &BreakerLookup{next: next, breaker: breaker}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Contains delegates to the wrapped lookup, tracking its health.
func (l *BreakerLookup) Contains(ctx context.Context, address string) (bool, error) {
	if l.breaker.IsOpen() {
		return false, fmt.Errorf("sanctions screening %s: %w", l.breaker.Name(), sentinel.ErrUnavailable)
	}

	listed, err := l.next.Contains(ctx, address)
	if err != nil {
		if _, change := l.breaker.RecordFailure(); change.Opened && l.logger != nil {
			l.logger.WarnContext(ctx, "sanctions screening circuit opened",
				"breaker", l.breaker.Name(),
			)
		}
		return false, err
	}

	if _, change := l.breaker.RecordSuccess(); change.Closed && l.logger != nil {
		l.logger.InfoContext(ctx, "sanctions screening circuit closed",
			"breaker", l.breaker.Name(),
		)
	}
	return listed, nil
}

// Reset forces the circuit closed, e.g. from an admin endpoint.
func (l *BreakerLookup) Reset() {
	l.breaker.Reset()
}
