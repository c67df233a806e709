package compliance

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// gatheredEvidence holds everything the pure rules need, resolved once per
// evaluation. Provider failures are recorded, not propagated: each rule
// translates its missing evidence into a fail-closed outcome.
type gatheredEvidence struct {
	Profile         *VerificationProfile
	ActiveIdentity  bool
	VerificationErr error

	Usage    UsageSnapshot
	UsageErr error

	// Sanctions is the completed screening outcome; the lookup is the one
	// piece of rule I/O, so it runs inside the fan-out.
	Sanctions CheckOutcome

	FetchedAt time.Time
	Latencies struct {
		Verification time.Duration
		Usage        time.Duration
		Sanctions    time.Duration
	}
}

// gatherEvidence fans out the independent provider fetches with shared
// cancellation. Only cancellation of the caller's context abandons the
// evaluation; provider errors, including the gather timeout, stay inside the
// evidence so all five checks still run and report fail-closed.
func (s *Service) gatherEvidence(parent context.Context, req EvaluationRequest) (*gatheredEvidence, error) {
	fetchCtx, cancel := context.WithTimeout(parent, s.gatherTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(fetchCtx)

	evidence := &gatheredEvidence{
		FetchedAt: time.Now(),
	}

	// Verification profile + active-identity flag
	g.Go(func() error {
		start := time.Now()
		profile, err := s.verification.Resolve(ctx, req.Actor)
		if err == nil {
			evidence.ActiveIdentity, err = s.verification.HasActiveIdentity(ctx, req.Actor)
		}
		evidence.Latencies.Verification = time.Since(start)
		s.metrics.ObserveEvidenceLatency("verification", evidence.Latencies.Verification)

		if err != nil {
			if parent.Err() != nil {
				return parent.Err()
			}
			if s.logger != nil {
				s.logger.DebugContext(ctx, "verification lookup failed",
					"actor", req.Actor,
					"error", err,
				)
			}
			evidence.VerificationErr = err
			return nil
		}
		evidence.Profile = profile
		return nil
	})

	// Usage snapshot
	g.Go(func() error {
		start := time.Now()
		usage, err := s.usage.Resolve(ctx, req.Actor)
		evidence.Latencies.Usage = time.Since(start)
		s.metrics.ObserveEvidenceLatency("usage", evidence.Latencies.Usage)

		if err != nil {
			if parent.Err() != nil {
				return parent.Err()
			}
			if s.logger != nil {
				s.logger.DebugContext(ctx, "usage history lookup failed",
					"actor", req.Actor,
					"error", err,
				)
			}
			evidence.UsageErr = err
			return nil
		}
		evidence.Usage = usage
		return nil
	})

	// Sanctions screening (the one remote check). CheckSanctions fails closed
	// on lookup errors; only caller cancellation abandons the evaluation.
	g.Go(func() error {
		start := time.Now()
		evidence.Sanctions = CheckSanctions(ctx, s.sanctions, req.Recipient, req.Actor)
		evidence.Latencies.Sanctions = time.Since(start)
		s.metrics.ObserveEvidenceLatency("sanctions", evidence.Latencies.Sanctions)

		return parent.Err()
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return evidence, nil
}
