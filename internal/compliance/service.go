package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cleargate/internal/compliance/metrics"
)

const defaultGatherTimeout = 5 * time.Second

// Service is the evaluation orchestrator: it resolves provider data,
// invokes the five rules, and folds their outcomes into one result. It owns
// failure containment; callers either get a well-formed result or a domain
// error for a malformed request.
type Service struct {
	cfg           Config
	verification  VerificationProvider
	usage         UsageHistoryProvider
	sanctions     SanctionsLookup
	chains        ChainNameResolver
	logger        *slog.Logger
	metrics       *metrics.Metrics
	gatherTimeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithGatherTimeout bounds the provider fan-out per evaluation.
func WithGatherTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.gatherTimeout = d
		}
	}
}

// New constructs the orchestrator. All four providers are required.
func New(
	cfg Config,
	verification VerificationProvider,
	usage UsageHistoryProvider,
	sanctions SanctionsLookup,
	chains ChainNameResolver,
	opts ...Option,
) (*Service, error) {
	if verification == nil {
		return nil, fmt.Errorf("verification provider is required")
	}
	if usage == nil {
		return nil, fmt.Errorf("usage history provider is required")
	}
	if sanctions == nil {
		return nil, fmt.Errorf("sanctions lookup is required")
	}
	if chains == nil {
		return nil, fmt.Errorf("chain name resolver is required")
	}

	svc := &Service{
		cfg:           cfg,
		verification:  verification,
		usage:         usage,
		sanctions:     sanctions,
		chains:        chains,
		gatherTimeout: defaultGatherTimeout,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Config returns the active policy.
func (s *Service) Config() Config {
	return s.cfg
}

// Evaluate runs the full compliance evaluation for one transfer request.
//
// Malformed requests are rejected up front with a domain error. Caller
// cancellation abandons the evaluation and returns the context error with no
// result. Any other failure inside the pipeline is contained: provider
// outages become fail-closed check outcomes, and an unexpected panic is
// recovered into a single-check Critical result.
func (s *Service) Evaluate(ctx context.Context, req EvaluationRequest) (result *EvaluationResult, err error) {
	if verr := req.Validate(); verr != nil {
		return nil, verr
	}

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			if s.logger != nil {
				s.logger.ErrorContext(ctx, "evaluation pipeline panicked",
					"actor", req.Actor,
					"panic", r,
				)
			}
			result = FaultResult(time.Now())
			err = nil
			s.observe(result, time.Since(start))
		}
	}()

	evidence, gerr := s.gatherEvidence(ctx, req)
	if gerr != nil {
		// Caller cancellation: no partial or interim result contract.
		return nil, gerr
	}

	checks := s.runChecks(req, evidence)
	result = Combine(checks, time.Now())
	s.observe(result, time.Since(start))

	if s.logger != nil {
		s.logger.DebugContext(ctx, "evaluation complete",
			"actor", req.Actor,
			"approved", result.Approved,
			"risk", result.RiskLevel.String(),
		)
	}
	return result, nil
}

// runChecks executes the four pure rules over gathered evidence and
// assembles all five outcomes in canonical order, independent of which
// provider fetch finished first.
func (s *Service) runChecks(req EvaluationRequest, evidence *gatheredEvidence) []CheckOutcome {
	tier := TierNone
	if evidence.Profile != nil {
		tier = evidence.Profile.Tier
	}

	chainName, ok := s.chains.Resolve(req.DestinationChain)
	if !ok {
		chainName = fmt.Sprintf("Chain-%d", req.DestinationChain)
	}

	outcomes := make(map[CheckKind]CheckOutcome, len(checkOrder))

	if evidence.VerificationErr != nil {
		outcomes[KindVerificationLevel] = unavailableOutcome(KindVerificationLevel, "verification unavailable")
	} else {
		outcomes[KindVerificationLevel] = CheckVerificationLevel(s.cfg, req.Amount, evidence.Profile, evidence.ActiveIdentity)
	}

	if evidence.UsageErr != nil {
		outcomes[KindTransferLimit] = unavailableOutcome(KindTransferLimit, "usage history unavailable")
		outcomes[KindVelocity] = unavailableOutcome(KindVelocity, "usage history unavailable")
	} else {
		outcomes[KindTransferLimit] = CheckTransferLimit(s.cfg, req.Amount, tier, evidence.Usage)
		outcomes[KindVelocity] = CheckVelocity(s.cfg, evidence.Usage)
	}

	outcomes[KindSanctionsScreening] = evidence.Sanctions
	outcomes[KindChainRestriction] = CheckChainRestriction(s.cfg, req.Amount, req.DestinationChain, chainName, evidence.Profile)

	checks := make([]CheckOutcome, 0, len(checkOrder))
	for _, kind := range checkOrder {
		checks = append(checks, outcomes[kind])
	}
	return checks
}

func (s *Service) observe(result *EvaluationResult, elapsed time.Duration) {
	s.metrics.IncrementOutcome(result.Approved, result.RiskLevel.String())
	for _, check := range result.Checks {
		s.metrics.IncrementCheck(string(check.Kind), string(check.Status))
	}
	s.metrics.ObserveEvaluateLatency(elapsed)
}
