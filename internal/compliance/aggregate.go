package compliance

import "time"

// riskFloorFailed maps a failed check kind to the minimum risk level it
// forces. Identity and sanctions failures are compliance-critical; the rest
// escalate to High.
func riskFloorFailed(kind CheckKind) RiskLevel {
	switch kind {
	case KindVerificationLevel, KindSanctionsScreening, KindEvaluation:
		return RiskCritical
	default:
		return RiskHigh
	}
}

func maxRisk(a, b RiskLevel) RiskLevel {
	if b > a {
		return b
	}
	return a
}

// Combine folds check outcomes into one result. The fold is deterministic
// and monotonic: risk only ever escalates (Low < Medium < High < Critical),
// approval requires zero failed outcomes, and recommended actions are the
// ordered, non-deduplicated concatenation of the outcomes' required actions.
func Combine(checks []CheckOutcome, evaluatedAt time.Time) *EvaluationResult {
	risk := RiskLow
	approved := true
	var actions []string

	for _, check := range checks {
		switch check.Status {
		case StatusFailed:
			approved = false
			risk = maxRisk(risk, riskFloorFailed(check.Kind))
		case StatusWarning:
			risk = maxRisk(risk, RiskMedium)
		}
		if check.Status != StatusPassed && check.RequiredAction != "" {
			actions = append(actions, check.RequiredAction)
		}
	}

	return &EvaluationResult{
		Approved:           approved,
		Checks:             checks,
		RiskLevel:          risk,
		RecommendedActions: actions,
		EvaluatedAt:        evaluatedAt,
	}
}

// FaultResult is the containment fallback for unexpected pipeline failures:
// a single synthesized check, Critical, not approved. Callers always receive
// a well-formed result with an explanation.
func FaultResult(evaluatedAt time.Time) *EvaluationResult {
	return Combine([]CheckOutcome{{
		Kind:    KindEvaluation,
		Status:  StatusFailed,
		Message: "compliance check failed, please retry or contact support",
	}}, evaluatedAt)
}
