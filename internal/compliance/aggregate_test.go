package compliance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func outcome(kind CheckKind, status CheckStatus, action string) CheckOutcome {
	return CheckOutcome{Kind: kind, Status: status, Message: "m", RequiredAction: action}
}

func allPassed() []CheckOutcome {
	checks := make([]CheckOutcome, 0, len(checkOrder))
	for _, kind := range checkOrder {
		checks = append(checks, outcome(kind, StatusPassed, ""))
	}
	return checks
}

func TestCombineAllPassed(t *testing.T) {
	result := Combine(allPassed(), time.Now())
	assert.True(t, result.Approved)
	assert.Equal(t, RiskLow, result.RiskLevel)
	assert.Empty(t, result.RecommendedActions)
	assert.Len(t, result.Checks, 5)
}

func TestCombineEscalation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(checks []CheckOutcome)
		wantRisk RiskLevel
		approved bool
	}{
		{
			name: "failed verification is critical",
			mutate: func(checks []CheckOutcome) {
				checks[0] = outcome(KindVerificationLevel, StatusFailed, "complete verification")
			},
			wantRisk: RiskCritical,
		},
		{
			name: "failed sanctions is critical",
			mutate: func(checks []CheckOutcome) {
				checks[2] = outcome(KindSanctionsScreening, StatusFailed, "contact compliance")
			},
			wantRisk: RiskCritical,
		},
		{
			name: "failed transfer limit is high",
			mutate: func(checks []CheckOutcome) {
				checks[1] = outcome(KindTransferLimit, StatusFailed, "reduce the amount")
			},
			wantRisk: RiskHigh,
		},
		{
			name: "failed chain restriction is high",
			mutate: func(checks []CheckOutcome) {
				checks[3] = outcome(KindChainRestriction, StatusFailed, "upgrade verification tier")
			},
			wantRisk: RiskHigh,
		},
		{
			name: "failed velocity is high",
			mutate: func(checks []CheckOutcome) {
				checks[4] = outcome(KindVelocity, StatusFailed, "wait before retrying")
			},
			wantRisk: RiskHigh,
		},
		{
			name: "warning only is medium",
			mutate: func(checks []CheckOutcome) {
				checks[3] = outcome(KindChainRestriction, StatusWarning, "")
			},
			wantRisk: RiskMedium,
			approved: true,
		},
		{
			name: "critical never downgrades",
			mutate: func(checks []CheckOutcome) {
				checks[2] = outcome(KindSanctionsScreening, StatusFailed, "contact compliance")
				checks[4] = outcome(KindVelocity, StatusFailed, "wait before retrying")
				checks[3] = outcome(KindChainRestriction, StatusWarning, "")
			},
			wantRisk: RiskCritical,
		},
		{
			name: "high never downgrades to medium",
			mutate: func(checks []CheckOutcome) {
				checks[1] = outcome(KindTransferLimit, StatusFailed, "reduce the amount")
				checks[3] = outcome(KindChainRestriction, StatusWarning, "")
			},
			wantRisk: RiskHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checks := allPassed()
			tt.mutate(checks)
			result := Combine(checks, time.Now())
			assert.Equal(t, tt.wantRisk, result.RiskLevel)
			assert.Equal(t, tt.approved, result.Approved)

			// Approval equivalence: approved iff no failed check.
			failed := false
			for _, c := range result.Checks {
				if c.Status == StatusFailed {
					failed = true
				}
			}
			assert.Equal(t, !failed, result.Approved)
		})
	}
}

func TestCombineActionsKeepOrderAndDuplicates(t *testing.T) {
	checks := allPassed()
	checks[1] = outcome(KindTransferLimit, StatusFailed, "upgrade verification tier")
	checks[3] = outcome(KindChainRestriction, StatusFailed, "upgrade verification tier")
	checks[4] = outcome(KindVelocity, StatusWarning, "wait before retrying")

	result := Combine(checks, time.Now())
	assert.Equal(t, []string{
		"upgrade verification tier",
		"upgrade verification tier",
		"wait before retrying",
	}, result.RecommendedActions)
}

func TestRiskLevelOrdering(t *testing.T) {
	assert.True(t, RiskLow < RiskMedium)
	assert.True(t, RiskMedium < RiskHigh)
	assert.True(t, RiskHigh < RiskCritical)
}

func TestFaultResult(t *testing.T) {
	result := FaultResult(time.Now())
	assert.False(t, result.Approved)
	assert.Equal(t, RiskCritical, result.RiskLevel)
	assert.Len(t, result.Checks, 1)
	assert.Equal(t, KindEvaluation, result.Checks[0].Kind)
	assert.Equal(t, "compliance check failed, please retry or contact support", result.Checks[0].Message)
}
