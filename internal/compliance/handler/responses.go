package handler

import (
	"time"

	"cleargate/internal/compliance"
)

// EvaluateResponse is the HTTP response for POST /compliance/evaluate.
type EvaluateResponse struct {
	Approved           bool            `json:"approved"`
	RiskLevel          string          `json:"risk_level"`
	Checks             []CheckResponse `json:"checks"`
	RecommendedActions []string        `json:"recommended_actions"`
	EvaluatedAt        time.Time       `json:"evaluated_at"`
}

// CheckResponse is one rule outcome in the response.
type CheckResponse struct {
	Kind           string `json:"kind"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	Detail         string `json:"detail,omitempty"`
	RequiredAction string `json:"required_action,omitempty"`
}

// FromResult converts a domain EvaluationResult to an HTTP response.
func FromResult(result *compliance.EvaluationResult) *EvaluateResponse {
	checks := make([]CheckResponse, 0, len(result.Checks))
	for _, c := range result.Checks {
		checks = append(checks, CheckResponse{
			Kind:           string(c.Kind),
			Status:         string(c.Status),
			Message:        c.Message,
			Detail:         c.Detail,
			RequiredAction: c.RequiredAction,
		})
	}
	actions := result.RecommendedActions
	if actions == nil {
		actions = []string{}
	}
	return &EvaluateResponse{
		Approved:           result.Approved,
		RiskLevel:          result.RiskLevel.String(),
		Checks:             checks,
		RecommendedActions: actions,
		EvaluatedAt:        result.EvaluatedAt,
	}
}
