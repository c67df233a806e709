package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"cleargate/internal/compliance"
	"cleargate/pkg/domainerrors"
)

// EvaluateRequest is the HTTP request body for POST /compliance/evaluate.
type EvaluateRequest struct {
	Amount           string `json:"amount"`
	Asset            string `json:"asset"`
	DestinationChain int64  `json:"destination_chain"`
	Recipient        string `json:"recipient"`
	Actor            string `json:"actor"`

	// Parsed values (populated by Validate)
	parsedAmount decimal.Decimal
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *EvaluateRequest) Validate() error {
	if r == nil {
		return domainerrors.New(domainerrors.CodeBadRequest, "request body is required")
	}

	r.Amount = strings.TrimSpace(r.Amount)
	if r.Amount == "" {
		return domainerrors.New(domainerrors.CodeValidation, "amount is required")
	}
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return domainerrors.New(domainerrors.CodeValidation, "amount must be a decimal number")
	}
	if !amount.IsPositive() {
		return domainerrors.New(domainerrors.CodeValidation, "amount must be positive")
	}
	r.parsedAmount = amount

	r.Recipient = strings.TrimSpace(r.Recipient)
	if r.Recipient == "" {
		return domainerrors.New(domainerrors.CodeValidation, "recipient is required")
	}
	r.Actor = strings.TrimSpace(r.Actor)
	if r.Actor == "" {
		return domainerrors.New(domainerrors.CodeValidation, "actor is required")
	}
	if r.DestinationChain < 0 {
		return domainerrors.New(domainerrors.CodeValidation, "destination_chain must not be negative")
	}
	return nil
}

// ToDomain builds the engine request from validated fields.
func (r *EvaluateRequest) ToDomain() compliance.EvaluationRequest {
	return compliance.EvaluationRequest{
		Amount:           r.parsedAmount,
		Asset:            strings.TrimSpace(r.Asset),
		DestinationChain: r.DestinationChain,
		Recipient:        r.Recipient,
		Actor:            r.Actor,
	}
}
