package agent

import (
	"context"
	"fmt"
	"strings"
)

// Simulator is the offline assistant backend used when no live agent
// is configured (local development, tests). Its answers are
// deterministic keyword matches against the synthetic dataset, and
// every exchange carries the Simulated flag so callers can tell
// canned output from real backend output.
type Simulator struct{}

// NewSimulator creates the offline assistant backend.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Provider returns the backend name.
func (s *Simulator) Provider() string {
	return "simulator"
}

// Ask returns a canned response matched on question keywords.
func (s *Simulator) Ask(ctx context.Context, question, contextTag string) (*Exchange, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Err: err}
	}

	lower := strings.ToLower(question)
	var response string

	switch {
	case strings.Contains(lower, "risk") && strings.Contains(lower, "supplier"):
		response = "Based on the supplier risk assessment, SUP001 (Arctic Components) " +
			"has a composite risk score of 0.12 (Low Risk) with excellent supply " +
			"continuity at 0.92. This supplier is recommended for strategic partnership."
	case strings.Contains(lower, "maverick") || strings.Contains(lower, "off-contract"):
		response = "Current maverick spend is approximately $1.2M (15% of total " +
			"procurement). The highest maverick spend is with non-preferred suppliers " +
			"SUP005 and SUP010. Recommend implementing contract compliance monitoring."
	case strings.Contains(lower, "consolidat"):
		response = "There are 6 active consolidation scenarios with total projected " +
			"savings of $1.55M. The highest ROI scenario is 'NA Fastener Consolidation' " +
			"(CONS001) at 533% ROI with projected savings of $285K."
	case strings.Contains(lower, "fda") || strings.Contains(lower, "compliance"):
		response = "FDA compliance requires audit trails for firmware updates, " +
			"electronic signatures, and verification of access controls. Parts must " +
			"meet 21 CFR Part 11 requirements for electronic records."
	default:
		response = fmt.Sprintf("I can help you with questions about parts, suppliers, "+
			"inventory, compliance, procurement, and consolidation scenarios. "+
			"Your question was: %q", question)
	}

	return &Exchange{
		Question:  question,
		Response:  response,
		Simulated: true,
	}, nil
}
