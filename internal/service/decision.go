package service

import (
	"fmt"
	"math"
	"strings"

	"medclaim/internal/config"
	"medclaim/internal/domain"
)

// DecisionPolicy is the declared, inspectable rule table the engine applies.
// Validation-failure categories map to an explicit action instead of logic
// buried in the engine.
type DecisionPolicy struct {
	MissingDocumentAction  domain.PolicyAction
	DiscrepancyAction      domain.PolicyAction
	AutoApprovalLimit      float64
	ExcludedProcedureCodes []string
}

// PolicyFromConfig builds a DecisionPolicy from claim config, applying the
// defaults: missing documents reject, discrepancies go to review.
func PolicyFromConfig(cfg *config.ClaimConfig) DecisionPolicy {
	p := DecisionPolicy{
		MissingDocumentAction:  domain.ActionReject,
		DiscrepancyAction:      domain.ActionReview,
		AutoApprovalLimit:      cfg.AutoApprovalLimit,
		ExcludedProcedureCodes: cfg.ExcludedProcedureCodes,
	}
	if a := domain.PolicyAction(cfg.MissingDocumentAction); a == domain.ActionReview {
		p.MissingDocumentAction = a
	}
	if a := domain.PolicyAction(cfg.DiscrepancyAction); a == domain.ActionReject {
		p.DiscrepancyAction = a
	}
	return p
}

// DecisionEngine turns a validated bundle into an approve/reject verdict.
// Invariant: amount_approved + amount_rejected always equals the total
// claimed across all bill records.
type DecisionEngine struct {
	policy DecisionPolicy
}

// NewDecisionEngine creates a DecisionEngine with the given policy.
func NewDecisionEngine(policy DecisionPolicy) *DecisionEngine {
	return &DecisionEngine{policy: policy}
}

// Policy returns the engine's rule table.
func (e *DecisionEngine) Policy() DecisionPolicy {
	return e.policy
}

// Decide applies the policy table to the bundle and its validation report.
func (e *DecisionEngine) Decide(bundle domain.ClaimBundle, report domain.ValidationReport) domain.Decision {
	total := totalClaimed(bundle)

	if !report.Valid() {
		return e.decideInvalid(report, total)
	}

	approved, rejected, reasons := e.partitionAmounts(bundle, total)

	if rejected == 0 {
		return domain.Decision{
			Status:         domain.StatusApproved,
			Reason:         "Claim meets all requirements",
			AmountApproved: approved,
			AmountRejected: 0,
		}
	}
	return domain.Decision{
		Status:         domain.StatusRejected,
		Reason:         "Partially rejected: " + strings.Join(reasons, "; "),
		AmountApproved: approved,
		AmountRejected: rejected,
	}
}

func (e *DecisionEngine) decideInvalid(report domain.ValidationReport, total float64) domain.Decision {
	action := domain.ActionReview
	var reasons []string

	if len(report.MissingDocuments) > 0 {
		kinds := make([]string, len(report.MissingDocuments))
		for i, k := range report.MissingDocuments {
			kinds[i] = string(k)
		}
		reasons = append(reasons, "Missing required documents: "+strings.Join(kinds, ", "))
		if e.policy.MissingDocumentAction == domain.ActionReject {
			action = domain.ActionReject
		}
	}
	if len(report.Discrepancies) > 0 {
		fields := make([]string, len(report.Discrepancies))
		for i, d := range report.Discrepancies {
			fields[i] = d.Field
		}
		reasons = append(reasons, "Data discrepancies found: "+strings.Join(fields, ", "))
		if e.policy.DiscrepancyAction == domain.ActionReject {
			action = domain.ActionReject
		}
	}

	status := domain.StatusNeedsReview
	if action == domain.ActionReject {
		status = domain.StatusRejected
	}
	return domain.Decision{
		Status:         status,
		Reason:         strings.Join(reasons, "; "),
		AmountApproved: 0,
		AmountRejected: total,
	}
}

// partitionAmounts splits the claimed total into approved and rejected
// sub-amounts. Bills carrying an excluded procedure code are rejected in
// full; the approved remainder is then capped at the auto-approval limit.
func (e *DecisionEngine) partitionAmounts(bundle domain.ClaimBundle, total float64) (approved, rejected float64, reasons []string) {
	for _, r := range bundle {
		if r.Bill == nil {
			continue
		}
		if code, ok := e.excludedCode(r.Bill); ok {
			rejected += r.Bill.TotalAmount
			reasons = append(reasons, fmt.Sprintf("rule excluded_procedure_code: code %s on %s", code, r.FileName))
			continue
		}
		approved += r.Bill.TotalAmount
	}

	if limit := e.policy.AutoApprovalLimit; limit > 0 && approved > limit {
		reasons = append(reasons, fmt.Sprintf("rule auto_approval_limit: claimed amount exceeds %.2f", limit))
		approved = limit
	}

	approved = round2(approved)
	rejected = round2(total - approved)
	return approved, rejected, reasons
}

func (e *DecisionEngine) excludedCode(bill *domain.BillFields) (string, bool) {
	for _, code := range bill.ProcedureCodes {
		for _, excluded := range e.policy.ExcludedProcedureCodes {
			if strings.EqualFold(code, excluded) {
				return code, true
			}
		}
	}
	return "", false
}

func totalClaimed(bundle domain.ClaimBundle) float64 {
	var total float64
	for _, r := range bundle {
		if r.Bill != nil {
			total += r.Bill.TotalAmount
		}
	}
	return round2(total)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
