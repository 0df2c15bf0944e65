package domain

import "emi-planner/amortization"

// LoanResult summarizes the standard EMI for one set of loan parameters.
type LoanResult struct {
	CapitalizedPrincipal float64 `json:"capitalized_principal"`
	StandardEMI          float64 `json:"standard_emi"`
	TotalRepayment       float64 `json:"total_repayment"`
	TotalInterest        float64 `json:"total_interest"`
}

type CompareInput struct {
	A amortization.LoanParameters `json:"a"`
	B amortization.LoanParameters `json:"b"`
}

type ComparisonResponse struct {
	amortization.ComparisonResult
	Verdict string `json:"verdict"`
}

// ProjectionResponse carries the curve plus a readable warning when the
// custom payment does not clear the loan within tenure.
type ProjectionResponse struct {
	amortization.AmortizationResult
	Warning string `json:"warning,omitempty"`
}
