// Package amortization computes EMIs, moratorium capitalization and balance
// curves for education loans.
//
// Every function in this package is pure: results are built fresh from the
// parameters on each call and nothing is shared between calls.
package amortization

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput is returned for non-positive principal or tenure,
	// negative moratorium or rate, and non-finite values.
	ErrInvalidInput = errors.New("invalid loan input")

	// ErrNonConvergentPayment means the custom payment does not exceed the
	// interest accruing each month, so the balance never decreases.
	ErrNonConvergentPayment = errors.New("loan will never be repaid at this payment level")

	// ErrOutstandingBalance means the custom payment amortizes the loan, but
	// not within the tenure.
	ErrOutstandingBalance = errors.New("loan is not repaid within tenure at this payment level")
)

const (
	MonthsPerYear = 12

	// ChartSampleMonths is the sampling step of custom-payment curves.
	ChartSampleMonths = 3

	// MaxPayoffMonths bounds the search for a payoff month past tenure.
	MaxPayoffMonths = 600

	// settledBalance is the largest balance still considered repaid (half a paisa).
	settledBalance = 0.005
)

// Status is the terminal state of a projected loan.
type Status string

const (
	StatusRepaid        Status = "repaid"
	StatusOutstanding   Status = "outstanding"
	StatusNonConvergent Status = "non_convergent"
)

// LoanParameters describes one loan. CustomMonthlyPayment, when set, replaces
// the standard EMI in projections.
type LoanParameters struct {
	Name                 string   `json:"name,omitempty"`
	Principal            float64  `json:"principal"`
	AnnualRatePercent    float64  `json:"annual_rate_percent"`
	TenureYears          int      `json:"tenure_years"`
	MoratoriumYears      int      `json:"moratorium_years"`
	CustomMonthlyPayment *float64 `json:"custom_monthly_payment,omitempty"`
}

// Validate reports the first invalid field, wrapped in ErrInvalidInput.
func (p LoanParameters) Validate() error {
	switch {
	case !finite(p.Principal) || p.Principal <= 0:
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, p.Principal)
	case !finite(p.AnnualRatePercent) || p.AnnualRatePercent < 0:
		return fmt.Errorf("%w: annual rate must not be negative, got %v", ErrInvalidInput, p.AnnualRatePercent)
	case p.TenureYears <= 0:
		return fmt.Errorf("%w: tenure must be positive, got %d", ErrInvalidInput, p.TenureYears)
	case p.MoratoriumYears < 0:
		return fmt.Errorf("%w: moratorium must not be negative, got %d", ErrInvalidInput, p.MoratoriumYears)
	}
	if p.CustomMonthlyPayment != nil {
		pay := *p.CustomMonthlyPayment
		if !finite(pay) || pay <= 0 {
			return fmt.Errorf("%w: custom monthly payment must be positive, got %v", ErrInvalidInput, pay)
		}
	}
	return nil
}

// Months returns the repayment period in months.
func (p LoanParameters) Months() int {
	return p.TenureYears * MonthsPerYear
}

// BalancePoint is the outstanding balance at a month offset from origination.
type BalancePoint struct {
	Label   string  `json:"label"`
	Month   int     `json:"month"`
	Balance float64 `json:"balance"`
}

// AmortizationResult is a projected balance curve and its derived totals.
// Money fields are rounded to two decimals.
type AmortizationResult struct {
	Name                 string         `json:"name,omitempty"`
	Points               []BalancePoint `json:"points"`
	CapitalizedPrincipal float64        `json:"capitalized_principal"`
	StandardEMI          float64        `json:"standard_emi"`
	TotalRepayment       float64        `json:"total_repayment"`
	TotalInterest        float64        `json:"total_interest"`
	CustomMonthlyPayment float64        `json:"custom_monthly_payment,omitempty"`
	TotalPaid            float64        `json:"total_paid"`
	FinalBalance         float64        `json:"final_balance"`
	PayoffMonth          int            `json:"payoff_month,omitempty"`
	Status               Status         `json:"status"`
}

// PaymentError returns ErrNonConvergentPayment or ErrOutstandingBalance
// (wrapped with detail) for the matching status, nil when repaid.
func (r AmortizationResult) PaymentError() error {
	switch r.Status {
	case StatusNonConvergent:
		return fmt.Errorf("%w: %.2f per month does not cover the interest accruing on %.2f",
			ErrNonConvergentPayment, r.CustomMonthlyPayment, r.CapitalizedPrincipal)
	case StatusOutstanding:
		return fmt.Errorf("%w: %.2f remains at the end of tenure", ErrOutstandingBalance, r.FinalBalance)
	}
	return nil
}

// Winner names the cheaper side of a comparison.
type Winner string

const (
	WinnerA Winner = "A"
	WinnerB Winner = "B"
	Tie     Winner = "tie"
)

// ComparisonRow pairs both balances at one month offset.
type ComparisonRow struct {
	Label    string  `json:"label"`
	Month    int     `json:"month"`
	BalanceA float64 `json:"balance_a"`
	BalanceB float64 `json:"balance_b"`
}

type ComparisonResult struct {
	A                 AmortizationResult `json:"a"`
	B                 AmortizationResult `json:"b"`
	Rows              []ComparisonRow    `json:"rows"`
	Winner            Winner             `json:"winner"`
	SavingsDifference float64            `json:"savings_difference"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
