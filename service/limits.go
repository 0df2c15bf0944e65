package service

import (
	"fmt"

	"emi-planner/amortization"
	"emi-planner/config"
)

// checkLimits applies the service input domains on top of the engine's own
// validation. Every entry point that runs a projection goes through it.
func checkLimits(l config.LimitsConfig, p amortization.LoanParameters) error {
	if err := p.Validate(); err != nil {
		return err
	}
	switch {
	case p.Principal < l.MinPrincipal || p.Principal > l.MaxPrincipal:
		return fmt.Errorf("%w: principal must be between %.0f and %.0f", amortization.ErrInvalidInput, l.MinPrincipal, l.MaxPrincipal)
	case p.AnnualRatePercent > l.MaxRatePercent:
		return fmt.Errorf("%w: interest rate exceeds the maximum of %.2f%%", amortization.ErrInvalidInput, l.MaxRatePercent)
	case p.TenureYears < l.MinTenureYears || p.TenureYears > l.MaxTenureYears:
		return fmt.Errorf("%w: tenure must be between %d and %d years", amortization.ErrInvalidInput, l.MinTenureYears, l.MaxTenureYears)
	case p.MoratoriumYears > l.MaxMoratoriumYears:
		return fmt.Errorf("%w: moratorium exceeds the maximum of %d years", amortization.ErrInvalidInput, l.MaxMoratoriumYears)
	}
	if p.CustomMonthlyPayment != nil {
		pay := *p.CustomMonthlyPayment
		if pay < l.MinMonthlyPayment || pay > l.MaxMonthlyPayment {
			return fmt.Errorf("%w: monthly payment must be between %.0f and %.0f", amortization.ErrInvalidInput, l.MinMonthlyPayment, l.MaxMonthlyPayment)
		}
	}
	return nil
}
