package cmd

import (
	"github.com/spf13/cobra"

	"emi-planner/amortization"
)

// loanFlags binds the loan parameters of one scheme to command flags.
type loanFlags struct {
	name       string
	rate       float64
	tenure     int
	moratorium int
	payment    float64
}

func (f *loanFlags) bind(cmd *cobra.Command, prefix string, withPayment bool) {
	fs := cmd.Flags()
	fs.StringVar(&f.name, prefix+"name", "", "Label shown in output")
	fs.Float64Var(&f.rate, prefix+"rate", 8.5, "Annual interest rate in percent")
	fs.IntVar(&f.tenure, prefix+"tenure", 10, "Repayment tenure in years")
	fs.IntVar(&f.moratorium, prefix+"moratorium", 4, "Moratorium in years")
	if withPayment {
		fs.Float64Var(&f.payment, prefix+"payment", 0, "Custom monthly payment (0 uses the standard EMI)")
	}
}

func (f *loanFlags) params(principal float64) amortization.LoanParameters {
	p := amortization.LoanParameters{
		Name:              f.name,
		Principal:         principal,
		AnnualRatePercent: f.rate,
		TenureYears:       f.tenure,
		MoratoriumYears:   f.moratorium,
	}
	if f.payment != 0 {
		pay := f.payment
		p.CustomMonthlyPayment = &pay
	}
	return p
}
