package amortization

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// Capitalize compounds principal annually over the moratorium. No payments
// are made, so the interest is added to the principal.
func Capitalize(principal, annualRatePercent float64, moratoriumYears int) float64 {
	rate := annualRatePercent / 100
	for y := 0; y < moratoriumYears; y++ {
		principal *= 1 + rate
	}
	return principal
}

// ComputeStandardEMI returns the equal monthly installment that repays the
// capitalized principal over tenureYears. A zero rate degrades to straight-line
// division.
func ComputeStandardEMI(principal, annualRatePercent float64, tenureYears, moratoriumYears int) (float64, error) {
	p := LoanParameters{
		Principal:         principal,
		AnnualRatePercent: annualRatePercent,
		TenureYears:       tenureYears,
		MoratoriumYears:   moratoriumYears,
	}
	if err := p.Validate(); err != nil {
		return 0, err
	}
	balance := Capitalize(principal, annualRatePercent, moratoriumYears)
	emi := installment(balance, monthlyRate(annualRatePercent), p.Months())
	if !finite(emi) || emi <= 0 {
		return 0, fmt.Errorf("%w: installment overflows for these parameters", ErrInvalidInput)
	}
	return emi, nil
}

// ProjectBalanceCurve walks the loan from origination to the end of tenure.
//
// Moratorium years compound annually. With the standard EMI the installment is
// recomputed at every repayment year from the remaining balance and remaining
// months, and one point is recorded per year. With a custom payment the fixed
// amount is applied every month and the curve is sampled every
// ChartSampleMonths.
func ProjectBalanceCurve(p LoanParameters) (AmortizationResult, error) {
	if err := p.Validate(); err != nil {
		return AmortizationResult{}, err
	}
	emi, err := ComputeStandardEMI(p.Principal, p.AnnualRatePercent, p.TenureYears, p.MoratoriumYears)
	if err != nil {
		return AmortizationResult{}, err
	}

	r := monthlyRate(p.AnnualRatePercent)
	months := p.Months()

	points := make([]BalancePoint, 0, 1+p.MoratoriumYears+months/ChartSampleMonths)
	balance := p.Principal
	points = append(points, newPoint(0, balance))
	for y := 1; y <= p.MoratoriumYears; y++ {
		balance *= 1 + p.AnnualRatePercent/100
		points = append(points, newPoint(y*MonthsPerYear, balance))
	}
	capitalized := balance
	start := p.MoratoriumYears * MonthsPerYear

	res := AmortizationResult{
		Name:                 p.Name,
		CapitalizedPrincipal: roundMoney(capitalized),
		StandardEMI:          roundMoney(emi),
		TotalRepayment:       roundMoney(emi * float64(months)),
		TotalInterest:        roundMoney(emi*float64(months) - p.Principal),
	}

	if p.CustomMonthlyPayment == nil {
		for y := 1; y <= p.TenureYears; y++ {
			payment := installment(balance, r, (p.TenureYears-y+1)*MonthsPerYear)
			for m := 0; m < MonthsPerYear; m++ {
				balance = balance*(1+r) - payment
			}
			points = append(points, newPoint(start+y*MonthsPerYear, balance))
		}
		res.Points = points
		res.TotalPaid = res.TotalRepayment
		res.FinalBalance = floorMoney(balance)
		res.PayoffMonth = start + months
		res.Status = StatusRepaid
		return res, nil
	}

	payment := *p.CustomMonthlyPayment
	res.CustomMonthlyPayment = roundMoney(payment)
	nonConvergent := payment <= capitalized*r

	payoff := 0
	paid := 0.0
	for m := 1; m <= months; m++ {
		balance = balance*(1+r) - payment
		if payoff == 0 {
			paid += payment
			if balance < settledBalance {
				payoff = start + m
				paid += balance
			}
		}
		if m%ChartSampleMonths == 0 {
			points = append(points, newPoint(start+m, balance))
		}
	}
	res.Points = points
	res.TotalPaid = roundMoney(paid)
	res.FinalBalance = floorMoney(balance)

	switch {
	case payoff != 0:
		res.Status = StatusRepaid
	case nonConvergent:
		res.Status = StatusNonConvergent
	default:
		res.Status = StatusOutstanding
		for m := months + 1; m <= MaxPayoffMonths; m++ {
			balance = balance*(1+r) - payment
			if balance < settledBalance {
				payoff = start + m
				break
			}
		}
	}
	res.PayoffMonth = payoff
	return res, nil
}

// CompareTwoSchemes projects both loans independently and aligns their curves
// by month offset. The scheme with the lower total repayment wins.
func CompareTwoSchemes(a, b LoanParameters) (ComparisonResult, error) {
	ra, err := ProjectBalanceCurve(a)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("scheme A: %w", err)
	}
	rb, err := ProjectBalanceCurve(b)
	if err != nil {
		return ComparisonResult{}, fmt.Errorf("scheme B: %w", err)
	}

	diff := decimal.NewFromFloat(ra.TotalRepayment).Sub(decimal.NewFromFloat(rb.TotalRepayment))
	winner := Tie
	switch diff.Sign() {
	case -1:
		winner = WinnerA
	case 1:
		winner = WinnerB
	}

	return ComparisonResult{
		A:                 ra,
		B:                 rb,
		Rows:              alignPoints(ra.Points, rb.Points),
		Winner:            winner,
		SavingsDifference: diff.Abs().InexactFloat64(),
	}, nil
}

// alignPoints merges two month-ordered curves. A curve with no point at a
// given month carries its last recorded balance forward, including past its end.
func alignPoints(a, b []BalancePoint) []ComparisonRow {
	rows := make([]ComparisonRow, 0, max(len(a), len(b)))
	var lastA, lastB float64
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var month int
		switch {
		case j >= len(b) || (i < len(a) && a[i].Month < b[j].Month):
			month = a[i].Month
		default:
			month = b[j].Month
		}
		if i < len(a) && a[i].Month == month {
			lastA = a[i].Balance
			i++
		}
		if j < len(b) && b[j].Month == month {
			lastB = b[j].Balance
			j++
		}
		rows = append(rows, ComparisonRow{
			Label:    PeriodLabel(month),
			Month:    month,
			BalanceA: lastA,
			BalanceB: lastB,
		})
	}
	return rows
}

// PeriodLabel formats a month offset as "4y" or "4y 3m".
func PeriodLabel(month int) string {
	years, rem := month/MonthsPerYear, month%MonthsPerYear
	if rem == 0 {
		return fmt.Sprintf("%dy", years)
	}
	return fmt.Sprintf("%dy %dm", years, rem)
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / MonthsPerYear
}

func installment(balance, r float64, months int) float64 {
	if r == 0 {
		return balance / float64(months)
	}
	f := math.Pow(1+r, float64(months))
	return balance * r * f / (f - 1)
}

func newPoint(month int, balance float64) BalancePoint {
	return BalancePoint{
		Label:   PeriodLabel(month),
		Month:   month,
		Balance: floorMoney(balance),
	}
}

func floorMoney(v float64) float64 {
	return roundMoney(math.Max(0, v))
}

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
