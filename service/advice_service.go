package service

import (
	"fmt"

	"emi-planner/amortization"
	"emi-planner/catalog"
	"emi-planner/config"
	"emi-planner/domain"
)

// AdviceService turns a projection into repayment suggestions.
type AdviceService struct {
	catalog *catalog.Catalog
	limits  config.LimitsConfig
}

// NewAdviceService creates an AdviceService. A nil catalog gives generic
// refinancing advice.
func NewAdviceService(c *catalog.Catalog, limits config.LimitsConfig) *AdviceService {
	return &AdviceService{catalog: c, limits: limits}
}

// Advise compares the custom monthly payment, if any, against the standard
// EMI and checks the rate against the cheapest available scheme.
func (s *AdviceService) Advise(p amortization.LoanParameters) ([]domain.Advice, error) {
	if err := checkLimits(s.limits, p); err != nil {
		return nil, err
	}
	res, err := amortization.ProjectBalanceCurve(p)
	if err != nil {
		return nil, err
	}

	advice := []domain.Advice{}
	if p.CustomMonthlyPayment != nil {
		if a, ok := paymentAdvice(p, res); ok {
			advice = append(advice, a)
		}
	}
	if p.AnnualRatePercent > RefinanceRateThreshold {
		advice = append(advice, s.refinanceAdvice(p))
	}
	return advice, nil
}

func paymentAdvice(p amortization.LoanParameters, res amortization.AmortizationResult) (domain.Advice, bool) {
	payment := *p.CustomMonthlyPayment
	emi := res.StandardEMI

	switch {
	case res.Status == amortization.StatusNonConvergent:
		return domain.Advice{
			Kind: domain.AdviceNeverRepaid,
			Message: fmt.Sprintf("Your payment of %s does not cover the monthly interest on %s. The loan will never be repaid at this level.",
				domain.FormatRupees(payment), domain.FormatRupees(res.CapitalizedPrincipal)),
		}, true
	case res.Status == amortization.StatusOutstanding:
		return domain.Advice{
			Kind: domain.AdviceUnderpayment,
			Message: fmt.Sprintf("Your payment %s is below the standard EMI of %s. You won't fully repay the loan in %d years; %s will remain outstanding.",
				domain.FormatRupees(payment), domain.FormatRupees(emi), p.TenureYears, remaining(res.FinalBalance)),
		}, true
	case payment > emi*OverpaymentFactor:
		end := (p.MoratoriumYears + p.TenureYears) * amortization.MonthsPerYear
		saved := roundTo2Decimals(res.TotalRepayment - res.TotalPaid)
		return domain.Advice{
			Kind: domain.AdviceOverpayment,
			Message: fmt.Sprintf("Great! Paying %s extra/month saves %s in interest and closes the loan %d months early.",
				domain.FormatRupees(payment-emi), domain.FormatRupees(saved), end-res.PayoffMonth),
		}, true
	}
	return domain.Advice{}, false
}

func (s *AdviceService) refinanceAdvice(p amortization.LoanParameters) domain.Advice {
	msg := "Consider refinancing. Government education loans often offer rates between 7-9%. Even 1% less saves significantly over the loan term."
	if s.catalog != nil {
		best := s.catalog.Cheapest()
		if best.InterestRate < p.AnnualRatePercent {
			msg = fmt.Sprintf("Consider refinancing. %s (%s) offers %.2f%%. Even 1%% less saves significantly over the loan term.",
				best.SchemeName, best.BankName, best.InterestRate)
		}
	}
	return domain.Advice{Kind: domain.AdviceRefinance, Message: msg}
}

func remaining(balance float64) string {
	if balance < 1 {
		return "less than ₹1"
	}
	return domain.FormatRupees(balance)
}
