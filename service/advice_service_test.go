package service

import (
	"errors"
	"strings"
	"testing"

	"emi-planner/amortization"
	"emi-planner/catalog"
	"emi-planner/config"
	"emi-planner/domain"
)

func TestAdvise(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	svc := NewAdviceService(c, config.DefaultLimits())

	cases := []struct {
		name     string
		payment  *float64
		rate     float64
		wantKind []domain.AdviceKind
		contains string
	}{
		{"standard plan", nil, 8.5, nil, ""},
		{"underpayment", ptr(10000), 8.5, []domain.AdviceKind{domain.AdviceUnderpayment}, "below the standard EMI of ₹13,746"},
		{"never repaid", ptr(5000), 8.5, []domain.AdviceKind{domain.AdviceNeverRepaid}, "never be repaid"},
		{"overpayment", ptr(20000), 8.5, []domain.AdviceKind{domain.AdviceOverpayment}, "Paying ₹6,254 extra/month"},
		{"close to emi", ptr(14000), 8.5, nil, ""},
		{"refinance", nil, 9.5, []domain.AdviceKind{domain.AdviceRefinance}, "SBI Scholar Loan (SBI) offers 8.15%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := sandboxLoan()
			p.AnnualRatePercent = tc.rate
			p.CustomMonthlyPayment = tc.payment

			got, err := svc.Advise(p)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tc.wantKind) {
				t.Fatalf("expected %d advice, got %+v", len(tc.wantKind), got)
			}
			for i, k := range tc.wantKind {
				if got[i].Kind != k {
					t.Errorf("advice %d: expected %s, got %s", i, k, got[i].Kind)
				}
			}
			if tc.contains != "" && !strings.Contains(got[0].Message, tc.contains) {
				t.Errorf("expected message to contain %q, got %q", tc.contains, got[0].Message)
			}
		})
	}
}

func TestAdvise_OverpaymentSavings(t *testing.T) {
	p := sandboxLoan()
	p.CustomMonthlyPayment = ptr(20000)

	got, err := NewAdviceService(nil, config.DefaultLimits()).Advise(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !strings.Contains(got[0].Message, "months early") {
		t.Errorf("unexpected advice %+v", got)
	}
}

func TestAdvise_GenericRefinanceWithoutCatalog(t *testing.T) {
	p := sandboxLoan()
	p.AnnualRatePercent = 12

	got, err := NewAdviceService(nil, config.DefaultLimits()).Advise(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || !strings.Contains(got[0].Message, "7-9%") {
		t.Errorf("unexpected advice %+v", got)
	}
}

func TestAdvise_InvalidInput(t *testing.T) {
	if _, err := NewAdviceService(nil, config.DefaultLimits()).Advise(amortization.LoanParameters{}); err == nil {
		t.Error("expected error for empty parameters")
	}
}

func TestAdvise_OutOfLimits(t *testing.T) {
	svc := NewAdviceService(nil, config.DefaultLimits())

	cases := []struct {
		name  string
		input amortization.LoanParameters
	}{
		{"huge moratorium", amortization.LoanParameters{Principal: 800000, TenureYears: 10, MoratoriumYears: 3000000}},
		{"huge tenure", amortization.LoanParameters{Principal: 800000, TenureYears: 400}},
		{"tiny principal", amortization.LoanParameters{Principal: 50, TenureYears: 10}},
		{"payment too large", amortization.LoanParameters{Principal: 800000, TenureYears: 10, CustomMonthlyPayment: ptr(90000)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Advise(tc.input); !errors.Is(err, amortization.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAdvise_PaymentJustBelowExactEMI(t *testing.T) {
	svc := NewAdviceService(nil, config.DefaultLimits())

	// The exact EMI for the sandbox loan is 13746.1317; both payments fall short of it.
	for _, payment := range []float64{13746.13, 13746.1316} {
		p := sandboxLoan()
		p.CustomMonthlyPayment = ptr(payment)

		got, err := svc.Advise(p)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Kind != domain.AdviceUnderpayment {
			t.Fatalf("payment %v: expected underpayment advice, got %+v", payment, got)
		}
		if !strings.Contains(got[0].Message, "less than ₹1 will remain") {
			t.Errorf("payment %v: unexpected message %q", payment, got[0].Message)
		}
	}
}

func TestVerdict(t *testing.T) {
	cases := []struct {
		name string
		in   amortization.ComparisonResult
		want string
	}{
		{
			"b wins with default names",
			amortization.ComparisonResult{Winner: amortization.WinnerB, SavingsDifference: 1500},
			"Scheme B saves ₹1,500 compared to Scheme A over the life of the loan",
		},
		{
			"tie",
			amortization.ComparisonResult{
				A:      amortization.AmortizationResult{Name: "SBI"},
				B:      amortization.AmortizationResult{Name: "PNB"},
				Winner: amortization.Tie,
			},
			"SBI and PNB cost the same over the life of the loan",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Verdict(tc.in); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}
