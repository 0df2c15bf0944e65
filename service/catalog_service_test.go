package service

import (
	"errors"
	"testing"

	"emi-planner/catalog"
)

func newCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return NewCatalogService(c, testLogger())
}

func TestCatalogService_Prefill(t *testing.T) {
	svc := newCatalogService(t)

	p, err := svc.Prefill("5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.AnnualRatePercent != 9.5 || p.MoratoriumYears != 5 || p.Principal != catalog.PrefillPrincipal {
		t.Errorf("unexpected parameters %+v", p)
	}

	if _, err := svc.Prefill("404"); !errors.Is(err, catalog.ErrSchemeNotFound) {
		t.Errorf("expected ErrSchemeNotFound, got %v", err)
	}
}

func TestCatalogService_Match(t *testing.T) {
	svc := newCatalogService(t)

	res, err := svc.Match(catalog.MatchInput{University: "BITS Pilani", Degree: "MBA", LoanAmount: 1500000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tier != "A" || len(res.Matches) != catalog.MaxMatches {
		t.Errorf("unexpected result %+v", res)
	}

	if _, err := svc.Match(catalog.MatchInput{}); !errors.Is(err, catalog.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}
