package service

import (
	"github.com/sirupsen/logrus"

	"emi-planner/amortization"
	"emi-planner/catalog"
)

type CatalogService struct {
	catalog *catalog.Catalog
	log     *logrus.Logger
}

func NewCatalogService(c *catalog.Catalog, log *logrus.Logger) *CatalogService {
	return &CatalogService{catalog: c, log: log}
}

func (s *CatalogService) Schemes() []catalog.Scheme {
	return s.catalog.Schemes()
}

func (s *CatalogService) Degrees() []string {
	return s.catalog.Degrees()
}

func (s *CatalogService) Universities(query string) []catalog.University {
	return s.catalog.SearchUniversities(query)
}

// Match ranks the cheapest eligible schemes for a student.
func (s *CatalogService) Match(input catalog.MatchInput) (catalog.MatchResult, error) {
	res, err := s.catalog.Match(input)
	if err != nil {
		return catalog.MatchResult{}, err
	}
	s.log.WithFields(logrus.Fields{
		"tier":    res.Tier,
		"matches": len(res.Matches),
	}).Info("schemes matched")
	return res, nil
}

// Prefill returns sandbox loan parameters for the scheme with the given ID.
func (s *CatalogService) Prefill(schemeID string) (amortization.LoanParameters, error) {
	scheme, err := s.catalog.Scheme(schemeID)
	if err != nil {
		return amortization.LoanParameters{}, err
	}
	return catalog.Prefill(scheme), nil
}
