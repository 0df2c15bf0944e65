package service

import (
	"fmt"

	"emi-planner/amortization"
	"emi-planner/domain"
)

// Verdict renders the outcome of a comparison as one sentence.
func Verdict(c amortization.ComparisonResult) string {
	nameA, nameB := c.A.Name, c.B.Name
	if nameA == "" {
		nameA = defaultNameA
	}
	if nameB == "" {
		nameB = defaultNameB
	}

	switch c.Winner {
	case amortization.WinnerA:
		return fmt.Sprintf("%s saves %s compared to %s over the life of the loan",
			nameA, domain.FormatRupees(c.SavingsDifference), nameB)
	case amortization.WinnerB:
		return fmt.Sprintf("%s saves %s compared to %s over the life of the loan",
			nameB, domain.FormatRupees(c.SavingsDifference), nameA)
	}
	return fmt.Sprintf("%s and %s cost the same over the life of the loan", nameA, nameB)
}
