package repository

import (
	"time"

	"emi-planner/domain"
)

// LoanRepository stores the history of served calculations.
type LoanRepository interface {
	Save(record domain.CalculationRecord) error
	// List returns the most recent records first.
	List(limit int) ([]domain.CalculationRecord, error)
	// DeleteBefore removes records created before cutoff and reports how many.
	DeleteBefore(cutoff time.Time) (int64, error)
}
