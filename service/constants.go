package service

const (
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	// Cache keys are "<prefix><kind>:<hash of request JSON>".
	cacheKeyPrefix = "emi:"

	// Payments above this multiple of the standard EMI earn an overpayment note.
	OverpaymentFactor = 1.2

	// Loans priced above this annual rate get a refinancing suggestion.
	RefinanceRateThreshold = 9.0

	defaultNameA = "Scheme A"
	defaultNameB = "Scheme B"
)
