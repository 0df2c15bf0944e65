package domain

type AdviceKind string

const (
	AdviceUnderpayment AdviceKind = "underpayment"
	AdviceNeverRepaid  AdviceKind = "never_repaid"
	AdviceOverpayment  AdviceKind = "overpayment"
	AdviceRefinance    AdviceKind = "refinance"
)

type Advice struct {
	Kind    AdviceKind `json:"kind"`
	Message string     `json:"message"`
}
