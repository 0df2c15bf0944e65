package domain

import (
	"encoding/json"
	"time"
)

// Calculation kinds recorded in history.
const (
	KindEMI        = "emi"
	KindProjection = "projection"
	KindCompare    = "compare"
)

// CalculationRecord is one served calculation. Request and Result hold the
// JSON documents exchanged with the caller.
type CalculationRecord struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}
