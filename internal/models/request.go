package models

import (
	"fmt"
	"strings"
)

// TF-IDF term weighting modes accepted by the ranking API.
const (
	WeightLog    = "log"
	WeightRaw    = "raw"
	WeightBinary = "binary"
)

// BM25 parameter bounds enforced by the ranking API.
const (
	MinK1     = 0.5
	MaxK1     = 2.0
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// SearchRequest is a search sent to the ranking API. TopK of nil asks the
// backend for its full ranking per model.
type SearchRequest struct {
	Query       string  `json:"query"`
	K1          float64 `json:"k1"`
	B           float64 `json:"b"`
	TFIDFWeight string  `json:"tfIdfWeight"`
	TopK        *int    `json:"topK,omitempty"`
}

// Validate ensures the request has a non-blank query and clamps the model
// parameters into the ranges the backend accepts, filling defaults for
// zero values.
func (r *SearchRequest) Validate() error {
	if strings.TrimSpace(r.Query) == "" {
		return fmt.Errorf("query cannot be empty")
	}
	if r.K1 == 0 {
		r.K1 = DefaultK1
	}
	if r.K1 < MinK1 {
		r.K1 = MinK1
	}
	if r.K1 > MaxK1 {
		r.K1 = MaxK1
	}
	if r.B < 0 {
		r.B = 0
	}
	if r.B > 1 {
		r.B = 1
	}
	switch r.TFIDFWeight {
	case WeightLog, WeightRaw, WeightBinary:
	case "":
		r.TFIDFWeight = WeightLog
	default:
		return fmt.Errorf("unknown tf-idf weight %q", r.TFIDFWeight)
	}
	return nil
}
