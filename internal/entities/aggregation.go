package entities

import (
	"github.com/KirkDiggler/pokedex-api/internal/errors"
)

// AggregationStatus is the terminal state of an aggregation run
type AggregationStatus string

const (
	AggregationReady  AggregationStatus = "READY"
	AggregationFailed AggregationStatus = "FAILED"
)

// AggregationResult is either Ready with the full ordered collection or
// Failed with a reason. A Failed result never carries Pokemon.
type AggregationResult struct {
	Status  AggregationStatus `json:"status"`
	Pokemon []*Pokemon        `json:"pokemon,omitempty"`

	// ErrorCode and Reason are set only when Status is FAILED
	ErrorCode errors.Code `json:"error_code,omitempty"`
	Reason    string      `json:"reason,omitempty"`

	err error
}

// Ready builds a successful result
func Ready(pokemon []*Pokemon) *AggregationResult {
	if pokemon == nil {
		pokemon = []*Pokemon{}
	}
	return &AggregationResult{
		Status:  AggregationReady,
		Pokemon: pokemon,
	}
}

// Failed builds a failed result from the error that caused it
func Failed(err error) *AggregationResult {
	if err == nil {
		err = errors.Internal("aggregation failed without a reason")
	}
	return &AggregationResult{
		Status:    AggregationFailed,
		ErrorCode: errors.GetCode(err),
		Reason:    err.Error(),
		err:       err,
	}
}

// IsReady reports whether the result carries data
func (r *AggregationResult) IsReady() bool {
	return r != nil && r.Status == AggregationReady
}

// Err returns the failure cause, nil for a Ready result. After a round trip
// through storage the cause is rebuilt from ErrorCode and Reason.
func (r *AggregationResult) Err() error {
	if r == nil || r.Status != AggregationFailed {
		return nil
	}
	if r.err != nil {
		return r.err
	}
	return errors.New(r.ErrorCode, r.Reason)
}
