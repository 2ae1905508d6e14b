// Package strategy evaluates a proposed protocol allocation against pool data
// and reports the Monte Carlo outcome to the caller.
package strategy

import (
	"errors"

	"github.com/aristath/portfolio-sim/internal/modules/simulation"
)

var (
	// ErrEmptyStrategy is returned for strategies without allocations
	ErrEmptyStrategy = errors.New("strategy has no allocations")
	// ErrInvalidAllocation is returned for negative or NaN weights
	ErrInvalidAllocation = errors.New("invalid allocation weight")
	// ErrNoMarketData is returned when no allocation could be matched to pool data
	ErrNoMarketData = errors.New("no market data for any allocation")
)

// Strategy is a proposed split of the fund across protocols
type Strategy struct {
	Allocations []simulation.Allocation `json:"allocations"`
}

// TotalWeight sums the allocation weights
func (s Strategy) TotalWeight() float64 {
	var total float64
	for _, a := range s.Allocations {
		total += a.WeightPct
	}
	return total
}

// Report is the evaluation returned for a strategy
type Report struct {
	RunID             string             `json:"run_id"`
	Strategy          Strategy           `json:"strategy"`
	SimulationSummary simulation.Summary `json:"simulation_summary"`
	ProtocolsNotFound []string           `json:"protocols_not_found,omitempty"`
	Warnings          []string           `json:"warnings,omitempty"`
}
