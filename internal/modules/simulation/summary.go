package simulation

import (
	"sort"

	"github.com/aristath/portfolio-sim/pkg/formulas"
)

// Summarize aggregates final portfolio values. It copies and sorts the input.
//
// Without any values the degenerate summary is returned: every value field
// equals the fund, the spread is zero and NumSimulations is 0, so callers can
// tell "nothing was simulated" apart from a failure.
func Summarize(fund float64, finalValues []float64, killSwitchTriggers int) Summary {
	if len(finalValues) == 0 {
		return Summary{
			MeanFinalValue:   fund,
			MedianFinalValue: fund,
			StdDevFinalValue: 0,
			Percentile5th:    fund,
			Percentile95th:   fund,
			NumSimulations:   0,
		}
	}

	sorted := make([]float64, len(finalValues))
	copy(sorted, finalValues)
	sort.Float64s(sorted)

	return Summary{
		MeanFinalValue:     formulas.Mean(sorted),
		MedianFinalValue:   formulas.MedianSorted(sorted),
		StdDevFinalValue:   formulas.StdDev(sorted),
		Percentile5th:      formulas.QuantileSorted(sorted, 0.05),
		Percentile95th:     formulas.QuantileSorted(sorted, 0.95),
		NumSimulations:     len(sorted),
		KillSwitchTriggers: killSwitchTriggers,
	}
}

// summarizeTrials splits trials into values and trigger count for Summarize
func summarizeTrials(fund float64, trials []Trial) Summary {
	values := make([]float64, len(trials))
	triggers := 0
	for i, trial := range trials {
		values[i] = trial.FinalValue
		if trial.KillSwitchTriggered {
			triggers++
		}
	}
	return Summarize(fund, values, triggers)
}
