package simulation

// RiskScaling multiplies each asset's daily stddev and mean before sampling
type RiskScaling struct {
	Volatility float64
	MeanReturn float64
}

// ScalingFor returns the scaling for a risk level. Conservative profiles damp
// both expected return and variance; aggressive ones keep the modelled return
// and amplify variance. Unknown levels use the medium scaling.
func ScalingFor(level RiskLevel) RiskScaling {
	switch level {
	case RiskLow:
		return RiskScaling{Volatility: 0.6, MeanReturn: 0.8}
	case RiskHigh:
		return RiskScaling{Volatility: 1.8, MeanReturn: 1.0}
	default:
		return RiskScaling{Volatility: 1.0, MeanReturn: 0.8}
	}
}
