// Package simulation projects a multi-asset DeFi portfolio forward with a
// Monte Carlo engine and summarises the distribution of terminal values.
package simulation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// RiskLevel selects the volatility and return scaling applied to every asset
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// UserProfile is the investor profile a strategy is built for.
// Only Fund, RiskLevel, TimeHorizon and KillSwitch drive the simulation.
type UserProfile struct {
	Fund                float64   `json:"fund"`
	MaxExposure         float64   `json:"max_exposure"`
	RiskLevel           RiskLevel `json:"risk_level"`
	TimeHorizon         float64   `json:"time_horizon"` // months
	KillSwitch          float64   `json:"kill_switch"`  // e.g. -0.1 for -10%
	InvestmentGoals     []string  `json:"investment_goals,omitempty"`
	PreferredActivities []string  `json:"preferred_activities,omitempty"`
}

// Validate checks the full profile. The simulator itself is more lenient.
func (p UserProfile) Validate() error {
	if !(p.Fund > 0) {
		return fmt.Errorf("fund must be positive, got %v", p.Fund)
	}
	if p.MaxExposure < 0 || p.MaxExposure > 1 || math.IsNaN(p.MaxExposure) {
		return fmt.Errorf("max_exposure must be within [0, 1], got %v", p.MaxExposure)
	}
	if !(p.TimeHorizon > 0) {
		return fmt.Errorf("time_horizon must be positive, got %v", p.TimeHorizon)
	}
	if !(p.KillSwitch < 0) {
		return fmt.Errorf("kill_switch must be negative, got %v", p.KillSwitch)
	}
	switch p.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh, "":
	default:
		return fmt.Errorf("unknown risk_level %q", p.RiskLevel)
	}
	return nil
}

// HasActivity reports whether the profile lists the given preferred activity
func (p UserProfile) HasActivity(activity string) bool {
	for _, a := range p.PreferredActivities {
		if strings.EqualFold(a, activity) {
			return true
		}
	}
	return false
}

// Allocation is a share of the fund assigned to one protocol
type Allocation struct {
	Protocol  string  `json:"protocol"`
	WeightPct float64 `json:"weight_pct"` // 0.45 for 45%
}

// AssetParameters are the daily return statistics sampled for one protocol
type AssetParameters struct {
	DailyReturnMean   float64 `json:"daily_return_mean"`
	DailyReturnStdDev float64 `json:"daily_return_stddev"`
	SourceAPY         float64 `json:"source_apy,omitempty"` // APY in percent the parameters were derived from
}

// MarketParameters maps protocol identifiers to their daily return statistics
type MarketParameters map[string]AssetParameters

// Lookup finds the parameters for a protocol, trying the identifier as given
// and then its slug.
func (m MarketParameters) Lookup(protocol string) (AssetParameters, bool) {
	if params, ok := m[protocol]; ok {
		return params, true
	}
	params, ok := m[ProtocolSlug(protocol)]
	return params, ok
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	slugStrip     = strings.NewReplacer(".", "", ":", "")
)

// ProtocolSlug normalises a protocol display name into the identifier used by
// yield aggregators: "Aave V3" -> "aave-v3", "Curve.fi" -> "curvefi".
func ProtocolSlug(name string) string {
	slug := whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
	return slugStrip.Replace(slug)
}

// Summary is the statistical digest of a simulation run, in the fund's currency
type Summary struct {
	MeanFinalValue     float64 `json:"mean_final_value"`
	MedianFinalValue   float64 `json:"median_final_value"`
	StdDevFinalValue   float64 `json:"std_dev_final_value"`
	Percentile5th      float64 `json:"percentile_5th"`
	Percentile95th     float64 `json:"percentile_95th"`
	NumSimulations     int     `json:"num_simulations"`
	KillSwitchTriggers int     `json:"kill_switch_triggers"`
}

// KillSwitchRate returns the fraction of paths stopped by the kill switch
func (s Summary) KillSwitchRate() float64 {
	if s.NumSimulations == 0 {
		return 0
	}
	return float64(s.KillSwitchTriggers) / float64(s.NumSimulations)
}

// Trial is the outcome of one simulated path
type Trial struct {
	FinalValue          float64 `json:"final_value"`
	KillSwitchTriggered bool    `json:"kill_switch_triggered"`
	DaysSimulated       int     `json:"days_simulated"`
}

// Result is a full simulation run: summary plus every path in trial order
type Result struct {
	RunID   string  `json:"run_id"`
	Seed    uint64  `json:"seed"`
	Summary Summary `json:"summary"`
	Trials  []Trial `json:"trials"`
}
