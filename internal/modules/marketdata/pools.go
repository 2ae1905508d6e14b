// Package marketdata turns yield-aggregator pool snapshots into the daily
// return parameters the simulator samples from.
package marketdata

import (
	"regexp"
	"sort"

	"github.com/aristath/portfolio-sim/internal/modules/simulation"
)

// Pool is one yield pool as published by a yield aggregator
type Pool struct {
	Pool      string   `json:"pool"` // Unique ID
	Chain     string   `json:"chain"`
	Project   string   `json:"project"` // Slug, e.g. "aave-v3"
	Symbol    string   `json:"symbol"`
	TVLUsd    float64  `json:"tvlUsd"`
	APY       *float64 `json:"apy"` // Percent; null when the aggregator has none
	APYBase   *float64 `json:"apyBase,omitempty"`
	APYReward *float64 `json:"apyReward,omitempty"`
}

// MajorChains are preferred when several pools of a project qualify
var MajorChains = []string{"Ethereum", "Arbitrum", "Optimism", "Polygon", "Base"}

var stableSymbol = regexp.MustCompile(`(?i)(USD|DAI|EUR)`)

func isMajorChain(chain string) bool {
	for _, c := range MajorChains {
		if c == chain {
			return true
		}
	}
	return false
}

// IndexByProject groups pools by their project slug
func IndexByProject(pools []Pool) map[string][]Pool {
	index := make(map[string][]Pool)
	for _, pool := range pools {
		index[pool.Project] = append(index[pool.Project], pool)
	}
	return index
}

// SelectPool picks the pool that represents a protocol for this profile.
//
// Low-risk and lending-minded profiles prefer stablecoin pools on major chains
// when the project has any. Among the remaining candidates the highest-TVL pool
// on a major chain wins, falling back to the highest-TVL pool anywhere.
func SelectPool(candidates []Pool, profile simulation.UserProfile) (Pool, bool) {
	if len(candidates) == 0 {
		return Pool{}, false
	}

	filtered := make([]Pool, len(candidates))
	copy(filtered, candidates)

	if profile.RiskLevel == simulation.RiskLow || profile.HasActivity("lending") {
		var stable []Pool
		for _, pool := range filtered {
			if stableSymbol.MatchString(pool.Symbol) && isMajorChain(pool.Chain) {
				stable = append(stable, pool)
			}
		}
		if len(stable) > 0 {
			filtered = stable
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].TVLUsd > filtered[j].TVLUsd
	})

	for _, pool := range filtered {
		if isMajorChain(pool.Chain) {
			return pool, true
		}
	}
	return filtered[0], true
}
