package marketdata

import (
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/portfolio-sim/internal/modules/simulation"
	"github.com/aristath/portfolio-sim/pkg/formulas"
)

const (
	minAnnualAPY = -0.5
	maxAnnualAPY = 5.0
	// minDailyStdDev keeps the normal sampler well-defined
	minDailyStdDev = 1e-6
)

// Annual volatility buckets used until historical pool returns are available
const (
	volatilityStable       = 0.05
	volatilityStaking      = 0.40
	volatilityYieldFarming = 0.75
	volatilityDefault      = 0.60
)

// Resolution is the outcome of matching a strategy against pool data
type Resolution struct {
	Params            simulation.MarketParameters
	Allocations       []simulation.Allocation // allocations with market data, in input order
	ProtocolsNotFound []string
}

// Estimator derives daily return parameters from pool APYs
type Estimator struct {
	dailyReturnBias float64
	log             zerolog.Logger
}

// NewEstimator creates an estimator. dailyReturnBias is added to every
// estimated daily mean.
func NewEstimator(dailyReturnBias float64, log zerolog.Logger) *Estimator {
	return &Estimator{
		dailyReturnBias: dailyReturnBias,
		log:             log.With().Str("component", "market_estimator").Logger(),
	}
}

// Estimate converts a pool's APY into daily mean and stddev for the protocol slug.
// It returns false when the pool carries no APY.
func (e *Estimator) Estimate(slug string, pool Pool) (simulation.AssetParameters, bool) {
	if pool.APY == nil || math.IsNaN(*pool.APY) {
		return simulation.AssetParameters{}, false
	}

	annualAPY := *pool.APY / 100
	clamped := math.Max(minAnnualAPY, math.Min(annualAPY, maxAnnualAPY))

	mean := formulas.DailyRateFromAnnual(clamped) + e.dailyReturnBias
	stdDev := math.Max(formulas.DailyVolatility(AnnualVolatility(slug, pool.Symbol)), minDailyStdDev)

	return simulation.AssetParameters{
		DailyReturnMean:   mean,
		DailyReturnStdDev: stdDev,
		SourceAPY:         *pool.APY,
	}, true
}

// AnnualVolatility is a heuristic volatility for a protocol based on its slug
// and the pool's token symbol.
func AnnualVolatility(slug, symbol string) float64 {
	symbolLower := strings.ToLower(symbol)
	isStable := strings.Contains(symbolLower, "usd") ||
		strings.Contains(symbolLower, "dai") ||
		strings.Contains(symbolLower, "eur")

	switch {
	case isStable || containsAny(slug, "lending", "aave", "compound"):
		return volatilityStable
	case containsAny(slug, "staking", "lido", "rocket-pool") || strings.Contains(symbolLower, "eth"):
		return volatilityStaking
	case containsAny(slug, "yield-farming", "convex", "curve"):
		return volatilityYieldFarming
	default:
		return volatilityDefault
	}
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Build resolves market parameters for every allocation it can match to a pool
func (e *Estimator) Build(
	profile simulation.UserProfile,
	allocations []simulation.Allocation,
	pools []Pool,
) Resolution {
	byProject := IndexByProject(pools)
	resolution := Resolution{Params: simulation.MarketParameters{}}

	for _, alloc := range allocations {
		slug := simulation.ProtocolSlug(alloc.Protocol)

		pool, found := SelectPool(byProject[slug], profile)
		var params simulation.AssetParameters
		if found {
			params, found = e.Estimate(slug, pool)
		}
		if !found {
			e.log.Warn().
				Str("protocol", alloc.Protocol).
				Str("slug", slug).
				Msg("No suitable pool or APY for protocol")
			resolution.ProtocolsNotFound = append(resolution.ProtocolsNotFound, alloc.Protocol)
			continue
		}

		resolution.Params[slug] = params
		resolution.Allocations = append(resolution.Allocations, alloc)

		e.log.Debug().
			Str("slug", slug).
			Str("pool", pool.Symbol).
			Str("chain", pool.Chain).
			Float64("apy", params.SourceAPY).
			Float64("daily_mean", params.DailyReturnMean).
			Float64("daily_stddev", params.DailyReturnStdDev).
			Msg("Resolved market parameters")
	}

	return resolution
}
