package simulation

import "math"

// daysPerMonth converts a month horizon into simulated days
const daysPerMonth = 30.44

// HorizonDays converts a horizon in months to simulated days, never fewer than one
func HorizonDays(months float64) int {
	if math.IsNaN(months) {
		return 1
	}
	days := math.Round(months * daysPerMonth)
	if days < 1 {
		return 1
	}
	return int(days)
}

// plannedAsset holds per-asset values derived once per run
type plannedAsset struct {
	weight float64 // share of the invested portion, sums to 1 across assets
	mean   float64 // risk-scaled daily mean
	stdDev float64 // risk-scaled daily stddev
}

// plan is everything a path needs; it is read-only once built and shared by
// all workers.
type plan struct {
	fund       float64
	invested   float64
	cash       float64
	killSwitch float64
	days       int
	scaling    RiskScaling
	assets     []plannedAsset
}

func newPlan(profile UserProfile, allocations []Allocation, params MarketParameters) *plan {
	var weightSum float64
	for _, alloc := range allocations {
		weightSum += alloc.WeightPct
	}

	p := &plan{
		fund:       profile.Fund,
		invested:   profile.Fund * weightSum,
		cash:       profile.Fund * (1 - weightSum),
		killSwitch: profile.KillSwitch,
		days:       HorizonDays(profile.TimeHorizon),
		scaling:    ScalingFor(profile.RiskLevel),
	}

	for _, alloc := range allocations {
		asset, ok := params.Lookup(alloc.Protocol)
		if !ok {
			// No data: contributes zero return
			continue
		}
		var weight float64
		if weightSum > 0 {
			weight = alloc.WeightPct / weightSum
		}
		p.assets = append(p.assets, plannedAsset{
			weight: weight,
			mean:   asset.DailyReturnMean * p.scaling.MeanReturn,
			stdDev: math.Max(0, asset.DailyReturnStdDev*p.scaling.Volatility),
		})
	}

	return p
}

// run simulates one path. The kill switch is tested once per day against the
// whole portfolio (invested plus cash); a triggered path is frozen at that
// day's value.
func (p *plan) run(sampler *normalSampler) Trial {
	value := p.invested

	for day := 0; day < p.days; day++ {
		var dailyReturn float64
		for _, asset := range p.assets {
			assetReturn := asset.mean + asset.stdDev*sampler.next()
			dailyReturn += assetReturn * asset.weight
		}

		value *= 1 + dailyReturn

		total := value + p.cash
		if total/p.fund-1 <= p.killSwitch {
			return Trial{
				FinalValue:          total,
				KillSwitchTriggered: true,
				DaysSimulated:       day + 1,
			}
		}
	}

	return Trial{
		FinalValue:    value + p.cash,
		DaysSimulated: p.days,
	}
}
