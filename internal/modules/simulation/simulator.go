package simulation

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultSimulations is the number of paths used when callers have no preference
const DefaultSimulations = 1000

// Simulator runs Monte Carlo projections of a portfolio allocation
type Simulator struct {
	log     zerolog.Logger
	workers int
	seed    uint64
	source  Source
}

// Option configures a Simulator
type Option func(*Simulator)

// WithWorkers sets the number of goroutines running paths.
// Values below 1 keep the default.
func WithWorkers(n int) Option {
	return func(s *Simulator) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithSeed fixes the run seed so repeated runs are bit-identical.
// 0 draws a fresh seed for every run.
func WithSeed(seed uint64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// WithSource draws every path from one caller-supplied source. Paths then run
// sequentially in trial order since a Source is not safe for concurrent use.
func WithSource(src Source) Option {
	return func(s *Simulator) {
		s.source = src
	}
}

// New creates a simulator
func New(log zerolog.Logger, opts ...Option) *Simulator {
	workers := runtime.NumCPU()
	if workers < 2 {
		workers = 2
	}

	s := &Simulator{
		log:     log.With().Str("component", "monte_carlo").Logger(),
		workers: workers,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Simulate projects the portfolio over the profile's horizon numSimulations
// times and summarises the terminal values.
//
// Every allocation should have an entry in params; allocations without one
// earn nothing but still count towards the invested weight.
func (s *Simulator) Simulate(
	ctx context.Context,
	profile UserProfile,
	allocations []Allocation,
	params MarketParameters,
	numSimulations int,
) (Summary, error) {
	result, err := s.Run(ctx, profile, allocations, params, numSimulations)
	if err != nil {
		return Summary{}, err
	}
	return result.Summary, nil
}

// Run is Simulate with every path's outcome attached
func (s *Simulator) Run(
	ctx context.Context,
	profile UserProfile,
	allocations []Allocation,
	params MarketParameters,
	numSimulations int,
) (*Result, error) {
	if !(profile.Fund > 0) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFund, profile.Fund)
	}
	if numSimulations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSimulationCount, numSimulations)
	}

	seed := s.seed
	if seed == 0 && s.source == nil {
		seed = randomSeed()
	}

	runID := uuid.NewString()
	log := s.log.With().Str("run_id", runID).Logger()

	p := newPlan(profile, allocations, params)

	log.Debug().
		Int("paths", numSimulations).
		Int("days", p.days).
		Int("assets", len(p.assets)).
		Float64("invested", p.invested).
		Float64("cash", p.cash).
		Str("risk_level", string(profile.RiskLevel)).
		Float64("vol_scale", p.scaling.Volatility).
		Float64("mean_scale", p.scaling.MeanReturn).
		Msg("Starting Monte Carlo simulation")

	startTime := time.Now()
	trials, err := s.runTrials(ctx, p, numSimulations, seed)
	if err != nil {
		log.Warn().Err(err).Msg("Monte Carlo simulation aborted")
		return nil, fmt.Errorf("monte carlo simulation aborted: %w", err)
	}
	elapsed := time.Since(startTime)

	summary := summarizeTrials(profile.Fund, trials)

	log.Info().
		Int("paths", summary.NumSimulations).
		Dur("elapsed", elapsed).
		Float64("mean", summary.MeanFinalValue).
		Float64("median", summary.MedianFinalValue).
		Float64("std_dev", summary.StdDevFinalValue).
		Float64("p5", summary.Percentile5th).
		Float64("p95", summary.Percentile95th).
		Float64("kill_switch_pct", summary.KillSwitchRate()*100).
		Msg("Monte Carlo simulation completed")

	return &Result{
		RunID:   runID,
		Seed:    seed,
		Summary: summary,
		Trials:  trials,
	}, nil
}
