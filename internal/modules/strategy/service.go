package strategy

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/portfolio-sim/internal/config"
	"github.com/aristath/portfolio-sim/internal/modules/marketdata"
	"github.com/aristath/portfolio-sim/internal/modules/simulation"
	"github.com/aristath/portfolio-sim/pkg/logger"
)

// exposureTolerance is how far total weight may drift from max_exposure before warning
const exposureTolerance = 0.01

// Service evaluates strategies with the Monte Carlo simulator
type Service struct {
	simulator      *simulation.Simulator
	estimator      *marketdata.Estimator
	numSimulations int
	maxSimulations int
	log            zerolog.Logger
}

// NewService creates a strategy service from configuration
func NewService(cfg *config.Config, log zerolog.Logger) *Service {
	simulator := simulation.New(log,
		simulation.WithWorkers(cfg.Simulation.Workers),
		simulation.WithSeed(cfg.Simulation.Seed),
	)
	estimator := marketdata.NewEstimator(cfg.Market.DailyReturnBias, log)

	return &Service{
		simulator:      simulator,
		estimator:      estimator,
		numSimulations: cfg.Simulation.Count,
		maxSimulations: cfg.Simulation.MaxCount,
		log:            log.With().Str("service", "strategy").Logger(),
	}
}

// NewFromEnv loads configuration from the environment, installs the global
// logger and returns a ready service.
func NewFromEnv() (*Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Logger())
	logger.SetGlobalLogger(log)

	return NewService(cfg, log), nil
}

// Evaluate simulates the strategy with the configured number of paths
func (s *Service) Evaluate(
	ctx context.Context,
	profile simulation.UserProfile,
	strategy Strategy,
	pools []marketdata.Pool,
) (*Report, error) {
	return s.EvaluateN(ctx, profile, strategy, pools, s.numSimulations)
}

// EvaluateN simulates the strategy with numSimulations paths, capped at the
// configured maximum.
func (s *Service) EvaluateN(
	ctx context.Context,
	profile simulation.UserProfile,
	strategy Strategy,
	pools []marketdata.Pool,
	numSimulations int,
) (*Report, error) {
	if len(strategy.Allocations) == 0 {
		return nil, ErrEmptyStrategy
	}
	for _, a := range strategy.Allocations {
		if a.WeightPct < 0 || math.IsNaN(a.WeightPct) {
			return nil, fmt.Errorf("%w: %s has weight %v", ErrInvalidAllocation, a.Protocol, a.WeightPct)
		}
	}

	if s.maxSimulations > 0 && numSimulations > s.maxSimulations {
		s.log.Debug().
			Int("requested", numSimulations).
			Int("max", s.maxSimulations).
			Msg("Capping number of simulations")
		numSimulations = s.maxSimulations
	}

	var warnings []string
	total := strategy.TotalWeight()
	if math.Abs(total-profile.MaxExposure) > exposureTolerance {
		warnings = append(warnings, fmt.Sprintf(
			"total allocation %.2f%% differs from max exposure %.2f%%",
			total*100, profile.MaxExposure*100,
		))
	}

	resolution := s.estimator.Build(profile, strategy.Allocations, pools)
	if len(resolution.Allocations) == 0 {
		return nil, fmt.Errorf("%w: %d protocols unmatched", ErrNoMarketData, len(resolution.ProtocolsNotFound))
	}
	if len(resolution.ProtocolsNotFound) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d protocols without market data are held as cash",
			len(resolution.ProtocolsNotFound),
		))
	}

	result, err := s.simulator.Run(ctx, profile, resolution.Allocations, resolution.Params, numSimulations)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate strategy: %w", err)
	}

	s.log.Info().
		Str("run_id", result.RunID).
		Int("allocations", len(strategy.Allocations)).
		Int("not_found", len(resolution.ProtocolsNotFound)).
		Int("warnings", len(warnings)).
		Msg("Strategy evaluated")

	return &Report{
		RunID:             result.RunID,
		Strategy:          strategy,
		SimulationSummary: result.Summary,
		ProtocolsNotFound: resolution.ProtocolsNotFound,
		Warnings:          warnings,
	}, nil
}
