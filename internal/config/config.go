// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/portfolio-sim/pkg/logger"
)

// Config holds application configuration
type Config struct {
	LogLevel   string
	LogPretty  bool
	Simulation SimulationConfig
	Market     MarketConfig
}

// SimulationConfig holds Monte Carlo engine settings
type SimulationConfig struct {
	Count    int    // Paths per run when the caller does not choose one
	MaxCount int    // Upper bound accepted from callers
	Workers  int    // Goroutines used to run paths in parallel
	Seed     uint64 // 0 = draw a fresh seed per run
}

// MarketConfig holds settings for turning pool yields into daily parameters
type MarketConfig struct {
	DailyReturnBias float64 // Added to every estimated daily mean
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	seed, err := getEnvAsUint64("SIMULATION_SEED", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SIMULATION_SEED: %w", err)
	}

	cfg := &Config{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", true),
		Simulation: SimulationConfig{
			Count:    getEnvAsInt("SIMULATION_COUNT", 1000),
			MaxCount: getEnvAsInt("SIMULATION_MAX_COUNT", 100000),
			Workers:  getEnvAsInt("SIMULATION_WORKERS", defaultWorkers()),
			Seed:     seed,
		},
		Market: MarketConfig{
			DailyReturnBias: getEnvAsFloat("MARKET_DAILY_RETURN_BIAS", 0.000611), // ~+25% annualised
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the loaded values are usable
func (c *Config) Validate() error {
	if c.Simulation.Count < 1 {
		return fmt.Errorf("SIMULATION_COUNT must be at least 1, got %d", c.Simulation.Count)
	}
	if c.Simulation.MaxCount < c.Simulation.Count {
		return fmt.Errorf("SIMULATION_MAX_COUNT (%d) must not be below SIMULATION_COUNT (%d)",
			c.Simulation.MaxCount, c.Simulation.Count)
	}
	if c.Simulation.Workers < 1 {
		return fmt.Errorf("SIMULATION_WORKERS must be at least 1, got %d", c.Simulation.Workers)
	}
	return nil
}

// Logger returns the logger settings carried by this configuration
func (c *Config) Logger() logger.Config {
	return logger.Config{
		Level:  c.LogLevel,
		Pretty: c.LogPretty,
	}
}

func defaultWorkers() int {
	n := runtime.NumCPU()
	if n < 2 {
		n = 2
	}
	return n
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsUint64(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	return strconv.ParseUint(value, 10, 64)
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
