package simulation

import "errors"

var (
	// ErrInvalidFund is returned when the initial fund is not positive
	ErrInvalidFund = errors.New("fund must be positive")
	// ErrInvalidSimulationCount is returned when fewer than one path is requested
	ErrInvalidSimulationCount = errors.New("number of simulations must be at least 1")
)
