package calculation

import "errors"

var (
	// ErrNoSimulations is returned when a Monte Carlo run is requested with
	// a non-positive number of trials.
	ErrNoSimulations = errors.New("number of simulations must be positive")
	// ErrInvalidHorizon is returned when the projection window is empty.
	ErrInvalidHorizon = errors.New("start year must not be after end year")
)
