// Package fare turns straight-line trip distance into money.
package fare

import "cabsy/internal/geo"

const (
	// DefaultRatePerKm is the charge per kilometre of straight-line distance.
	DefaultRatePerKm = 15.0
	// DefaultCompletionMarkup is applied to the estimate when a ride completes.
	DefaultCompletionMarkup = 1.05
)

// Estimator prices rides. The zero value falls back to the defaults.
type Estimator struct {
	RatePerKm        float64
	CompletionMarkup float64
}

// NewEstimator builds an Estimator, substituting defaults for non-positive values.
func NewEstimator(ratePerKm, completionMarkup float64) Estimator {
	e := Estimator{RatePerKm: ratePerKm, CompletionMarkup: completionMarkup}
	if e.RatePerKm <= 0 {
		e.RatePerKm = DefaultRatePerKm
	}
	if e.CompletionMarkup <= 0 {
		e.CompletionMarkup = DefaultCompletionMarkup
	}
	return e
}

// Estimate prices the straight-line distance between pickup and destination.
func (e Estimator) Estimate(pickup, destination geo.Point) float64 {
	return e.ForDistance(geo.Distance(pickup, destination))
}

// ForDistance prices a distance in kilometres.
func (e Estimator) ForDistance(km float64) float64 {
	rate := e.RatePerKm
	if rate <= 0 {
		rate = DefaultRatePerKm
	}
	return km * rate
}

// Finalize computes the actual fare from an estimate. Callers apply it at most
// once per ride (see models.Ride.FinalizeFare).
func (e Estimator) Finalize(estimated float64) float64 {
	markup := e.CompletionMarkup
	if markup <= 0 {
		markup = DefaultCompletionMarkup
	}
	return estimated * markup
}
