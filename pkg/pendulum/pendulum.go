// Package pendulum generates damped pendulum time series used as synthetic
// ground truth by the forecasting workbench.
//
// A pendulum of length L swings with period p = 2π·sqrt(L/g) and its angle
// decays as theta(t) = theta0 · cos(2πt/p) · exp(−βt). Generated frames
// carry a single "theta" column on a synthetic time index starting at the
// Unix epoch.
package pendulum

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/oscillab/oscillab/pkg/series"
)

// ErrInvalidParameter is returned for physically meaningless generator
// parameters.
var ErrInvalidParameter = errors.New("invalid parameter")

// Gravity is the surface gravity used in the period calculation, in m/s^2.
const Gravity = 9.81

// Column is the name of the angle column in generated frames.
const Column = "theta"

// Pendulum models a damped pendulum of fixed length.
type Pendulum struct {
	length float64
}

// New creates a pendulum. length is in meters and must be positive.
func New(length float64) (*Pendulum, error) {
	if length <= 0 {
		return nil, fmt.Errorf("pendulum length must be positive, got %v: %w", length, ErrInvalidParameter)
	}
	return &Pendulum{length: length}, nil
}

// Length returns the pendulum length in meters.
func (p *Pendulum) Length() float64 {
	return p.length
}

// Period returns the oscillation period in seconds.
func (p *Pendulum) Period() float64 {
	return 2 * math.Pi * math.Sqrt(p.length/Gravity)
}

// Generate samples the pendulum angle over numPeriods full periods at
// samplesPerPeriod evenly spaced samples each, starting from initialAngle
// at t = 0. beta is the exponential damping coefficient; zero means an
// undamped oscillation and negative values are rejected. The sample at
// index i sits at t_i = i·period/samplesPerPeriod seconds.
func (p *Pendulum) Generate(numPeriods, samplesPerPeriod int, initialAngle, beta float64) (*series.Frame, error) {
	if numPeriods <= 0 {
		return nil, fmt.Errorf("number of periods must be positive, got %d: %w", numPeriods, ErrInvalidParameter)
	}
	if samplesPerPeriod <= 0 {
		return nil, fmt.Errorf("samples per period must be positive, got %d: %w", samplesPerPeriod, ErrInvalidParameter)
	}
	if initialAngle <= 0 {
		return nil, fmt.Errorf("initial angle must be positive, got %v: %w", initialAngle, ErrInvalidParameter)
	}
	if beta < 0 {
		return nil, fmt.Errorf("damping coefficient must be non-negative, got %v: %w", beta, ErrInvalidParameter)
	}

	period := p.Period()
	step := period / float64(samplesPerPeriod)
	n := numPeriods * samplesPerPeriod

	start := time.Unix(0, 0).UTC()
	times := make([]time.Time, n)
	values := make([][]float64, n)
	for i := range n {
		t := float64(i) * step
		times[i] = start.Add(time.Duration(t * float64(time.Second)))
		theta := initialAngle * math.Cos(2*math.Pi*t/period) * math.Exp(-beta*t)
		values[i] = []float64{theta}
	}

	return series.New(times, []string{Column}, values)
}
