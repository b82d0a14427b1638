/*
Copyright © 2024 the InMAP authors.
This file is part of greygas.

greygas is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

greygas is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with greygas.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package integrate provides the numerical integrators used to solve the
// Schwarzschild equations: Romberg quadrature for definite integrals over a
// fixed interval and a fixed-step Runge-Kutta stepper for integrals whose
// independent variable is advanced incrementally.
package integrate

import (
	"fmt"
	"math"
)

// Default Romberg settings.
const (
	DefaultMaxOrder  = 10
	DefaultTolerance = 1e-6
	DefaultStartStep = 0.1

	// MinOrder is the number of tableau rows that are always computed
	// before convergence is tested. It keeps two trapezoid estimates that
	// agree by coincidence from ending the refinement.
	MinOrder = 3

	// maxStartPanels caps the number of panels in the first trapezoid
	// estimate.
	maxStartPanels = 1 << 20
)

// Romberg evaluates definite integrals by repeated bisection of a
// trapezoid estimate combined with Richardson extrapolation.
// The zero value is not usable; see DefaultRomberg.
type Romberg struct {
	// MaxOrder is the maximum number of rows in the extrapolation tableau.
	MaxOrder int

	// Tolerance is the relative change between successive diagonal
	// entries of the tableau at which the integral is considered converged.
	Tolerance float64

	// StartStep is the largest panel width allowed in the first
	// trapezoid estimate.
	StartStep float64
}

// DefaultRomberg returns a Romberg integrator with the default settings.
func DefaultRomberg() Romberg {
	return Romberg{
		MaxOrder:  DefaultMaxOrder,
		Tolerance: DefaultTolerance,
		StartStep: DefaultStartStep,
	}
}

// Validate checks that the settings are usable.
func (r Romberg) Validate() error {
	if r.MaxOrder < MinOrder {
		return fmt.Errorf("integrate: Romberg MaxOrder=%d but should be >=%d", r.MaxOrder, MinOrder)
	}
	if !(r.Tolerance > 0) {
		return fmt.Errorf("integrate: Romberg Tolerance=%g but should be >0", r.Tolerance)
	}
	if !(r.StartStep > 0) || math.IsInf(r.StartStep, 0) {
		return fmt.Errorf("integrate: Romberg StartStep=%g but should be >0 and finite", r.StartStep)
	}
	return nil
}

// Result is the outcome of a Romberg integration.
type Result struct {
	// Value is the best available estimate of the integral.
	Value float64

	// ErrorEstimate is the absolute difference between the last two
	// diagonal entries of the tableau.
	ErrorEstimate float64

	// Order is the number of tableau rows computed.
	Order int

	// Evaluations is the number of integrand evaluations.
	Evaluations int

	// Converged reports whether Tolerance was met before MaxOrder was
	// reached. When it is false, Value is still the best estimate.
	Converged bool
}

// Integrate returns the integral of f from a to b. The interval is directed:
// if a > b the result is the negative of the integral from b to a.
func (r Romberg) Integrate(f func(x float64) float64, a, b float64) Result {
	if a == b {
		return Result{Converged: true}
	}
	n := startPanels(math.Abs(b-a), r.StartStep)
	dx := (b - a) / float64(n)

	sum := 0.5 * (f(a) + f(b))
	for i := 1; i < n; i++ {
		sum += f(a + float64(i)*dx)
	}

	prev := make([]float64, r.MaxOrder)
	cur := make([]float64, r.MaxOrder)
	prev[0] = sum * dx
	res := Result{
		Value:         prev[0],
		ErrorEstimate: math.Inf(1),
		Order:         1,
		Evaluations:   n + 1,
	}

	for k := 1; k < r.MaxOrder; k++ {
		mid := 0.
		for i := 0; i < n; i++ {
			mid += f(a + (float64(i)+0.5)*dx)
		}
		res.Evaluations += n
		n *= 2
		dx /= 2

		cur[0] = 0.5*prev[0] + mid*dx
		fac := 1.
		for j := 1; j <= k; j++ {
			fac *= 4
			cur[j] = cur[j-1] + (cur[j-1]-prev[j-1])/(fac-1)
		}

		res.Value = cur[k]
		res.ErrorEstimate = math.Abs(cur[k] - prev[k-1])
		res.Order = k + 1
		if res.Order >= MinOrder && res.ErrorEstimate <= r.Tolerance*math.Abs(res.Value) {
			res.Converged = true
			return res
		}
		prev, cur = cur, prev
	}
	return res
}

// startPanels returns the smallest power of two number of panels whose
// width over an interval of the given length does not exceed step.
func startPanels(length, step float64) int {
	n := 1
	for float64(n)*step < length && n < maxStartPanels {
		n *= 2
	}
	return n
}
