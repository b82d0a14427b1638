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

// Package greygas computes longwave radiative fluxes and outgoing longwave
// radiation (OLR) for grey gas atmospheres by integrating the Schwarzschild
// equations over optical depth.
//
// FluxEngine computes upward and downward flux profiles for a column with a
// dry adiabat capped by an isothermal stratosphere. OLREngine computes OLR
// for a saturated single-component condensible atmosphere, in which surface
// pressure sets both the optical thickness and, through Clausius-Clapeyron,
// the temperature of the column; sweeping surface pressure reproduces the
// runaway greenhouse limit on OLR.
//
// All computations are pure functions of their arguments and of the
// configuration an engine was created with, so engines may be shared between
// goroutines.
package greygas

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/spatialmodel/greygas/phys"
)

// Version gives the version number.
const Version = "1.0.0"

var (
	// ErrInvalidConfig is returned when an engine is created with
	// a physically meaningless configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidArgument is returned when an engine method is called with
	// an argument outside of its domain.
	ErrInvalidArgument = errors.New("invalid argument")
)

// RoundOff is the distance outside of [0, 1] within which a pressure ratio
// is treated as round off error and clamped rather than rejected.
const RoundOff = 1e-9

// pressureRatio checks that pps is a pressure ratio and clamps round off
// error at either end of the column.
func pressureRatio(pps float64) (float64, error) {
	if math.IsNaN(pps) || pps < -RoundOff || pps > 1+RoundOff {
		return 0, fmt.Errorf("greygas: %w: pressure ratio %g is outside of [0, 1]", ErrInvalidArgument, pps)
	}
	return math.Min(1, math.Max(0, pps)), nil
}

func checkOpticalThickness(tauInf float64) error {
	if !(tauInf >= 0) || math.IsInf(tauInf, 0) {
		return fmt.Errorf("greygas: %w: optical thickness %g should be finite and >=0", ErrInvalidArgument, tauInf)
	}
	return nil
}

// positive returns an ErrInvalidConfig error if v is not finite and >0.
func positive(name string, v float64) error {
	if !(v > 0) || math.IsInf(v, 0) {
		return fmt.Errorf("greygas: %w: %s=%g but should be >0", ErrInvalidConfig, name, v)
	}
	return nil
}

// nonNegative returns an ErrInvalidConfig error if v is not finite and >=0.
func nonNegative(name string, v float64) error {
	if !(v >= 0) || math.IsInf(v, 0) {
		return fmt.Errorf("greygas: %w: %s=%g but should be >=0", ErrInvalidConfig, name, v)
	}
	return nil
}

// blackbody returns the emission σT⁴ [W/m²] of a black body at temperature T [K].
func blackbody(T float64) float64 {
	T2 := T * T
	return phys.Sigma * T2 * T2
}

func defaultLogger(l logrus.FieldLogger) logrus.FieldLogger {
	if l == nil {
		return logrus.StandardLogger()
	}
	return l
}

// sweep calls fn for i in [0, n) using up to workers goroutines and
// returns the first error encountered. fn must only write to state
// owned by index i.
func sweep(n, workers int, fn func(i int) error) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return fn(i) })
	}
	return g.Wait()
}
