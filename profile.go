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

package greygas

import (
	"fmt"
	"math"

	"github.com/spatialmodel/greygas/phys"
)

const (
	// StratTolerance is the temperature difference [K] from the
	// stratospheric temperature within which a level is considered to be
	// in the isothermal stratosphere.
	StratTolerance = 1e-6

	// MinPressureRatio is the floor applied to the pressure ratio of the
	// saturation profile, which has a logarithmic singularity at the
	// top of the atmosphere.
	MinPressureRatio = 1e-20
)

// Profile is a temperature profile as a function of a normalized pressure.
type Profile interface {
	// Temperature returns the temperature [K] at normalized pressure p.
	Temperature(p float64) float64

	// DTemperature returns the derivative of temperature with respect
	// to normalized pressure at p [K].
	DTemperature(p float64) float64
}

// Adiabat is an adiabatic temperature profile T = Ts·(p/ps)^Rcp capped
// below by an isothermal stratosphere at Tstrat. Its argument is pressure
// normalized by surface pressure.
type Adiabat struct {
	// Ts is the surface air temperature [K].
	Ts float64

	// Tstrat is the stratospheric temperature [K].
	Tstrat float64

	// Rcp is the adiabatic exponent R/cp.
	Rcp float64
}

// DefaultAdiabat returns a dry adiabat for a 300 K diatomic atmosphere with
// a stratosphere at absolute zero.
func DefaultAdiabat() Adiabat {
	return Adiabat{Ts: 300, Tstrat: 0, Rcp: 2. / 7.}
}

// Validate checks that the profile is physically meaningful.
func (a Adiabat) Validate() error {
	if err := positive("Ts", a.Ts); err != nil {
		return err
	}
	if err := nonNegative("Tstrat", a.Tstrat); err != nil {
		return err
	}
	return positive("Rcp", a.Rcp)
}

// Temperature returns max(Tstrat, Ts·pps^Rcp). Non-positive pressure ratios,
// which arise from round off at the top of the atmosphere, have an adiabatic
// temperature of zero.
func (a Adiabat) Temperature(pps float64) float64 {
	var ad float64
	if pps > 0 {
		ad = a.Ts * math.Pow(pps, a.Rcp)
	}
	return math.Max(a.Tstrat, ad)
}

// DTemperature returns dT/d(p/ps), which is zero in the stratosphere.
func (a Adiabat) DTemperature(pps float64) float64 {
	if math.Abs(a.Temperature(pps)-a.Tstrat) < StratTolerance {
		return 0
	}
	return a.Rcp * a.Ts * math.Pow(pps, a.Rcp-1)
}

// Crossover returns the pressure ratio of the tropopause, where the
// adiabat reaches the stratospheric temperature.
func (a Adiabat) Crossover() float64 {
	if a.Tstrat >= a.Ts {
		return 1
	}
	return math.Pow(a.Tstrat/a.Ts, 1/a.Rcp)
}

// Saturation is the temperature profile of a saturated atmosphere made of
// a single condensible constituent, following the simplified
// Clausius-Clapeyron relation T = T0/(1 - RTL·ln(p/p0)). Its argument is
// pressure normalized by the reference pressure p0 at which T = T0.
type Saturation struct {
	// T0 is the reference temperature [K].
	T0 float64

	// RTL is R·T0/L for the condensible.
	RTL float64
}

// NewSaturation returns the saturation profile of c referenced to
// temperature T0 [K].
func NewSaturation(c phys.Condensible, T0 float64) (Saturation, error) {
	if err := positive("T0", T0); err != nil {
		return Saturation{}, err
	}
	rtl, err := c.RTL(T0)
	if err != nil {
		return Saturation{}, fmt.Errorf("greygas: %w: %v", ErrInvalidConfig, err)
	}
	return Saturation{T0: T0, RTL: rtl}, nil
}

// Validate checks that the profile is physically meaningful.
func (s Saturation) Validate() error {
	if err := positive("T0", s.T0); err != nil {
		return err
	}
	return positive("RTL", s.RTL)
}

// Temperature returns the saturation temperature at pressure ratio pp0.
func (s Saturation) Temperature(pp0 float64) float64 {
	pp0 = math.Max(pp0, MinPressureRatio)
	return s.T0 / (1 - s.RTL*math.Log(pp0))
}

// DTemperature returns dT/d(p/p0).
func (s Saturation) DTemperature(pp0 float64) float64 {
	pp0 = math.Max(pp0, MinPressureRatio)
	t := s.Temperature(pp0)
	return s.RTL * t * t / (s.T0 * pp0)
}

// MaxPressureRatio returns the pressure ratio at which the saturation
// temperature diverges. The profile is only meaningful below it.
func (s Saturation) MaxPressureRatio() float64 {
	return math.Exp(1 / s.RTL)
}
