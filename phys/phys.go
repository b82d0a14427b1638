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

// Package phys holds the physical constants and thermodynamic relations
// used by the grey gas radiation model.
package phys

import (
	"fmt"

	"github.com/ctessum/unit"
)

const (
	// Sigma is the Stefan-Boltzmann constant [W m-2 K-4].
	Sigma = 5.67e-8

	// Rstar is the universal gas constant [J kmol-1 K-1].
	Rstar = 8314.46
)

// Dimensions of the quantities used by the model that are not
// predefined in github.com/ctessum/unit.
var (
	// WattPerMeter2Kelvin4 is the unit of the Stefan-Boltzmann constant.
	WattPerMeter2Kelvin4 = unit.Dimensions{
		unit.MassDim:        1,
		unit.TimeDim:        -3,
		unit.TemperatureDim: -4,
	}
	// JoulePerKilogramKelvin is the unit of a specific gas constant.
	JoulePerKilogramKelvin = unit.Dimensions{
		unit.LengthDim:      2,
		unit.TimeDim:        -2,
		unit.TemperatureDim: -1,
	}
	// JoulePerKilogram is the unit of a latent heat.
	JoulePerKilogram = unit.Dimensions{
		unit.LengthDim: 2,
		unit.TimeDim:   -2,
	}
	// Meter2PerKilogram is the unit of a specific absorption cross-section.
	Meter2PerKilogram = unit.Dimensions{
		unit.LengthDim: 2,
		unit.MassDim:   -1,
	}
)

// StefanBoltzmann returns Sigma with its dimensions attached.
func StefanBoltzmann() *unit.Unit {
	return unit.New(Sigma, WattPerMeter2Kelvin4)
}

// Condensible holds the thermodynamic properties of a condensing
// atmospheric constituent.
type Condensible struct {
	Name string

	// MolecularWeight is in kg/kmol.
	MolecularWeight float64

	// LVaporization is the latent heat of vaporization [J/kg].
	LVaporization float64
}

// Water is water vapor. The latent heat is the value at the triple point.
var Water = Condensible{
	Name:            "water",
	MolecularWeight: 18.01,
	LVaporization:   2.493e6,
}

// R returns the specific gas constant of the constituent [J kg-1 K-1].
func (c Condensible) R() float64 {
	return Rstar / c.MolecularWeight
}

// RTL returns the dimensionless ratio R·T0/L that sets the slope of the
// simplified Clausius-Clapeyron relation at reference temperature T0 [K].
func (c Condensible) RTL(T0 float64) (float64, error) {
	if !(c.MolecularWeight > 0) || !(c.LVaporization > 0) {
		return 0, fmt.Errorf("phys: %s: molecular weight (%g) and latent heat (%g) must be >0",
			c.Name, c.MolecularWeight, c.LVaporization)
	}
	rtl := unit.Div(
		unit.Mul(unit.New(c.R(), JoulePerKilogramKelvin), unit.New(T0, unit.Kelvin)),
		unit.New(c.LVaporization, JoulePerKilogram),
	)
	if err := rtl.Check(unit.Dimless); err != nil {
		return 0, fmt.Errorf("phys: R·T/L for %s: %v", c.Name, err)
	}
	return rtl.Value(), nil
}

// OpticalThickness returns the optical thickness κp/g of a column of
// well-mixed absorber with specific cross-section kappa [m2/kg] above
// pressure p [Pa] in gravity g [m/s2].
func OpticalThickness(kappa, p, g float64) (float64, error) {
	tau := unit.Div(
		unit.Mul(unit.New(kappa, Meter2PerKilogram), unit.New(p, unit.Pascal)),
		unit.New(g, unit.MeterPerSecond2),
	)
	if err := tau.Check(unit.Dimless); err != nil {
		return 0, fmt.Errorf("phys: optical thickness: %v", err)
	}
	return tau.Value(), nil
}
