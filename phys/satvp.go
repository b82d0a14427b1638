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

package phys

import "math"

const (
	// tSteam is the steam point temperature [K] used by Goff-Gratch.
	tSteam = 373.16
	// eSteam is the saturation vapor pressure at the steam point [Pa].
	eSteam = 101324.6

	// TripleT is the triple point temperature of water [K].
	TripleT = 273.16
	// eTriple is the saturation vapor pressure over ice at the triple point [Pa].
	eTriple = 610.71
)

// SatVPWater returns the saturation vapor pressure [Pa] over liquid water at
// temperature T [K], using the Goff-Gratch formula.
func SatVPWater(T float64) float64 {
	r := tSteam / T
	lg := -7.90298*(r-1) +
		5.02808*math.Log10(r) -
		1.3816e-7*(math.Pow(10, 11.344*(1-1/r))-1) +
		8.1328e-3*(math.Pow(10, -3.49149*(r-1))-1)
	return eSteam * math.Pow(10, lg)
}

// SatVPIce returns the saturation vapor pressure [Pa] over ice at
// temperature T [K] (Smithsonian tables formula).
func SatVPIce(T float64) float64 {
	r := TripleT / T
	lg := -9.09718*(r-1) - 3.56654*math.Log10(r) + 0.876793*(1-1/r)
	return eTriple * math.Pow(10, lg)
}

// SatVP returns the saturation vapor pressure of water [Pa] at temperature
// T [K], over liquid at or above the triple point and over ice below it.
func SatVP(T float64) float64 {
	if T >= TripleT {
		return SatVPWater(T)
	}
	return SatVPIce(T)
}
