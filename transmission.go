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
)

// MaxOpticalDepth is the largest optical depth difference that is passed to
// an exponential when integrating outgoing longwave radiation. Attenuation
// across more than this many e-foldings is treated as attenuation across
// exactly this many.
const MaxOpticalDepth = 100.

// MaxTransmissionDepth is the largest optical depth difference accepted by
// Transmission. exp(-x) is a normal float64 for x up to about 708, so
// transmission is strictly positive and strictly decreasing in |Δτ| below
// this limit and constant above it.
const MaxTransmissionDepth = 700.

// BroadeningMode specifies how optical depth depends on pressure.
type BroadeningMode int

const (
	// NoBroadening gives an optical depth that is linear in pressure.
	NoBroadening BroadeningMode = iota

	// PressureBroadening gives an optical depth that is quadratic in
	// pressure, representing absorption that strengthens with pressure.
	PressureBroadening
)

func (m BroadeningMode) String() string {
	switch m {
	case NoBroadening:
		return "none"
	case PressureBroadening:
		return "pressure"
	default:
		return fmt.Sprintf("BroadeningMode(%d)", int(m))
	}
}

// ParseBroadeningMode returns the mode named s ("none" or "pressure").
func ParseBroadeningMode(s string) (BroadeningMode, error) {
	switch s {
	case "none", "":
		return NoBroadening, nil
	case "pressure":
		return PressureBroadening, nil
	default:
		return NoBroadening, fmt.Errorf("greygas: %w: broadening mode %q should be 'none' or 'pressure'",
			ErrInvalidConfig, s)
	}
}

// Transmission returns the grey gas transmission exp(-|tau1-tau2|) between
// two levels at optical depths tau1 and tau2. Differences larger than
// MaxTransmissionDepth are clamped.
func Transmission(tau1, tau2 float64) float64 {
	return math.Exp(-math.Min(math.Abs(tau1-tau2), MaxTransmissionDepth))
}

// OpticalDepth returns the optical depth, measured upward from the surface,
// at pressure ratio pps in a column with total optical thickness tauInf.
func OpticalDepth(mode BroadeningMode, tauInf, pps float64) float64 {
	if mode == PressureBroadening {
		return tauInf * (1 - pps*pps)
	}
	return tauInf * (1 - pps)
}
