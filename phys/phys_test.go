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

import (
	"math"
	"testing"
)

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b)/math.Abs(b) > tolerance
}

func TestSatVP(t *testing.T) {
	tests := []struct {
		name string
		T    float64
		want float64
		tol  float64
	}{
		{name: "steam point", T: 373.16, want: 101324.6, tol: 1e-12},
		{name: "triple point", T: TripleT, want: 610.78, tol: 1e-4},
		{name: "300K", T: 300, want: 3531.5, tol: 1e-4},
		{name: "ice", T: 250, want: 75.889, tol: 1e-4},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := SatVP(test.T); different(got, test.want, test.tol) {
				t.Errorf("SatVP(%g) = %g; want %g", test.T, got, test.want)
			}
		})
	}
}

func TestSatVPIceTriplePoint(t *testing.T) {
	if got := SatVPIce(TripleT); different(got, eTriple, 1e-12) {
		t.Errorf("have %g, want %g", got, eTriple)
	}
}

func TestSatVPIncreasing(t *testing.T) {
	last := 0.
	for T := 150.; T < 400; T += 0.5 {
		v := SatVP(T)
		if !(v > last) {
			t.Fatalf("SatVP not increasing at %g K: %g <= %g", T, v, last)
		}
		last = v
	}
}

func TestRTL(t *testing.T) {
	rtl, err := Water.RTL(300)
	if err != nil {
		t.Fatal(err)
	}
	want := Rstar / 18.01 * 300 / 2.493e6
	if different(rtl, want, 1e-14) {
		t.Errorf("have %g, want %g", rtl, want)
	}

	if _, err := (Condensible{Name: "bad"}).RTL(300); err == nil {
		t.Error("expected an error for an empty constituent")
	}
}

func TestOpticalThickness(t *testing.T) {
	tau, err := OpticalThickness(0.1, 1e5, 10)
	if err != nil {
		t.Fatal(err)
	}
	if different(tau, 1000, 1e-14) {
		t.Errorf("have %g, want 1000", tau)
	}
}

func TestStefanBoltzmann(t *testing.T) {
	s := StefanBoltzmann()
	if err := s.Check(WattPerMeter2Kelvin4); err != nil {
		t.Error(err)
	}
	if s.Value() != Sigma {
		t.Errorf("have %g, want %g", s.Value(), Sigma)
	}
}
