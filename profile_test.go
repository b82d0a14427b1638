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
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/diff/fd"

	"github.com/spatialmodel/greygas/phys"
)

func different(a, b, tolerance float64) bool {
	if b == 0 {
		return math.Abs(a) > tolerance
	}
	return math.Abs(a-b)/math.Abs(b) > tolerance
}

func TestAdiabatStratosphereFloor(t *testing.T) {
	for _, a := range []Adiabat{
		DefaultAdiabat(),
		{Ts: 300, Tstrat: 200, Rcp: 2. / 7.},
		{Ts: 250, Tstrat: 260, Rcp: 0.2},
	} {
		for _, pps := range append(Levels(1001), -1e-12, 1e-300) {
			T := a.Temperature(pps)
			if T < a.Tstrat || math.IsNaN(T) || math.IsInf(T, 0) {
				t.Errorf("%+v: T(%g) = %g", a, pps, T)
			}
			dT := a.DTemperature(pps)
			if dT < 0 || math.IsNaN(dT) || math.IsInf(dT, 0) {
				t.Errorf("%+v: dT/dpps(%g) = %g", a, pps, dT)
			}
		}
	}
}

func TestAdiabatCrossover(t *testing.T) {
	a := Adiabat{Ts: 300, Tstrat: 200, Rcp: 2. / 7.}
	c := a.Crossover()
	if want := math.Pow(2./3., 3.5); different(c, want, 1e-12) {
		t.Fatalf("crossover: have %g, want %g", c, want)
	}
	const eps = 1e-9
	below, above := a.Temperature(c-eps), a.Temperature(c+eps)
	if math.Abs(below-a.Tstrat) > 1e-6 || math.Abs(above-a.Tstrat) > 1e-6 {
		t.Errorf("discontinuous at crossover: %g, %g", below, above)
	}
	if a.DTemperature(c/2) != 0 {
		t.Errorf("stratosphere should have zero lapse rate")
	}
	if (Adiabat{Ts: 300, Rcp: 2. / 7.}).Crossover() != 0 {
		t.Errorf("no stratosphere should cross over at the top")
	}
	if (Adiabat{Ts: 200, Tstrat: 300, Rcp: 2. / 7.}).Crossover() != 1 {
		t.Errorf("isothermal column should cross over at the surface")
	}
}

func TestAdiabatDerivative(t *testing.T) {
	a := Adiabat{Ts: 300, Tstrat: 150, Rcp: 2. / 7.}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for _, pps := range []float64{0.3, 0.5, 0.9, 0.999} {
		want := fd.Derivative(a.Temperature, pps, settings)
		if have := a.DTemperature(pps); different(have, want, 1e-6) {
			t.Errorf("pps=%g: have %g, want %g", pps, have, want)
		}
	}
}

func TestAdiabatValidate(t *testing.T) {
	for _, a := range []Adiabat{
		{Ts: 0, Rcp: 0.3},
		{Ts: -1, Rcp: 0.3},
		{Ts: 300, Tstrat: -1, Rcp: 0.3},
		{Ts: 300, Rcp: 0},
		{Ts: math.NaN(), Rcp: 0.3},
		{Ts: math.Inf(1), Rcp: 0.3},
	} {
		if err := a.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%+v: have error %v, want ErrInvalidConfig", a, err)
		}
	}
	if err := DefaultAdiabat().Validate(); err != nil {
		t.Error(err)
	}
}

func TestSaturation(t *testing.T) {
	s := Saturation{T0: 300, RTL: 0.0555}
	if s.Temperature(1) != 300 {
		t.Errorf("T(1) = %g; want 300", s.Temperature(1))
	}
	for _, pp0 := range []float64{0, -1, 1e-30, 1e-20} {
		T := s.Temperature(pp0)
		want := 300 / (1 - 0.0555*math.Log(MinPressureRatio))
		if T != want {
			t.Errorf("T(%g) = %g; want floor value %g", pp0, T, want)
		}
		if dT := s.DTemperature(pp0); math.IsInf(dT, 0) || math.IsNaN(dT) {
			t.Errorf("dT(%g) = %g", pp0, dT)
		}
	}
	settings := &fd.Settings{Formula: fd.Central, Step: 1e-6}
	for _, pp0 := range []float64{0.01, 0.5, 1, 2} {
		want := fd.Derivative(s.Temperature, pp0, settings)
		if have := s.DTemperature(pp0); different(have, want, 1e-6) {
			t.Errorf("pp0=%g: have %g, want %g", pp0, have, want)
		}
	}
	if m := s.MaxPressureRatio(); different(s.RTL*math.Log(m), 1, 1e-12) {
		t.Errorf("max pressure ratio %g should zero the denominator", m)
	}
}

func TestNewSaturation(t *testing.T) {
	s, err := NewSaturation(phys.Water, 300)
	if err != nil {
		t.Fatal(err)
	}
	if s.T0 != 300 || different(s.RTL, 0.0555545, 1e-5) {
		t.Errorf("have %+v", s)
	}
	if _, err := NewSaturation(phys.Water, -3); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, have %v", err)
	}
	if _, err := NewSaturation(phys.Condensible{Name: "nothing"}, 300); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, have %v", err)
	}
	if err := (Saturation{T0: 300}).Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("want ErrInvalidConfig, have %v", err)
	}
}
