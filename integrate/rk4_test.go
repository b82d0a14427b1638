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

package integrate

import (
	"math"
	"testing"
)

func TestRK4Exponential(t *testing.T) {
	s := NewRK4(func(x, y float64) float64 { return y }, 0, 1, 0.01)
	x, y := s.Steps(100)
	if different(x, 1, 1e-14) {
		t.Errorf("x: have %g, want 1", x)
	}
	if different(y, math.E, 1e-8) {
		t.Errorf("y: have %.12g, want %.12g", y, math.E)
	}
	if s.Count() != 100 {
		t.Errorf("count: have %d, want 100", s.Count())
	}
}

func TestRK4Quadrature(t *testing.T) {
	// With a y-independent derivative each step is Simpson's rule,
	// which is exact for cubics.
	s := NewRK4(func(x, _ float64) float64 { return x * x * x }, 0, 0, 0.5)
	_, y := s.Steps(4)
	if different(y, 4, 1e-14) {
		t.Errorf("have %.15g, want 4", y)
	}

	s = NewRK4(func(x, _ float64) float64 { return math.Cos(x) }, 0, 0, math.Pi/200)
	_, y = s.Steps(100)
	if different(y, 1, 1e-9) {
		t.Errorf("have %.12g, want 1", y)
	}
}

func TestRK4Next(t *testing.T) {
	s := NewRK4(func(x, _ float64) float64 { return 2 * x }, 1, 5, 0.25)
	var x, y float64
	for i := 0; i < 4; i++ {
		x, y = s.Next()
	}
	if x != 2 {
		t.Errorf("x: have %g, want 2", x)
	}
	// 5 + (2² - 1²)
	if different(y, 8, 1e-14) {
		t.Errorf("y: have %g, want 8", y)
	}
}
