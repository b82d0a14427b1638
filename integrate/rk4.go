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

// Derivative returns dy/dx at (x, y).
type Derivative func(x, y float64) float64

// RK4 advances the scalar ordinary differential equation y' = F(x, y)
// with the classical fourth-order Runge-Kutta method at a fixed step Dx.
// When F does not depend on y, each step is Simpson's rule over the step,
// so the accumulated Y is a running definite integral of F.
type RK4 struct {
	F  Derivative
	Dx float64

	// X and Y are the current state.
	X, Y float64

	x0    float64
	steps int
}

// NewRK4 returns a stepper starting at (x0, y0) with step dx.
func NewRK4(f Derivative, x0, y0, dx float64) *RK4 {
	return &RK4{F: f, Dx: dx, X: x0, Y: y0, x0: x0}
}

// Next advances the state by one step and returns it.
func (s *RK4) Next() (x, y float64) {
	h := s.Dx
	k1 := s.F(s.X, s.Y)
	k2 := s.F(s.X+h/2, s.Y+h*k1/2)
	k3 := s.F(s.X+h/2, s.Y+h*k2/2)
	k4 := s.F(s.X+h, s.Y+h*k3)
	s.Y += h * (k1 + 2*k2 + 2*k3 + k4) / 6
	s.steps++
	// Compute x from the step count so that round off does not accumulate.
	s.X = s.x0 + float64(s.steps)*h
	return s.X, s.Y
}

// Steps advances the state by n steps and returns the final state.
func (s *RK4) Steps(n int) (x, y float64) {
	x, y = s.X, s.Y
	for i := 0; i < n; i++ {
		x, y = s.Next()
	}
	return x, y
}

// Count returns the number of steps taken so far.
func (s *RK4) Count() int { return s.steps }
