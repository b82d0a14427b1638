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
	"sync/atomic"
	"testing"
)

func TestPressureRatio(t *testing.T) {
	for _, test := range []struct {
		in, out float64
		err     bool
	}{
		{in: 0, out: 0},
		{in: 0.3, out: 0.3},
		{in: 1, out: 1},
		{in: -RoundOff / 10, out: 0},
		{in: 1 + RoundOff/10, out: 1},
		{in: -0.01, err: true},
		{in: 1.01, err: true},
		{in: math.NaN(), err: true},
	} {
		out, err := pressureRatio(test.in)
		if test.err {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("pressureRatio(%g): want ErrInvalidArgument, have %v", test.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("pressureRatio(%g): %v", test.in, err)
		}
		if out != test.out {
			t.Errorf("pressureRatio(%g) = %g; want %g", test.in, out, test.out)
		}
	}
}

func TestSweep(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 100} {
		var calls int64
		o := make([]int, 50)
		err := sweep(len(o), workers, func(i int) error {
			atomic.AddInt64(&calls, 1)
			o[i] = i * i
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if calls != int64(len(o)) {
			t.Errorf("workers=%d: have %d calls, want %d", workers, calls, len(o))
		}
		for i, v := range o {
			if v != i*i {
				t.Errorf("workers=%d: o[%d] = %d", workers, i, v)
			}
		}
	}
	errTest := errors.New("test error")
	err := sweep(10, 2, func(i int) error {
		if i == 7 {
			return errTest
		}
		return nil
	})
	if !errors.Is(err, errTest) {
		t.Errorf("want test error, have %v", err)
	}
}

func TestBlackbody(t *testing.T) {
	if different(blackbody(300), 459.27, 1e-12) {
		t.Errorf("have %g, want 459.27", blackbody(300))
	}
	if blackbody(0) != 0 {
		t.Errorf("have %g, want 0", blackbody(0))
	}
}
