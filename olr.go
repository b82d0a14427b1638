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

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/greygas/integrate"
	"github.com/spatialmodel/greygas/phys"
)

const (
	// MinSteps is the smallest number of steps used to integrate through
	// a column, which keeps optically thin columns resolved.
	MinSteps = 50

	// StepsPerTau is the number of integration steps per unit optical
	// thickness of the column.
	StepsPerTau = 10
)

// Method selects how the OLR integral is evaluated.
type Method int

const (
	// Stepping advances a Runge-Kutta integrator downward from the top
	// of the atmosphere in steps of optical depth.
	Stepping Method = iota

	// Quadrature uses Romberg quadrature over optical depth.
	Quadrature
)

func (m Method) String() string {
	switch m {
	case Stepping:
		return "stepping"
	case Quadrature:
		return "quadrature"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod returns the method named s ("stepping" or "quadrature").
func ParseMethod(s string) (Method, error) {
	switch s {
	case "stepping", "":
		return Stepping, nil
	case "quadrature":
		return Quadrature, nil
	default:
		return Stepping, fmt.Errorf("greygas: %w: OLR method %q should be 'stepping' or 'quadrature'",
			ErrInvalidConfig, s)
	}
}

// OLRConfig holds the configuration of an OLREngine.
type OLRConfig struct {
	// Profile is the saturation temperature profile of the condensible,
	// referenced to pressure P0.
	Profile Saturation

	// P0 is the reference pressure [Pa] at which the temperature is
	// Profile.T0.
	P0 float64

	// Kappa is the specific absorption cross-section of the
	// condensible [m²/kg].
	Kappa float64

	// Gravity is the gravitational acceleration [m/s²].
	Gravity float64

	// Method is the integration method.
	Method Method

	// Quadrature is used when Method is Quadrature.
	Quadrature integrate.Romberg

	// Workers is the maximum number of surface pressures evaluated
	// concurrently by RunawaySweep. If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Log receives quadrature convergence advisories. If nil,
	// the logrus standard logger is used.
	Log logrus.FieldLogger
}

// NewWaterOLRConfig returns the configuration of a pure water vapor
// atmosphere referenced to temperature T0 [K] at its saturation vapor
// pressure, with a specific absorption cross-section of 0.1 m²/kg
// and a gravity of 10 m/s².
func NewWaterOLRConfig(T0 float64) (OLRConfig, error) {
	s, err := NewSaturation(phys.Water, T0)
	if err != nil {
		return OLRConfig{}, err
	}
	return OLRConfig{
		Profile:    s,
		P0:         phys.SatVP(T0),
		Kappa:      0.1,
		Gravity:    10,
		Method:     Stepping,
		Quadrature: integrate.DefaultRomberg(),
	}, nil
}

// OLREngine computes the outgoing longwave radiation of a saturated
// condensible atmosphere as a function of surface pressure.
type OLREngine struct {
	OLRConfig

	// tau0 is the optical thickness of a column with surface pressure P0.
	tau0 float64
}

// NewOLREngine validates cfg and returns a new OLREngine.
func NewOLREngine(cfg OLRConfig) (*OLREngine, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"P0", cfg.P0}, {"Kappa", cfg.Kappa}, {"Gravity", cfg.Gravity}} {
		if err := positive(v.name, v.val); err != nil {
			return nil, err
		}
	}
	switch cfg.Method {
	case Stepping:
	case Quadrature:
		if err := cfg.Quadrature.Validate(); err != nil {
			return nil, fmt.Errorf("greygas: %w: %v", ErrInvalidConfig, err)
		}
	default:
		return nil, fmt.Errorf("greygas: %w: unknown OLR method %v", ErrInvalidConfig, cfg.Method)
	}
	tau0, err := phys.OpticalThickness(cfg.Kappa, cfg.P0, cfg.Gravity)
	if err != nil {
		return nil, fmt.Errorf("greygas: %w: %v", ErrInvalidConfig, err)
	}
	cfg.Log = defaultLogger(cfg.Log)
	return &OLREngine{OLRConfig: cfg, tau0: tau0}, nil
}

// Tau0 returns the optical thickness of a column with surface pressure P0.
func (e *OLREngine) Tau0() float64 { return e.tau0 }

// MaxSurfacePressure returns the surface pressure [Pa] at which the
// saturation temperature diverges. OLR is only defined below it.
func (e *OLREngine) MaxSurfacePressure() float64 {
	return e.P0 * e.Profile.MaxPressureRatio()
}

func (e *OLREngine) checkSurfacePressure(ps float64) error {
	if !(ps >= 0) || !(ps < e.MaxSurfacePressure()) {
		return fmt.Errorf("greygas: %w: surface pressure %g Pa should be >=0 and <%g Pa",
			ErrInvalidArgument, ps, e.MaxSurfacePressure())
	}
	return nil
}

// SurfaceTemperature returns the saturation temperature [K] at surface
// pressure ps [Pa].
func (e *OLREngine) SurfaceTemperature(ps float64) (float64, error) {
	if err := e.checkSurfacePressure(ps); err != nil {
		return 0, err
	}
	return e.Profile.Temperature(ps / e.P0), nil
}

// OpticalThickness returns the optical thickness κps/g of a column with
// surface pressure ps [Pa].
func (e *OLREngine) OpticalThickness(ps float64) float64 {
	return e.Kappa * ps / e.Gravity
}

// StepCount returns the number of integration steps used for a column of
// optical thickness tauInf. The count, and so the cost of OLR, grows
// linearly with tauInf; tauInf itself is bounded only by MaxSurfacePressure.
func StepCount(tauInf float64) int {
	n := int(StepsPerTau * tauInf)
	if n < MinSteps {
		return MinSteps
	}
	return n
}

// olrIntegrand is the emission reaching the top of the atmosphere from
// optical depth delTau below it.
type olrIntegrand struct {
	profile Saturation
	tau0    float64
}

func (p olrIntegrand) f(delTau, _ float64) float64 {
	delTau = math.Min(delTau, MaxOpticalDepth)
	return blackbody(p.profile.Temperature(delTau/p.tau0)) * math.Exp(-delTau)
}

// OLR returns the outgoing longwave radiation [W/m²] of a column with surface
// pressure ps [Pa]. The surface emits as a black body at the temperature of
// the overlying air.
func (e *OLREngine) OLR(ps float64) (float64, error) {
	if err := e.checkSurfacePressure(ps); err != nil {
		return 0, err
	}
	tauInf := e.OpticalThickness(ps)
	p := olrIntegrand{profile: e.Profile, tau0: e.tau0}

	var atm float64
	switch e.Method {
	case Stepping:
		n := StepCount(tauInf)
		_, atm = integrate.NewRK4(p.f, 0, 0, tauInf/float64(n)).Steps(n)
	case Quadrature:
		res := e.Quadrature.Integrate(func(delTau float64) float64 { return p.f(delTau, 0) },
			0, math.Min(tauInf, MaxOpticalDepth))
		if !res.Converged {
			e.Log.WithFields(logrus.Fields{
				"ps":       ps,
				"tauInf":   tauInf,
				"order":    res.Order,
				"estimate": res.ErrorEstimate,
			}).Debug("greygas: OLR quadrature did not converge; using best estimate")
		}
		atm = res.Value
	}

	surface := blackbody(e.Profile.Temperature(ps/e.P0)) * math.Exp(-math.Min(tauInf, MaxOpticalDepth))
	return atm + surface, nil
}

// OLRPoint is the state of a saturated column with surface pressure Ps [Pa].
type OLRPoint struct {
	Ps, Ts, TauInf, OLR float64
}

// RunawaySweep returns the surface temperature, optical thickness, and OLR
// for each of the given surface pressures.
func (e *OLREngine) RunawaySweep(ps []float64) ([]OLRPoint, error) {
	o := make([]OLRPoint, len(ps))
	err := sweep(len(ps), e.Workers, func(i int) error {
		ts, err := e.SurfaceTemperature(ps[i])
		if err != nil {
			return err
		}
		olr, err := e.OLR(ps[i])
		if err != nil {
			return err
		}
		o[i] = OLRPoint{Ps: ps[i], Ts: ts, TauInf: e.OpticalThickness(ps[i]), OLR: olr}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GeometricPressures returns base·ratio^i [Pa] for i in [begin, end).
func GeometricPressures(base, ratio float64, begin, end int) []float64 {
	if end < begin {
		return nil
	}
	o := make([]float64, 0, end-begin)
	for i := begin; i < end; i++ {
		o = append(o, base*math.Pow(ratio, float64(i)))
	}
	return o
}

// DefaultRunawayPressures returns the surface pressures 10·1.06^i Pa for
// i in [-100, 120).
func DefaultRunawayPressures() []float64 {
	return GeometricPressures(10, 1.06, -100, 120)
}
