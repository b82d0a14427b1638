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
	"gonum.org/v1/gonum/floats"

	"github.com/spatialmodel/greygas/integrate"
	"github.com/spatialmodel/greygas/phys"
)

const (
	// ThickCutoff is the number of optical depth e-foldings away from a
	// level beyond which emission is not integrated when computing the
	// flux at that level.
	ThickCutoff = 10.

	// DefaultLevels is the number of evenly spaced pressure ratios in
	// a heating profile.
	DefaultLevels = 101

	// DisplayClampFactor is the multiple of the maximum exact net flux at
	// which FluxCurve.DisplayThick caps the optically thick approximation.
	DisplayClampFactor = 2.

	// broadeningOffset keeps the pressure broadening correction of the
	// optically thick approximation finite at the top of the atmosphere.
	broadeningOffset = 1e-10
)

// FluxConfig holds the configuration of a FluxEngine.
type FluxConfig struct {
	// Profile is the atmospheric temperature profile.
	Profile Adiabat

	// Tg is the ground temperature [K], which may differ from the surface
	// air temperature Profile.Ts.
	Tg float64

	// Broadening specifies the pressure dependence of optical depth.
	Broadening BroadeningMode

	// Quadrature is the integrator used for the Schwarzschild integrals.
	Quadrature integrate.Romberg

	// Workers is the maximum number of levels evaluated concurrently by
	// sweeps. If <= 0, runtime.GOMAXPROCS(0) is used.
	Workers int

	// Log receives quadrature convergence advisories. If nil,
	// the logrus standard logger is used.
	Log logrus.FieldLogger
}

// DefaultFluxConfig returns the configuration of a 300 K dry adiabat with no
// stratosphere, ground at the surface air temperature, and no pressure
// broadening.
func DefaultFluxConfig() FluxConfig {
	a := DefaultAdiabat()
	return FluxConfig{
		Profile:    a,
		Tg:         a.Ts,
		Broadening: NoBroadening,
		Quadrature: integrate.DefaultRomberg(),
	}
}

// FluxEngine computes upward and downward longwave fluxes in a grey gas
// atmosphere as a function of pressure normalized by surface pressure.
type FluxEngine struct {
	FluxConfig
}

// NewFluxEngine validates cfg and returns a new FluxEngine.
func NewFluxEngine(cfg FluxConfig) (*FluxEngine, error) {
	if err := cfg.Profile.Validate(); err != nil {
		return nil, err
	}
	if err := nonNegative("Tg", cfg.Tg); err != nil {
		return nil, err
	}
	if cfg.Broadening != NoBroadening && cfg.Broadening != PressureBroadening {
		return nil, fmt.Errorf("greygas: %w: unknown broadening mode %v", ErrInvalidConfig, cfg.Broadening)
	}
	if err := cfg.Quadrature.Validate(); err != nil {
		return nil, fmt.Errorf("greygas: %w: %v", ErrInvalidConfig, err)
	}
	cfg.Log = defaultLogger(cfg.Log)
	return &FluxEngine{FluxConfig: cfg}, nil
}

// fluxIntegrand is the Schwarzschild source term for the flux at a level
// with optical depth tau, written as an integrand over pressure ratio.
type fluxIntegrand struct {
	profile Adiabat
	mode    BroadeningMode
	tauInf  float64
	tau     float64
}

func (p fluxIntegrand) f(pps float64) float64 {
	t := p.profile.Temperature(pps)
	tr := Transmission(OpticalDepth(p.mode, p.tauInf, pps), p.tau)
	return tr * 4 * phys.Sigma * t * t * t * p.profile.DTemperature(pps)
}

// integrate evaluates the source term integral from pps to limit and logs
// an advisory if the quadrature did not converge.
func (e *FluxEngine) integrate(direction string, pps, limit, tauInf float64) float64 {
	p := fluxIntegrand{
		profile: e.Profile,
		mode:    e.Broadening,
		tauInf:  tauInf,
		tau:     OpticalDepth(e.Broadening, tauInf, pps),
	}
	res := e.Quadrature.Integrate(p.f, pps, limit)
	if !res.Converged {
		e.Log.WithFields(logrus.Fields{
			"direction": direction,
			"pps":       pps,
			"tauInf":    tauInf,
			"order":     res.Order,
			"estimate":  res.ErrorEstimate,
		}).Debug("greygas: flux quadrature did not converge; using best estimate")
	}
	return res.Value
}

// Iplus returns the upward flux [W/m²] at pressure ratio pps in a column
// with optical thickness tauInf. Emission from more than ThickCutoff
// optical depths below the level is neglected.
func (e *FluxEngine) Iplus(pps, tauInf float64) (float64, error) {
	pps, err := pressureRatio(pps)
	if err != nil {
		return 0, err
	}
	if err := checkOpticalThickness(tauInf); err != nil {
		return 0, err
	}
	limit := 1.
	if tauInf > 0 {
		limit = math.Min(1, pps+ThickCutoff/tauInf)
	}
	quad := e.integrate("up", pps, limit, tauInf)

	// Correction for a ground temperature that differs from the
	// surface air temperature.
	tau := OpticalDepth(e.Broadening, tauInf, pps)
	ground := (blackbody(e.Tg) - blackbody(e.Profile.Ts)) * Transmission(0, tau)

	return quad + blackbody(e.Profile.Temperature(pps)) + ground, nil
}

// Iminus returns the downward flux [W/m²] at pressure ratio pps in a column
// with optical thickness tauInf. Emission from more than ThickCutoff
// optical depths above the level is neglected.
func (e *FluxEngine) Iminus(pps, tauInf float64) (float64, error) {
	pps, err := pressureRatio(pps)
	if err != nil {
		return 0, err
	}
	if err := checkOpticalThickness(tauInf); err != nil {
		return 0, err
	}
	limit := 0.
	if tauInf > 0 {
		limit = math.Max(0, pps-ThickCutoff/tauInf)
	}
	quad := e.integrate("down", pps, limit, tauInf)

	// The isothermal stratosphere above the top of the column does not
	// radiate into it.
	tau := OpticalDepth(e.Broadening, tauInf, pps)
	strat := blackbody(e.Profile.Tstrat) * Transmission(tau, tauInf)

	return quad + blackbody(e.Profile.Temperature(pps)) - strat, nil
}

// Net returns the net upward flux Iplus - Iminus [W/m²].
func (e *FluxEngine) Net(pps, tauInf float64) (float64, error) {
	up, err := e.Iplus(pps, tauInf)
	if err != nil {
		return 0, err
	}
	down, err := e.Iminus(pps, tauInf)
	if err != nil {
		return 0, err
	}
	return up - down, nil
}

// ThickApprox returns the optically thick (diffusive) approximation
// 8σT³(dT/dpps)/tauInf to the net upward flux, including the pressure
// broadening correction when it is enabled. The approximation breaks
// down near the top of the atmosphere. tauInf must be > 0.
func (e *FluxEngine) ThickApprox(pps, tauInf float64) float64 {
	t := e.Profile.Temperature(pps)
	h := 2 * 4 * phys.Sigma * t * t * t * e.Profile.DTemperature(pps) / tauInf
	if e.Broadening == PressureBroadening {
		h *= 0.5 / (pps + broadeningOffset)
	}
	return h
}

// FluxSample holds the fluxes [W/m²] at one level.
type FluxSample struct {
	// Pps is pressure normalized by surface pressure.
	Pps float64

	// Up, Down, and Net are the upward, downward, and net upward fluxes.
	Up, Down, Net float64

	// Thick is the optically thick approximation to Net.
	Thick float64
}

// FluxCurve is a flux profile through a column.
type FluxCurve struct {
	TauInf     float64
	Broadening BroadeningMode
	Samples    []FluxSample
}

// Levels returns n evenly spaced pressure ratios from 0 to 1 inclusive.
// It panics if n < 2.
func Levels(n int) []float64 {
	return floats.Span(make([]float64, n), 0, 1)
}

// HeatProfile returns the flux profile at DefaultLevels evenly spaced
// pressure ratios for a column of optical thickness tauInf > 0.
func (e *FluxEngine) HeatProfile(tauInf float64) (*FluxCurve, error) {
	return e.HeatProfileOn(Levels(DefaultLevels), tauInf)
}

// HeatProfileOn returns the flux profile at the given pressure ratios for
// a column of optical thickness tauInf > 0.
func (e *FluxEngine) HeatProfileOn(levels []float64, tauInf float64) (*FluxCurve, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("greygas: %w: no levels for heating profile", ErrInvalidArgument)
	}
	if err := checkOpticalThickness(tauInf); err != nil {
		return nil, err
	}
	if tauInf == 0 {
		return nil, fmt.Errorf("greygas: %w: the optically thick approximation needs tauInf > 0", ErrInvalidArgument)
	}
	c := &FluxCurve{
		TauInf:     tauInf,
		Broadening: e.Broadening,
		Samples:    make([]FluxSample, len(levels)),
	}
	err := sweep(len(levels), e.Workers, func(i int) error {
		pps := levels[i]
		up, err := e.Iplus(pps, tauInf)
		if err != nil {
			return err
		}
		down, err := e.Iminus(pps, tauInf)
		if err != nil {
			return err
		}
		c.Samples[i] = FluxSample{
			Pps:   pps,
			Up:    up,
			Down:  down,
			Net:   up - down,
			Thick: e.ThickApprox(pps, tauInf),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (c *FluxCurve) column(f func(s FluxSample) float64) []float64 {
	o := make([]float64, len(c.Samples))
	for i, s := range c.Samples {
		o[i] = f(s)
	}
	return o
}

// Pps returns the pressure ratios of the samples.
func (c *FluxCurve) Pps() []float64 { return c.column(func(s FluxSample) float64 { return s.Pps }) }

// Up returns the upward fluxes.
func (c *FluxCurve) Up() []float64 { return c.column(func(s FluxSample) float64 { return s.Up }) }

// Down returns the downward fluxes.
func (c *FluxCurve) Down() []float64 { return c.column(func(s FluxSample) float64 { return s.Down }) }

// Net returns the net upward fluxes.
func (c *FluxCurve) Net() []float64 { return c.column(func(s FluxSample) float64 { return s.Net }) }

// Thick returns the optically thick approximation to the net flux.
func (c *FluxCurve) Thick() []float64 { return c.column(func(s FluxSample) float64 { return s.Thick }) }

// DisplayThick returns the optically thick approximation capped at
// DisplayClampFactor times the maximum exact net flux, so that its
// divergence near the top of the atmosphere does not swamp the scale of a
// plot. Capped values are a presentation device with no physical meaning.
func (c *FluxCurve) DisplayThick() []float64 {
	o := c.Thick()
	if len(o) == 0 {
		return o
	}
	limit := DisplayClampFactor * floats.Max(c.Net())
	for i, v := range o {
		o[i] = math.Min(v, limit)
	}
	return o
}

// TauPoint is the OLR [W/m²] of a column of optical thickness TauInf.
type TauPoint struct {
	TauInf, OLR float64
}

// TauGrid returns optical thicknesses from lo to hi inclusive, spaced by
// approximately step.
func TauGrid(lo, hi, step float64) ([]float64, error) {
	if !(lo >= 0) || !(hi >= lo) || !(step > 0) || math.IsInf(hi, 0) {
		return nil, fmt.Errorf("greygas: %w: tau grid from %g to %g by %g", ErrInvalidArgument, lo, hi, step)
	}
	n := int(math.Round((hi-lo)/step)) + 1
	if n == 1 {
		return []float64{lo}, nil
	}
	return floats.Span(make([]float64, n), lo, hi), nil
}

// DefaultTauSweep returns the optical thicknesses 0.1, 0.2, ..., 49.9.
func DefaultTauSweep() []float64 {
	taus, _ := TauGrid(0.1, 49.9, 0.1)
	return taus
}

// OLRvsTau returns the OLR, which is the upward flux at the top of the
// atmosphere, for each of the given optical thicknesses.
func (e *FluxEngine) OLRvsTau(taus []float64) ([]TauPoint, error) {
	o := make([]TauPoint, len(taus))
	err := sweep(len(taus), e.Workers, func(i int) error {
		olr, err := e.Iplus(0, taus[i])
		if err != nil {
			return err
		}
		o[i] = TauPoint{TauInf: taus[i], OLR: olr}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}
