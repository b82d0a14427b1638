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

package greygasutil

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"

	"github.com/spatialmodel/greygas"
	"github.com/spatialmodel/greygas/internal/hash"
)

// Flux computes heating profiles at levels evenly spaced pressure ratios
// for each of the optical thicknesses taus and writes them to outputFile,
// or to w as a table if outputFile is empty.
func Flux(w io.Writer, cfg greygas.FluxConfig, taus []float64, levels int, outputFile string) error {
	if len(taus) == 0 {
		return fmt.Errorf("greygas: %w: no optical thicknesses specified", greygas.ErrInvalidArgument)
	}
	if levels < 2 {
		return fmt.Errorf("greygas: %w: Flux.Levels=%d but should be >=2", greygas.ErrInvalidArgument, levels)
	}
	key := fingerprint(cfg, taus, levels)
	e, err := greygas.NewFluxEngine(cfg)
	if err != nil {
		return err
	}
	log := e.Log.WithFields(logrus.Fields{"command": "flux", "config": key})
	log.WithFields(logrus.Fields{"profiles": len(taus), "levels": levels}).Info("computing heating profiles")
	start := time.Now()

	pps := greygas.Levels(levels)
	curves := make([]*greygas.FluxCurve, len(taus))
	t := &table{header: []string{"tau_inf", "pps", "up", "down", "net", "thick"}}
	for i, tau := range taus {
		if curves[i], err = e.HeatProfileOn(pps, tau); err != nil {
			return err
		}
		for _, s := range curves[i].Samples {
			t.rows = append(t.rows, []float64{tau, s.Pps, s.Up, s.Down, s.Net, s.Thick})
		}
	}
	if err := writeOutput(w, outputFile, t, func() (*plot.Plot, error) { return fluxPlot(curves) }); err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("finished heating profiles")
	return nil
}

// OLR computes the outgoing longwave radiation for each of the optical
// thicknesses taus and writes it to outputFile, or to w as a table if
// outputFile is empty.
func OLR(w io.Writer, cfg greygas.FluxConfig, taus []float64, outputFile string) error {
	key := fingerprint(cfg, taus)
	e, err := greygas.NewFluxEngine(cfg)
	if err != nil {
		return err
	}
	log := e.Log.WithFields(logrus.Fields{"command": "olr", "config": key})
	log.WithField("points", len(taus)).Info("computing OLR")
	start := time.Now()

	pts, err := e.OLRvsTau(taus)
	if err != nil {
		return err
	}
	t := &table{header: []string{"tau_inf", "olr"}}
	for _, p := range pts {
		t.rows = append(t.rows, []float64{p.TauInf, p.OLR})
	}
	if err := writeOutput(w, outputFile, t, func() (*plot.Plot, error) { return olrPlot(pts) }); err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("finished OLR")
	return nil
}

// Runaway computes the surface temperature, optical thickness, and outgoing
// longwave radiation of a saturated column at each of the surface pressures
// ps and writes them to outputFile, or to w as a table if outputFile is empty.
func Runaway(w io.Writer, cfg greygas.OLRConfig, ps []float64, outputFile string) error {
	key := fingerprint(cfg, ps)
	e, err := greygas.NewOLREngine(cfg)
	if err != nil {
		return err
	}
	log := e.Log.WithFields(logrus.Fields{"command": "runaway", "config": key})
	log.WithFields(logrus.Fields{
		"points": len(ps),
		"method": e.Method,
		"tau0":   e.Tau0(),
	}).Info("computing runaway greenhouse sweep")
	start := time.Now()

	pts, err := e.RunawaySweep(ps)
	if err != nil {
		return err
	}
	t := &table{header: []string{"ps", "ts", "tau_inf", "olr"}}
	for _, p := range pts {
		t.rows = append(t.rows, []float64{p.Ps, p.Ts, p.TauInf, p.OLR})
	}
	if err := writeOutput(w, outputFile, t, func() (*plot.Plot, error) { return runawayPlot(pts) }); err != nil {
		return err
	}
	log.WithField("elapsed", time.Since(start)).Info("finished runaway greenhouse sweep")
	return nil
}

// fingerprint returns a key identifying an engine configuration and its
// arguments in log records.
func fingerprint(cfg interface{}, args ...interface{}) string {
	switch c := cfg.(type) {
	case greygas.FluxConfig:
		c.Log = nil
		cfg = c
	case greygas.OLRConfig:
		c.Log = nil
		cfg = c
	}
	return hash.Short(append([]interface{}{cfg}, args...))
}
