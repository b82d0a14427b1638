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

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/spatialmodel/greygas"
)

const (
	plotWidth  = 6 * vg.Inch
	plotHeight = 4 * vg.Inch
)

func xys(x, y []float64) plotter.XYs {
	o := make(plotter.XYs, len(x))
	for i := range x {
		o[i].X = x[i]
		o[i].Y = y[i]
	}
	return o
}

// fluxPlot plots net flux and its optically thick approximation against
// pressure, with the surface at the bottom.
func fluxPlot(curves []*greygas.FluxCurve) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Net upward flux"
	p.X.Label.Text = "Flux [W/m²]"
	p.Y.Label.Text = "p/ps"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Legend.Top = true

	for i, c := range curves {
		pps := c.Pps()
		net, err := plotter.NewLine(xys(c.Net(), pps))
		if err != nil {
			return nil, err
		}
		net.Color = plotutil.Color(i)
		thick, err := plotter.NewLine(xys(c.DisplayThick(), pps))
		if err != nil {
			return nil, err
		}
		thick.Color = plotutil.Color(i)
		thick.Dashes = plotutil.Dashes(1)
		p.Add(net, thick)
		p.Legend.Add(fmt.Sprintf("τ∞=%g", c.TauInf), net)
		p.Legend.Add(fmt.Sprintf("τ∞=%g (thick)", c.TauInf), thick)
	}
	return p, nil
}

// olrPlot plots OLR against optical thickness.
func olrPlot(pts []greygas.TauPoint) (*plot.Plot, error) {
	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, pt := range pts {
		x[i], y[i] = pt.TauInf, pt.OLR
	}
	p := plot.New()
	p.Title.Text = "Outgoing longwave radiation"
	p.X.Label.Text = "τ∞"
	p.Y.Label.Text = "OLR [W/m²]"
	l, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return nil, err
	}
	p.Add(l)
	return p, nil
}

// runawayPlot plots OLR against surface temperature.
func runawayPlot(pts []greygas.OLRPoint) (*plot.Plot, error) {
	x := make([]float64, len(pts))
	y := make([]float64, len(pts))
	for i, pt := range pts {
		x[i], y[i] = pt.Ts, pt.OLR
	}
	p := plot.New()
	p.Title.Text = "Saturated water vapor column"
	p.X.Label.Text = "Surface temperature [K]"
	p.Y.Label.Text = "OLR [W/m²]"
	l, err := plotter.NewLine(xys(x, y))
	if err != nil {
		return nil, err
	}
	p.Add(l, plotter.NewGrid())
	return p, nil
}
