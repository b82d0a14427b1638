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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/spatialmodel/greygas"
	"github.com/spatialmodel/greygas/integrate"
)

// Romberg unmarshals a viper configuration for a Romberg integrator.
func Romberg(cfg *viper.Viper) (integrate.Romberg, error) {
	r := integrate.Romberg{
		MaxOrder:  cfg.GetInt("Quadrature.MaxOrder"),
		Tolerance: cfg.GetFloat64("Quadrature.Tolerance"),
		StartStep: cfg.GetFloat64("Quadrature.StartStep"),
	}
	if err := r.Validate(); err != nil {
		return r, fmt.Errorf("parsing quadrature configuration: %v", err)
	}
	return r, nil
}

// FluxConfig unmarshals a viper configuration for a flux engine.
func FluxConfig(cfg *viper.Viper) (greygas.FluxConfig, error) {
	c := greygas.DefaultFluxConfig()
	c.Profile = greygas.Adiabat{
		Ts:     cfg.GetFloat64("Profile.Ts"),
		Tstrat: cfg.GetFloat64("Profile.Tstrat"),
		Rcp:    cfg.GetFloat64("Profile.Rcp"),
	}
	c.Tg = cfg.GetFloat64("Profile.Tg")
	if c.Tg < 0 {
		c.Tg = c.Profile.Ts
	}
	var err error
	if c.Broadening, err = greygas.ParseBroadeningMode(strings.ToLower(cfg.GetString("Broadening"))); err != nil {
		return c, err
	}
	if c.Quadrature, err = Romberg(cfg); err != nil {
		return c, err
	}
	c.Workers = cfg.GetInt("Workers")
	return c, nil
}

// SweepConfig returns the optical thicknesses of the configured OLR sweep.
func SweepConfig(cfg *viper.Viper) ([]float64, error) {
	taus, err := greygas.TauGrid(cfg.GetFloat64("Sweep.TauMin"), cfg.GetFloat64("Sweep.TauMax"),
		cfg.GetFloat64("Sweep.TauStep"))
	if err != nil {
		return nil, fmt.Errorf("parsing sweep configuration: %w", err)
	}
	return taus, nil
}

// OLRConfig unmarshals a viper configuration for a saturated water vapor
// OLR engine.
func OLRConfig(cfg *viper.Viper) (greygas.OLRConfig, error) {
	c, err := greygas.NewWaterOLRConfig(cfg.GetFloat64("Runaway.T0"))
	if err != nil {
		return c, fmt.Errorf("parsing runaway configuration: %w", err)
	}
	c.Kappa = cfg.GetFloat64("Runaway.Kappa")
	c.Gravity = cfg.GetFloat64("Runaway.Gravity")
	if c.Method, err = greygas.ParseMethod(strings.ToLower(cfg.GetString("Runaway.Method"))); err != nil {
		return c, err
	}
	if c.Quadrature, err = Romberg(cfg); err != nil {
		return c, err
	}
	c.Workers = cfg.GetInt("Workers")
	return c, nil
}

// RunawayPressures returns the surface pressures [Pa] of the configured
// runaway sweep.
func RunawayPressures(cfg *viper.Viper) ([]float64, error) {
	base := cfg.GetFloat64("Runaway.PsBase")
	ratio := cfg.GetFloat64("Runaway.PsRatio")
	begin, end := cfg.GetInt("Runaway.IndexBegin"), cfg.GetInt("Runaway.IndexEnd")
	vars := []float64{base, ratio}
	varNames := []string{"Runaway.PsBase", "Runaway.PsRatio"}
	for i, v := range vars {
		if !(v > 0) {
			return nil, fmt.Errorf("parsing runaway configuration: %s=%g but should be >0", varNames[i], v)
		}
	}
	if end <= begin {
		return nil, fmt.Errorf("parsing runaway configuration: Runaway.IndexEnd=%d but should be >Runaway.IndexBegin=%d",
			end, begin)
	}
	return greygas.GeometricPressures(base, ratio, begin, end), nil
}

// toFloat64SliceE converts a configuration value to a slice of floats.
// Values from configuration files are slices, while values from
// command-line arguments or environment variables are strings such as
// "[1,10]" or "1,10".
func toFloat64SliceE(s interface{}) ([]float64, error) {
	switch v := s.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(val)
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	case []string:
		o := make([]float64, len(v))
		for i, val := range v {
			f, err := cast.ToFloat64E(strings.TrimSpace(val))
			if err != nil {
				return nil, err
			}
			o[i] = f
		}
		return o, nil
	case string:
		v = strings.TrimSpace(v)
		if !strings.HasPrefix(v, "[") {
			v = "[" + v + "]"
		}
		var o []float64
		if err := json.Unmarshal([]byte(v), &o); err != nil {
			return nil, err
		}
		return o, nil
	default:
		return nil, fmt.Errorf("invalid type %T for a list of numbers", s)
	}
}

// checkOutputFile expands any environment variables in the output file
// path and makes sure that its directory exists and its format is known.
// An empty path means results are printed as a table.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return f, nil
	}
	f = os.ExpandEnv(f)
	if _, err := format(f); err != nil {
		return f, err
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("greygas: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// settings returns the current value of every option except the
// configuration file location, nested by the dotted parts of its name.
func settings(cfg *viper.Viper) (map[string]interface{}, error) {
	o := make(map[string]interface{})
	for _, option := range options {
		if option.name == "config" {
			continue
		}
		var v interface{}
		switch option.defaultVal.(type) {
		case string:
			v = cfg.GetString(option.name)
		case int:
			v = cfg.GetInt(option.name)
		case float64:
			v = cfg.GetFloat64(option.name)
		case []float64:
			f, err := toFloat64SliceE(cfg.Get(option.name))
			if err != nil {
				return nil, fmt.Errorf("greygas: %s: %v", option.name, err)
			}
			v = f
		}
		m := o
		parts := strings.Split(option.name, ".")
		for _, p := range parts[:len(parts)-1] {
			sub, ok := m[p].(map[string]interface{})
			if !ok {
				sub = make(map[string]interface{})
				m[p] = sub
			}
			m = sub
		}
		m[parts[len(parts)-1]] = v
	}
	return o, nil
}

// WriteConfig writes the effective configuration to w in TOML format.
func WriteConfig(w io.Writer, cfg *viper.Viper) error {
	s, err := settings(cfg)
	if err != nil {
		return err
	}
	return toml.NewEncoder(w).Encode(s)
}
