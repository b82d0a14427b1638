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

// Package greygasutil provides the greygas command line interface and the
// functions behind it, which translate configuration into engine runs and
// write the results as tables, CSV files, or plots.
package greygasutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/spatialmodel/greygas"
	"github.com/spatialmodel/greygas/integrate"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to greygas.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the lowest level of log messages to print.
              Set it to "debug" to see quadrature convergence advisories.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Workers",
			usage: `
              Workers specifies the maximum number of points evaluated
              concurrently in a sweep. If it is zero or less, the number
              of available processors is used.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags(), runawayCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path to write results to. Files ending
              in .csv are written as comma separated values; files ending in
              .png, .svg, .pdf, .eps, .jpg, or .tif are written as plots.
              If it is empty, results are printed as a table.`,
			shorthand:  "o",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags(), runawayCmd.Flags()},
		},
		{
			name: "Profile.Ts",
			usage: `
              Profile.Ts specifies the surface air temperature [K] of the
              dry adiabat.`,
			defaultVal: 300.,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags()},
		},
		{
			name: "Profile.Tg",
			usage: `
              Profile.Tg specifies the ground temperature [K]. If it is
              less than zero, the ground is at the surface air temperature
              Profile.Ts.`,
			defaultVal: -1.,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags()},
		},
		{
			name: "Profile.Tstrat",
			usage: `
              Profile.Tstrat specifies the temperature [K] of the isothermal
              stratosphere. Zero means there is no stratosphere.`,
			defaultVal: 0.,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags()},
		},
		{
			name: "Profile.Rcp",
			usage: `
              Profile.Rcp specifies the ratio of the gas constant to the
              specific heat of the atmosphere, which sets the adiabatic
              lapse rate.`,
			defaultVal: 2. / 7.,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags()},
		},
		{
			name: "Broadening",
			usage: `
              Broadening specifies how optical depth depends on pressure:
              "none" for linear or "pressure" for pressure broadened
              (quadratic).`,
			defaultVal: "none",
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags()},
		},
		{
			name: "Quadrature.MaxOrder",
			usage: `
              Quadrature.MaxOrder specifies the maximum number of rows in the
              Romberg extrapolation tableau.`,
			defaultVal: integrate.DefaultMaxOrder,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags(), runawayCmd.Flags()},
		},
		{
			name: "Quadrature.Tolerance",
			usage: `
              Quadrature.Tolerance specifies the relative change between
              successive Romberg estimates at which an integral is
              considered converged.`,
			defaultVal: integrate.DefaultTolerance,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags(), runawayCmd.Flags()},
		},
		{
			name: "Quadrature.StartStep",
			usage: `
              Quadrature.StartStep specifies the largest panel width in the
              first Romberg trapezoid estimate.`,
			defaultVal: integrate.DefaultStartStep,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags(), olrCmd.Flags(), runawayCmd.Flags()},
		},
		{
			name: "Flux.Levels",
			usage: `
              Flux.Levels specifies the number of evenly spaced pressure
              levels, from the top of the atmosphere to the surface, in
              each heating profile.`,
			defaultVal: greygas.DefaultLevels,
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags()},
		},
		{
			name: "Flux.TauInf",
			usage: `
              Flux.TauInf specifies the total optical thicknesses of the
              columns to compute heating profiles for.`,
			defaultVal: []float64{1, 10},
			flagsets:   []*pflag.FlagSet{fluxCmd.Flags()},
		},
		{
			name: "Sweep.TauMin",
			usage: `
              Sweep.TauMin specifies the smallest optical thickness in the
              OLR sweep.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{olrCmd.Flags()},
		},
		{
			name: "Sweep.TauMax",
			usage: `
              Sweep.TauMax specifies the largest optical thickness in the
              OLR sweep.`,
			defaultVal: 49.9,
			flagsets:   []*pflag.FlagSet{olrCmd.Flags()},
		},
		{
			name: "Sweep.TauStep",
			usage: `
              Sweep.TauStep specifies the optical thickness increment of the
              OLR sweep.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{olrCmd.Flags()},
		},
		{
			name: "Runaway.T0",
			usage: `
              Runaway.T0 specifies the reference temperature [K] of the
              saturated water vapor column. The reference pressure is the
              saturation vapor pressure at this temperature.`,
			defaultVal: 300.,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.Kappa",
			usage: `
              Runaway.Kappa specifies the specific absorption cross-section
              [m²/kg] of water vapor.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.Gravity",
			usage: `
              Runaway.Gravity specifies the gravitational acceleration [m/s²].`,
			defaultVal: 10.,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.Method",
			usage: `
              Runaway.Method specifies how the OLR integral is evaluated:
              "stepping" for Runge-Kutta steps in optical depth or
              "quadrature" for Romberg quadrature.`,
			defaultVal: "stepping",
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.PsBase",
			usage: `
              Runaway.PsBase specifies the base surface pressure [Pa] of the
              geometric series of surface pressures in the runaway sweep.`,
			defaultVal: 10.,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.PsRatio",
			usage: `
              Runaway.PsRatio specifies the ratio between successive surface
              pressures in the runaway sweep.`,
			defaultVal: 1.06,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.IndexBegin",
			usage: `
              Runaway.IndexBegin specifies the first (inclusive) exponent of
              the surface pressure series PsBase·PsRatio^i.`,
			defaultVal: -100,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
		{
			name: "Runaway.IndexEnd",
			usage: `
              Runaway.IndexEnd specifies the last (exclusive) exponent of
              the surface pressure series PsBase·PsRatio^i.`,
			defaultVal: 120,
			flagsets:   []*pflag.FlagSet{runawayCmd.Flags()},
		},
	}

	// config accepts every command option so that its output reflects
	// command-line arguments.
	for i := range options {
		if options[i].flagsets[0] != Root.PersistentFlags() {
			options[i].flagsets = append(options[i].flagsets, configCmd.Flags())
		}
	}

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			case []float64:
				if option.shorthand == "" {
					set.Float64Slice(option.name, option.defaultVal.([]float64), option.usage)
				} else {
					set.Float64SliceP(option.name, option.shorthand, option.defaultVal.([]float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
		}
	}

	Cfg = newConfig()
}

// newConfig returns a configuration bound to the command-line flags.
func newConfig() *viper.Viper {
	cfg := viper.New()

	// Set the prefix for configuration environment variables, so that
	// for example Profile.Ts can be set with GREYGAS_PROFILE_TS.
	cfg.SetEnvPrefix("GREYGAS")
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	for _, option := range options {
		cfg.BindPFlag(option.name, option.flagsets[0].Lookup(option.name))
	}
	return cfg
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(fluxCmd)
	Root.AddCommand(olrCmd)
	Root.AddCommand(runawayCmd)
	Root.AddCommand(configCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(os.ExpandEnv(cfgpath))
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("greygas: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// setLogger configures the standard logger to write to the error stream
// of cmd at the configured level.
func setLogger(cmd *cobra.Command) error {
	level, err := logrus.ParseLevel(Cfg.GetString("LogLevel"))
	if err != nil {
		return fmt.Errorf("greygas: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(cmd.ErrOrStderr())
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "greygas",
	Short: "Grey gas radiative fluxes and the runaway greenhouse.",
	Long: `greygas computes longwave radiative fluxes in grey gas atmospheres by
integrating the Schwarzschild equations over optical depth. Use the subcommands
specified below to compute heating profiles, the dependence of outgoing longwave
radiation (OLR) on optical thickness, or the OLR of a saturated water vapor
atmosphere as its surface pressure increases toward the runaway greenhouse limit.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GREYGAS_var' where 'var' is the
name of the variable to be set, with periods replaced by underscores.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setConfig(); err != nil {
			return err
		}
		return setLogger(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of greygas.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("greygas v%s\n", greygas.Version)
	},
	DisableAutoGenTag: true,
}

// fluxCmd computes heating profiles.
var fluxCmd = &cobra.Command{
	Use:   "flux",
	Short: "Compute upward, downward, and net flux profiles.",
	Long: `flux computes the upward, downward, and net longwave fluxes at evenly
spaced pressure levels in a dry adiabatic column for each of the optical
thicknesses in Flux.TauInf, together with the optically thick approximation
to the net flux.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := FluxConfig(Cfg)
		if err != nil {
			return err
		}
		taus, err := toFloat64SliceE(Cfg.Get("Flux.TauInf"))
		if err != nil {
			return fmt.Errorf("greygas: Flux.TauInf: %v", err)
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return Flux(cmd.OutOrStdout(), cfg, taus, Cfg.GetInt("Flux.Levels"), outputFile)
	},
	DisableAutoGenTag: true,
}

// olrCmd computes OLR as a function of optical thickness.
var olrCmd = &cobra.Command{
	Use:   "olr",
	Short: "Compute OLR as a function of optical thickness.",
	Long: `olr computes the outgoing longwave radiation of a dry adiabatic column
for each optical thickness from Sweep.TauMin to Sweep.TauMax in increments of
Sweep.TauStep.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := FluxConfig(Cfg)
		if err != nil {
			return err
		}
		taus, err := SweepConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return OLR(cmd.OutOrStdout(), cfg, taus, outputFile)
	},
	DisableAutoGenTag: true,
}

// runawayCmd computes OLR of a saturated column as a function of
// surface pressure.
var runawayCmd = &cobra.Command{
	Use:   "runaway",
	Short: "Compute OLR of a saturated water vapor column.",
	Long: `runaway computes the surface temperature, optical thickness, and outgoing
longwave radiation of a saturated pure water vapor column for a geometric series
of surface pressures. As the surface pressure increases the OLR approaches a
limit that does not depend on surface temperature, which is the signature of the
runaway greenhouse.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := OLRConfig(Cfg)
		if err != nil {
			return err
		}
		ps, err := RunawayPressures(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return Runaway(cmd.OutOrStdout(), cfg, ps, outputFile)
	},
	DisableAutoGenTag: true,
}

// configCmd prints the effective configuration.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the configuration.",
	Long: `config prints the effective configuration, after combining defaults, the
configuration file, environment variables, and command-line arguments, in TOML
format. The output can be used as a configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return WriteConfig(cmd.OutOrStdout(), Cfg)
	},
	DisableAutoGenTag: true,
}
