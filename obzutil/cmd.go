/*
Copyright © 2024 the Tulipa OBZ case study authors.
This file is part of the Tulipa OBZ case study.

The Tulipa OBZ case study is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Tulipa OBZ case study is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Tulipa OBZ case study.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package obzutil holds the configuration and command-line interface of
// the obz tool.
package obzutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

// Log receives the pipeline's progress messages.
var Log logrus.FieldLogger = logrus.StandardLogger()

// option is one configuration option: its viper key, flag usage text,
// default value, and the flag sets it is registered on.
type option struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

var options []option

func init() {
	// Options are the configuration options available to the obz tool.
	options = []option{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFolder",
			usage: `
              InputFolder is the directory holding the user input CSV files.
              Files are selected by filename prefix and suffix: asset and flow
              records end in basic-data.csv, time partitions end in
              partitions-data.csv, and profiles start with 'profiles'.`,
			shorthand:  "i",
			defaultVal: "inputs",
			flagsets:   []*pflag.FlagSet{prepCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "OutputFolder",
			usage: `
              OutputFolder is the directory the normalized tables, solution
              tables and charts are written to. It is created if absent.`,
			shorthand:  "o",
			defaultVal: "outputs",
			flagsets:   []*pflag.FlagSet{prepCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "DefaultYear",
			usage: `
              DefaultYear fills in milestone and commission years on records
              that do not specify one.`,
			defaultVal: 2030,
			flagsets:   []*pflag.FlagSet{prepCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "ColumnRename",
			usage: `
              ColumnRename maps user column names to their schema names,
              for input files whose headers do not match the schema.`,
			defaultVal: map[string]string{},
			flagsets:   []*pflag.FlagSet{prepCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "Replicate",
			usage: `
              Replicate duplicates every asset and flow record this many
              times, renumbering rep_period 1..n. Useful for turning a
              single-period dataset into a multi-period one.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{prepCmd.Flags(), runCmd.Flags()},
		},
		{
			name: "ClusterPeriods",
			usage: `
              ClusterPeriods is the number of representative periods to reduce
              the profile timeline to before solving. Zero disables
              clustering and solves the full timeline.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ClusterPeriodLength",
			usage: `
              ClusterPeriodLength is the number of timesteps per candidate
              period; the profile timeline length must be a multiple of it.`,
			defaultVal: 24,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ClusterMethod",
			usage: `
              ClusterMethod selects how representative periods are chosen:
              'kmedoids', or 'first' to take the first ClusterPeriods periods.`,
			defaultVal: "kmedoids",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Resolution",
			usage: `
              Resolution is the duration of one timestep in hours.`,
			defaultVal: 1.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Tolerance",
			usage: `
              Tolerance is the convergence tolerance passed to the dispatch
              solver.`,
			defaultVal: 1.0e-7,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Charts",
			usage: `
              Charts specifies whether to write PNG charts of the country
              balances and price series next to the CSV outputs.`,
			defaultVal: true,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("OBZ")

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
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
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
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(option.defaultVal)
				s := string(b.Bytes())
				if option.shorthand == "" {
					set.String(option.name, s, option.usage)
				} else {
					set.StringP(option.name, option.shorthand, s, option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(prepCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("obz: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "obz",
	Short: "An offshore-bidding-zone energy system case study.",
	Long: `obz normalizes energy-system CSV inputs into schema-conformant
tables, solves the dispatch problem over the resulting asset/flow graph, and
aggregates the solution into per-country balances, prices and storage levels.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'OBZ_var' where 'var' is the
name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of the obz tool.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("obz v%s\n", obz.Version)
	},
	DisableAutoGenTag: true,
}

var prepCmd = &cobra.Command{
	Use:   "prep",
	Short: "Normalize the input tables without solving.",
	Long: `prep builds the schema-conformant asset, flow, profile and
partition tables from the user CSV files and writes them to the output
folder, without running the solver. Use it to inspect how the inputs are
interpreted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := PipelineConfig(Cfg)
		if err != nil {
			return err
		}
		_, err = Prep(c)
		return err
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full case-study pipeline.",
	Long: `run normalizes the inputs, optionally reduces the profile timeline
to representative periods, solves the dispatch problem, and writes the
solution flows, country balances, price series and storage levels to the
output folder.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := PipelineConfig(Cfg)
		if err != nil {
			return err
		}
		return Run(c)
	},
	DisableAutoGenTag: true,
}
