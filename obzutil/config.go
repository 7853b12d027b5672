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

package obzutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy/cluster"
)

// Config is the validated pipeline configuration.
type Config struct {
	InputFolder  string
	OutputFolder string
	DefaultYear  int
	Rename       map[string]string
	Replicate    int
	Cluster      cluster.Config
	Tolerance    float64
	Charts       bool
}

// PipelineConfig validates the viper configuration and assembles it into
// a Config.
func PipelineConfig(cfg *viper.Viper) (*Config, error) {
	in, err := checkInputFolder(cfg.GetString("InputFolder"))
	if err != nil {
		return nil, err
	}
	out, err := checkOutputFolder(cfg.GetString("OutputFolder"))
	if err != nil {
		return nil, err
	}
	method, err := checkClusterMethod(cfg.GetString("ClusterMethod"))
	if err != nil {
		return nil, err
	}
	year := cfg.GetInt("DefaultYear")
	if year <= 0 {
		return nil, fmt.Errorf("obz: the DefaultYear configuration variable must be positive, but is %d", year)
	}
	replicate := cfg.GetInt("Replicate")
	if replicate < 1 {
		return nil, fmt.Errorf("obz: the Replicate configuration variable must be at least 1, but is %d", replicate)
	}
	return &Config{
		InputFolder:  in,
		OutputFolder: out,
		DefaultYear:  year,
		Rename:       GetStringMapString("ColumnRename", cfg),
		Replicate:    replicate,
		Cluster: cluster.Config{
			Periods:      cfg.GetInt("ClusterPeriods"),
			PeriodLength: cfg.GetInt("ClusterPeriodLength"),
			Method:       method,
			Resolution:   cfg.GetFloat64("Resolution"),
		},
		Tolerance: cfg.GetFloat64("Tolerance"),
		Charts:    cfg.GetBool("Charts"),
	}, nil
}

// checkInputFolder expands any environment variables in the input folder
// path and makes sure it exists.
func checkInputFolder(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("obz: you need to specify an input folder configuration variable (for example: InputFolder=\"inputs\")")
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("obz: the InputFolder directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkOutputFolder expands any environment variables in the output
// folder path and creates the directory if it is absent.
func checkOutputFolder(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("obz: you need to specify an output folder configuration variable (for example: OutputFolder=\"outputs\")")
	}
	f = os.ExpandEnv(f)
	if err := os.MkdirAll(f, 0o755); err != nil {
		return f, fmt.Errorf("obz: creating the OutputFolder directory: %v", err)
	}
	return f, nil
}

// checkClusterMethod ensures an acceptable clustering method was
// specified.
func checkClusterMethod(m string) (string, error) {
	if m != cluster.KMedoids && m != cluster.First {
		return m, fmt.Errorf("obz: the ClusterMethod configuration variable needs to be set to either %s or %s, but is currently set to `%s`",
			cluster.KMedoids, cluster.First, m)
	}
	return m, nil
}

// GetStringMapString returns a map[string]string from a viper
// configuration, accounting for the fact that it might be a json object
// if it was set from a command line argument. An unset variable is an
// empty map.
func GetStringMapString(varName string, cfg *viper.Viper) map[string]string {
	i := cfg.Get(varName)
	switch i.(type) {
	case nil:
		return map[string]string{}
	case map[string]string:
		return i.(map[string]string)
	case map[string]interface{}:
		return cast.ToStringMapString(i)
	case string:
		b := bytes.NewBuffer(([]byte)(i.(string)))
		d := json.NewDecoder(b)
		o := make(map[string]string)
		if err := d.Decode(&o); err != nil {
			panic(err)
		}
		return o
	default:
		panic(fmt.Errorf("invalid type for getStringMapString variable %s: %#v", varName, i))
	}
}
