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
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
	"github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy/engine"
)

func writeInput(t *testing.T, dir, name string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// testInputs writes a one-country three-timestep system: gas and wind
// feeding a hub, the hub feeding a flat 60 of demand.
func testInputs(t *testing.T) *Config {
	t.Helper()
	in := t.TempDir()
	writeInput(t, in, "assets-hub-basic-data.csv",
		",,,",
		"name,type,country,year",
		"NL_Hub,hub,NL,2030",
	)
	writeInput(t, in, "assets-producer-basic-data.csv",
		",,,,",
		"name,type,country,year,profile_name",
		"NL_Gas,producer,NL,2030,",
		"NL_Wind,producer,NL,2030,wind",
	)
	writeInput(t, in, "assets-consumer-basic-data.csv",
		",,,,",
		"name,type,country,year,peak_demand",
		"NL_Load,consumer,NL,2030,60",
	)
	writeInput(t, in, "flows-basic-data.csv",
		",,,,",
		"from_asset,to_asset,year,capacity,variable_cost",
		"NL_Gas,NL_Hub,2030,100,50",
		"NL_Wind,NL_Hub,2030,50,0",
		"NL_Hub,NL_Load,2030,,",
	)
	writeInput(t, in, "profiles-availability.csv",
		",,",
		"year,timestep,wind",
		"2030,1,1",
		"2030,2,0.5",
		"2030,3,0",
	)
	writeInput(t, in, "rep-periods.csv",
		",,",
		"rep_period,num_timesteps,resolution",
		"1,3,1",
	)
	return &Config{
		InputFolder:  in,
		OutputFolder: t.TempDir(),
		DefaultYear:  2030,
		Replicate:    1,
		Tolerance:    1e-7,
	}
}

func TestPrep(t *testing.T) {
	c := testInputs(t)
	tables, err := Prep(c)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("record tables", func(t *testing.T) {
		if tables.Assets.Len() != 4 {
			t.Errorf("len(assets) = %d, want 4", tables.Assets.Len())
		}
		if tables.Flows.Len() != 3 {
			t.Errorf("len(flows) = %d, want 3", tables.Flows.Len())
		}
		// Unsupplied columns come from the defaults.
		for i := 0; i < tables.Flows.Len(); i++ {
			if eff := tables.Flows.Value(i, "efficiency"); eff.IsNull() || eff.Number() != 1 {
				t.Errorf("flow %d efficiency = %v, want 1", i, eff)
			}
		}
	})

	t.Run("profiles are melted", func(t *testing.T) {
		if tables.Profiles.Len() != 3 {
			t.Fatalf("len(profiles) = %d, want 3", tables.Profiles.Len())
		}
		if name := tables.Profiles.Value(0, "profile_name").Text(); name != "wind" {
			t.Errorf("profile_name = %q, want wind", name)
		}
		if rp := tables.Profiles.Value(0, "rep_period").Int(); rp != 1 {
			t.Errorf("rep_period = %d, want 1", rp)
		}
	})

	t.Run("flow partitions use defaults without partition files", func(t *testing.T) {
		if tables.FlowPartitions.Len() != 3 {
			t.Errorf("len(flow partitions) = %d, want 3", tables.FlowPartitions.Len())
		}
	})

	t.Run("normalized tables are written", func(t *testing.T) {
		for _, name := range []string{"assets.csv", "flows.csv", "profiles.csv", "assets-partitions.csv", "flows-partitions.csv", "rep-periods.csv"} {
			path := filepath.Join(c.OutputFolder, name)
			if _, err := os.Stat(path); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
		// The written asset table reads back row for row.
		back, err := obz.ReadTable(filepath.Join(c.OutputFolder, "assets.csv"), engine.AssetSchema())
		if err != nil {
			t.Fatal(err)
		}
		if back.Len() != tables.Assets.Len() {
			t.Errorf("read back %d asset rows, want %d", back.Len(), tables.Assets.Len())
		}
	})
}

func TestPrepReplicate(t *testing.T) {
	c := testInputs(t)
	writeInput(t, c.InputFolder, "assets-partitions-data.csv",
		",",
		"asset,partition",
		"NL_Gas,3",
	)
	c.Replicate = 2
	tables, err := Prep(c)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("flow partitions cover every rep period", func(t *testing.T) {
		// 3 flows, replicated over 2 representative periods.
		if tables.FlowPartitions.Len() != 6 {
			t.Fatalf("len(flow partitions) = %d, want 6", tables.FlowPartitions.Len())
		}
		perRep := map[int]int{}
		for i := range tables.FlowPartitions.Rows {
			perRep[tables.FlowPartitions.Value(i, "rep_period").Int()]++
		}
		if !reflect.DeepEqual(perRep, map[int]int{1: 3, 2: 3}) {
			t.Errorf("rows per rep_period = %v, want 3 each for 1 and 2", perRep)
		}
	})

	t.Run("endpoint partition reaches the flow", func(t *testing.T) {
		for i := range tables.FlowPartitions.Rows {
			if tables.FlowPartitions.Value(i, "from_asset").Text() != "NL_Gas" {
				continue
			}
			if p := tables.FlowPartitions.Value(i, "partition").Int(); p != 3 {
				t.Errorf("NL_Gas flow partition = %d, want 3", p)
			}
		}
	})

	t.Run("asset partitions are written replicated", func(t *testing.T) {
		back, err := obz.ReadTable(filepath.Join(c.OutputFolder, "assets-partitions.csv"), engine.AssetPartitionSchema())
		if err != nil {
			t.Fatal(err)
		}
		if back.Len() != 2 {
			t.Errorf("read back %d asset partition rows, want 2", back.Len())
		}
	})
}

func TestRun(t *testing.T) {
	c := testInputs(t)
	if err := Run(c); err != nil {
		t.Fatal(err)
	}

	t.Run("solution tables are written", func(t *testing.T) {
		for _, name := range []string{"flows-solution.csv", "country-balances.csv", "prices-per-country.csv", "state-of-charge.csv"} {
			if _, err := os.Stat(filepath.Join(c.OutputFolder, name)); err != nil {
				t.Errorf("%s: %v", name, err)
			}
		}
	})

	t.Run("balances net to zero", func(t *testing.T) {
		balances, err := obz.ReadRawTable(filepath.Join(c.OutputFolder, "country-balances.csv"))
		if err != nil {
			t.Fatal(err)
		}
		if balances.Len() == 0 {
			t.Fatal("balance table is empty")
		}
		sum := 0.0
		for i := range balances.Rows {
			sum += balances.Value(i, "solution").Number()
		}
		// Everything produced is consumed.
		if math.Abs(sum) > 1e-6 {
			t.Errorf("balance sum = %g, want 0", sum)
		}
	})

	t.Run("gas sets the price", func(t *testing.T) {
		prices, err := obz.ReadRawTable(filepath.Join(c.OutputFolder, "prices-per-country.csv"))
		if err != nil {
			t.Fatal(err)
		}
		if prices.Len() != 3 {
			t.Fatalf("len(prices) = %d, want 3", prices.Len())
		}
		for i := range prices.Rows {
			if p := prices.Value(i, "price").Number(); math.Abs(p-50) > 1e-6 {
				t.Errorf("price row %d = %g, want 50", i, p)
			}
		}
	})
}

func TestRunCharts(t *testing.T) {
	c := testInputs(t)
	c.Charts = true
	if err := Run(c); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"country-balances.png", "prices-per-country.png"} {
		if fi, err := os.Stat(filepath.Join(c.OutputFolder, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		} else if fi.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
