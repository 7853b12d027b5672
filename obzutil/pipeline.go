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
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
	"github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy/cluster"
	"github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy/engine"
)

// Input file naming convention: asset and flow records end in
// basic-data.csv, time partitions end in partitions-data.csv, wide
// profile files start with "profiles", and rep-period metadata files
// start with "rep-periods".
const (
	basicDataSuffix = "basic-data.csv"
	partitionSuffix = "partitions-data.csv"
	profilePrefix   = "profiles"
	repPeriodPrefix = "rep-periods"
)

// Tables holds the normalized schema-conformant tables produced by Prep.
type Tables struct {
	Assets          *obz.Table
	Flows           *obz.Table
	Profiles        *obz.Table
	AssetPartitions *obz.Table
	FlowPartitions  *obz.Table
	// RepPeriods is nil when the inputs carry no rep-period metadata, in
	// which case the solver falls back to a single hourly year.
	RepPeriods *obz.Table
}

// Prep builds the normalized tables from the user CSV files in
// c.InputFolder and writes them to c.OutputFolder.
func Prep(c *Config) (*Tables, error) {
	defaults := obz.DefaultValues(c.DefaultYear)
	opts := &obz.BuildOptions{Rename: c.Rename}

	assets, err := obz.BuildTable(c.InputFolder, engine.AssetSchema(), "assets", basicDataSuffix, defaults, opts)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: building asset table: %w", err)
	}
	flows, err := obz.BuildTable(c.InputFolder, engine.FlowSchema(), "flows", basicDataSuffix, defaults, opts)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: building flow table: %w", err)
	}
	Log.WithFields(logrus.Fields{
		"assets": assets.Len(),
		"flows":  flows.Len(),
	}).Info("built record tables")

	profiles, err := buildProfiles(c.InputFolder)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: building profile table: %w", err)
	}

	// A partition schedule written once is replicated across all
	// representative periods.
	partOpts := &obz.BuildOptions{Rename: c.Rename, Replicate: c.Replicate}
	assetParts, err := obz.BuildTable(c.InputFolder, engine.AssetPartitionSchema(), "assets", partitionSuffix, defaults, partOpts)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: building asset partition table: %w", err)
	}
	flowParts, unmatched, err := obz.ReconcilePartitions(partitionIndex(assetParts), flows, engine.FlowPartitionSchema(), defaults)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: reconciling flow partitions: %w", err)
	}
	if c.Replicate > 1 {
		// Reconciliation works from the flow records, which carry no
		// rep_period, so its output covers one period and is replicated
		// like the user partition schedule.
		if flowParts, err = obz.Replicate(flowParts, c.Replicate); err != nil {
			return nil, fmt.Errorf("obzutil.Prep: replicating flow partitions: %w", err)
		}
	}
	if unmatched > 0 {
		Log.WithFields(logrus.Fields{
			"flows": unmatched,
		}).Warn("flows without a partition on either endpoint fall back to the default resolution")
	}

	repPeriods, err := obz.BuildTable(c.InputFolder, engine.RepPeriodSchema(), repPeriodPrefix, ".csv", defaults, opts)
	if err != nil {
		return nil, fmt.Errorf("obzutil.Prep: building rep-period table: %w", err)
	}

	t := &Tables{
		Assets:          assets,
		Flows:           flows,
		Profiles:        profiles,
		AssetPartitions: assetParts,
		FlowPartitions:  flowParts,
	}
	if repPeriods.Len() > 0 {
		t.RepPeriods = repPeriods
	}

	for name, table := range map[string]*obz.Table{
		"assets.csv":            t.Assets,
		"flows.csv":             t.Flows,
		"profiles.csv":          t.Profiles,
		"assets-partitions.csv": t.AssetPartitions,
		"flows-partitions.csv":  t.FlowPartitions,
	} {
		if err := obz.WriteTableFile(filepath.Join(c.OutputFolder, name), table); err != nil {
			return nil, fmt.Errorf("obzutil.Prep: %w", err)
		}
	}
	if t.RepPeriods != nil {
		if err := obz.WriteTableFile(filepath.Join(c.OutputFolder, "rep-periods.csv"), t.RepPeriods); err != nil {
			return nil, fmt.Errorf("obzutil.Prep: %w", err)
		}
	}
	return t, nil
}

// buildProfiles reads every wide profile file and melts it into one
// long-format table.
func buildProfiles(folder string) (*obz.Table, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &obz.NotFoundError{Path: folder}
		}
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), profilePrefix) && strings.HasSuffix(e.Name(), ".csv") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	out := obz.NewTable(engine.ProfileSchema().Columns()...)
	for _, name := range names {
		wide, err := obz.ReadRawTable(filepath.Join(folder, name))
		if err != nil {
			return nil, err
		}
		long, err := obz.WideToLong(wide, nil)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, row := range long.Rows {
			out.Append(row...)
		}
	}
	Log.WithFields(logrus.Fields{
		"files": len(names),
		"rows":  out.Len(),
	}).Info("built profile table")
	return out, nil
}

// partitionIndex reduces the asset partition table to one partition per
// asset, keeping the coarsest when an asset appears more than once.
func partitionIndex(t *obz.Table) map[string]int {
	m := map[string]int{}
	for i := range t.Rows {
		name := t.Value(i, "asset").Text()
		if v := t.Value(i, "partition"); !v.IsNull() && v.Int() > m[name] {
			m[name] = v.Int()
		}
	}
	return m
}

// Run executes the full pipeline: normalize, optionally reduce the
// timeline to representative periods, solve, and aggregate.
func Run(c *Config) error {
	t, err := Prep(c)
	if err != nil {
		return err
	}

	profiles, repPeriods := t.Profiles, t.RepPeriods
	if c.Cluster.Periods > 0 {
		res, err := cluster.Cluster(profiles, c.Cluster)
		if err != nil {
			return fmt.Errorf("obzutil.Run: %w", err)
		}
		profiles, repPeriods = res.Profiles, res.RepPeriods
		if err := obz.WriteTableFile(filepath.Join(c.OutputFolder, "rep-period-weights.csv"), res.Weights); err != nil {
			return fmt.Errorf("obzutil.Run: %w", err)
		}
		Log.WithFields(logrus.Fields{
			"periods": c.Cluster.Periods,
			"method":  c.Cluster.Method,
		}).Info("reduced timeline to representative periods")
	}

	sol, err := engine.Solve(&engine.Inputs{
		Assets:         t.Assets,
		Flows:          t.Flows,
		Profiles:       profiles,
		FlowPartitions: t.FlowPartitions,
		RepPeriods:     repPeriods,
	}, engine.Params{Tol: c.Tolerance})
	if err != nil {
		return fmt.Errorf("obzutil.Run: %w", err)
	}
	Log.WithFields(logrus.Fields{
		"status":    sol.Status,
		"objective": sol.Objective,
	}).Info("solved dispatch")

	balances, err := obz.BalancePerCountry(sol.Flows(), t.Assets)
	if err != nil {
		return fmt.Errorf("obzutil.Run: %w", err)
	}
	prices, err := obz.PricesPerCountry(sol.Duals(), t.Assets)
	if err != nil {
		return fmt.Errorf("obzutil.Run: %w", err)
	}
	soc, err := obz.StateOfCharge(sol.StorageLevels(), t.Assets)
	if err != nil {
		return fmt.Errorf("obzutil.Run: %w", err)
	}

	for name, table := range map[string]*obz.Table{
		"flows-solution.csv":     sol.Flows(),
		"country-balances.csv":   balances,
		"prices-per-country.csv": prices,
		"state-of-charge.csv":    soc,
	} {
		if err := obz.WriteTableFile(filepath.Join(c.OutputFolder, name), table); err != nil {
			return fmt.Errorf("obzutil.Run: %w", err)
		}
	}

	if c.Charts {
		if err := BalanceChart(balances, filepath.Join(c.OutputFolder, "country-balances.png")); err != nil {
			return fmt.Errorf("obzutil.Run: %w", err)
		}
		if err := PriceChart(prices, filepath.Join(c.OutputFolder, "prices-per-country.png")); err != nil {
			return fmt.Errorf("obzutil.Run: %w", err)
		}
	}
	return nil
}
