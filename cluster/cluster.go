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

// Package cluster reduces long-format time-series profiles to a small set
// of representative periods. The year is cut into consecutive periods of
// equal length; each period is a point whose coordinates are the stacked
// values of every profile, and a k-medoids pass picks the periods that
// stand in for the rest. Medoid selection is deterministic, so repeated
// runs on the same inputs produce the same representative periods.
package cluster

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

const (
	// KMedoids picks medoid periods minimizing total distance to their
	// assigned periods.
	KMedoids = "kmedoids"
	// First takes the first Periods periods as representatives. Useful as
	// a baseline when comparing clustering quality.
	First = "first"
)

// Config controls how the timeline is reduced.
type Config struct {
	// Periods is the number of representative periods to keep.
	Periods int
	// PeriodLength is the number of timesteps per period. The profile
	// timeline length must be a multiple of it.
	PeriodLength int
	// Method is KMedoids or First.
	Method string
	// Resolution is the duration of one timestep, carried into the
	// rep-period metadata. Zero means 1.
	Resolution float64
}

// Result holds the reduced timeline.
type Result struct {
	// Profiles is the long-format profile table restricted to the
	// representative periods, with rep_period renumbered 1..Periods and
	// timestep renumbered 1..PeriodLength.
	Profiles *obz.Table
	// Weights maps each original period to its representative:
	// columns (period, rep_period, weight).
	Weights *obz.Table
	// RepPeriods is the rep-period metadata table:
	// columns (rep_period, num_timesteps, resolution).
	RepPeriods *obz.Table
}

// series identifies one profile timeline in the input table.
type series struct {
	name string
	year int
}

// Cluster reduces the profiles table to cfg.Periods representative periods.
// The input must be in long format with columns profile_name, year,
// rep_period, timestep and value, all series covering the same 1..T
// timestep range.
func Cluster(profiles *obz.Table, cfg Config) (*Result, error) {
	if cfg.Periods < 1 {
		return nil, fmt.Errorf("cluster.Cluster: periods must be positive, got %d", cfg.Periods)
	}
	if cfg.PeriodLength < 1 {
		return nil, fmt.Errorf("cluster.Cluster: period length must be positive, got %d", cfg.PeriodLength)
	}
	switch cfg.Method {
	case KMedoids, First:
	default:
		return nil, fmt.Errorf("cluster.Cluster: unknown method %q", cfg.Method)
	}
	for _, c := range []string{"profile_name", "year", "timestep", "value"} {
		if profiles.Col(c) < 0 {
			return nil, fmt.Errorf("cluster.Cluster: profile table has no column %q", c)
		}
	}

	values, keys, T, err := collect(profiles)
	if err != nil {
		return nil, err
	}
	if T%cfg.PeriodLength != 0 {
		return nil, fmt.Errorf("cluster.Cluster: timeline of %d timesteps is not a multiple of period length %d", T, cfg.PeriodLength)
	}
	n := T / cfg.PeriodLength
	if cfg.Periods > n {
		return nil, fmt.Errorf("cluster.Cluster: %d representative periods requested but only %d periods exist", cfg.Periods, n)
	}

	// One row per period, stacking every series' slice of that period.
	dim := len(keys) * cfg.PeriodLength
	points := mat.NewDense(n, dim, nil)
	for p := 0; p < n; p++ {
		for si, k := range keys {
			seg := values[k][p*cfg.PeriodLength : (p+1)*cfg.PeriodLength]
			for j, v := range seg {
				points.Set(p, si*cfg.PeriodLength+j, v)
			}
		}
	}

	var medoids []int
	switch cfg.Method {
	case First:
		for p := 0; p < cfg.Periods; p++ {
			medoids = append(medoids, p)
		}
	case KMedoids:
		medoids = kmedoids(points, cfg.Periods)
	}
	assign := assignNearest(points, medoids)

	return buildResult(values, keys, medoids, assign, cfg), nil
}

// collect gathers each (profile_name, year) series into a dense slice
// indexed by timestep, and checks all series span the same 1..T range.
func collect(t *obz.Table) (map[series][]float64, []series, int, error) {
	byKey := map[series]map[int]float64{}
	for i := range t.Rows {
		k := series{
			name: t.Value(i, "profile_name").Text(),
			year: t.Value(i, "year").Int(),
		}
		ts := t.Value(i, "timestep").Int()
		if byKey[k] == nil {
			byKey[k] = map[int]float64{}
		}
		byKey[k][ts] = t.Value(i, "value").Number()
	}
	if len(byKey) == 0 {
		return nil, nil, 0, fmt.Errorf("cluster.collect: profile table is empty")
	}

	var keys []series
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].name != keys[j].name {
			return keys[i].name < keys[j].name
		}
		return keys[i].year < keys[j].year
	})

	T := len(byKey[keys[0]])
	values := map[series][]float64{}
	for _, k := range keys {
		m := byKey[k]
		if len(m) != T {
			return nil, nil, 0, fmt.Errorf("cluster.collect: series %s/%d has %d timesteps, want %d", k.name, k.year, len(m), T)
		}
		s := make([]float64, T)
		for ts := 1; ts <= T; ts++ {
			v, ok := m[ts]
			if !ok {
				return nil, nil, 0, fmt.Errorf("cluster.collect: series %s/%d is missing timestep %d", k.name, k.year, ts)
			}
			s[ts-1] = v
		}
		values[k] = s
	}
	return values, keys, T, nil
}

// kmedoids selects k medoid rows of points. Initialization is greedy: the
// first medoid minimizes total distance to all points, each further medoid
// is the point farthest from the chosen set. The swap phase then moves
// each medoid to the member of its cluster with the least total
// within-cluster distance, until stable.
func kmedoids(points *mat.Dense, k int) []int {
	n, _ := points.Dims()
	d := distanceMatrix(points)

	medoids := []int{minTotalDistance(d, allIndices(n))}
	for len(medoids) < k {
		far, farDist := -1, -1.0
		for p := 0; p < n; p++ {
			nearest := nearestMedoid(d, medoids, p)
			if nearest > farDist {
				far, farDist = p, nearest
			}
		}
		medoids = append(medoids, far)
	}
	sort.Ints(medoids)

	for iter := 0; iter < n; iter++ {
		assign := assignFromDistances(d, medoids)
		next := make([]int, len(medoids))
		for mi := range medoids {
			var members []int
			for p, a := range assign {
				if a == mi {
					members = append(members, p)
				}
			}
			next[mi] = minTotalDistance(d, members)
		}
		sort.Ints(next)
		if equalInts(next, medoids) {
			break
		}
		medoids = next
	}
	return medoids
}

func distanceMatrix(points *mat.Dense) *mat.Dense {
	n, _ := points.Dims()
	d := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			dist := floats.Distance(points.RawRowView(i), points.RawRowView(j), 2)
			d.Set(i, j, dist)
			d.Set(j, i, dist)
		}
	}
	return d
}

// minTotalDistance returns the member of candidates closest to all the
// others, breaking ties toward the earliest period.
func minTotalDistance(d *mat.Dense, candidates []int) int {
	best, bestSum := candidates[0], -1.0
	for _, c := range candidates {
		sum := 0.0
		for _, o := range candidates {
			sum += d.At(c, o)
		}
		if bestSum < 0 || sum < bestSum {
			best, bestSum = c, sum
		}
	}
	return best
}

func nearestMedoid(d *mat.Dense, medoids []int, p int) float64 {
	min := -1.0
	for _, m := range medoids {
		if v := d.At(p, m); min < 0 || v < min {
			min = v
		}
	}
	return min
}

// assignFromDistances maps each period to the index (into medoids) of its
// nearest medoid, ties toward the earlier medoid.
func assignFromDistances(d *mat.Dense, medoids []int) []int {
	n, _ := d.Dims()
	assign := make([]int, n)
	for p := 0; p < n; p++ {
		best, bestDist := 0, -1.0
		for mi, m := range medoids {
			if v := d.At(p, m); bestDist < 0 || v < bestDist {
				best, bestDist = mi, v
			}
		}
		assign[p] = best
	}
	return assign
}

func assignNearest(points *mat.Dense, medoids []int) []int {
	return assignFromDistances(distanceMatrix(points), medoids)
}

func allIndices(n int) []int {
	o := make([]int, n)
	for i := range o {
		o[i] = i
	}
	return o
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func buildResult(values map[series][]float64, keys []series, medoids, assign []int, cfg Config) *Result {
	profiles := obz.NewTable("profile_name", "year", "rep_period", "timestep", "value")
	for _, k := range keys {
		for mi, m := range medoids {
			seg := values[k][m*cfg.PeriodLength : (m+1)*cfg.PeriodLength]
			for j, v := range seg {
				profiles.Append(
					obz.StringValue(k.name),
					obz.IntValue(k.year),
					obz.IntValue(mi+1),
					obz.IntValue(j+1),
					obz.FloatValue(v),
				)
			}
		}
	}

	weights := obz.NewTable("period", "rep_period", "weight")
	for p, mi := range assign {
		weights.Append(obz.IntValue(p+1), obz.IntValue(mi+1), obz.FloatValue(1))
	}

	res := cfg.Resolution
	if res == 0 {
		res = 1
	}
	reps := obz.NewTable("rep_period", "num_timesteps", "resolution")
	for mi := range medoids {
		reps.Append(obz.IntValue(mi+1), obz.IntValue(cfg.PeriodLength), obz.FloatValue(res))
	}

	return &Result{Profiles: profiles, Weights: weights, RepPeriods: reps}
}
