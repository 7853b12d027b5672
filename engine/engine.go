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

// Package engine is the optimization collaborator consumed by the table
// pipeline: given a schema-conformant table set it computes a least-cost
// dispatch and returns a solved model exposing block-compressed solution
// tables, balance duals and a navigable asset/flow graph.
//
// The reference implementation is a linear program per (year,
// representative period) solved with gonum's simplex method.
package engine

import (
	"fmt"
	"sort"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

// Params configures the solve.
type Params struct {
	// Tol is the simplex convergence tolerance. Zero means 1e-7.
	Tol float64
}

func (p Params) tol() float64 {
	if p.Tol == 0 {
		return 1e-7
	}
	return p.Tol
}

// Inputs is the schema-conformant table set the engine consumes. Every
// table must match the corresponding schema from this package. Profiles,
// FlowPartitions and RepPeriods may be nil: assets then run flat, flows
// dispatch per timestep, and the model covers a single hourly year.
type Inputs struct {
	Assets *obz.Table
	Flows  *obz.Table
	// Profiles is the long-format availability/demand profile table.
	Profiles *obz.Table
	// FlowPartitions coarsens time per flow: a flow with partition p
	// dispatches one quantity per block of p timesteps.
	FlowPartitions *obz.Table
	RepPeriods     *obz.Table
}

// Shortfall is one element of an infeasibility diagnostic: a consumer
// whose demand exceeds the total capacity feeding it.
type Shortfall struct {
	Asset     string
	Year      int
	RepPeriod int
	Timestep  int
	Demand    float64
	Capacity  float64
}

// InfeasibleError reports that no feasible dispatch exists, with a
// shortfall diagnostic where one can be identified. Post-processing must
// not run after it.
type InfeasibleError struct {
	Shortfalls []Shortfall
}

func (e *InfeasibleError) Error() string {
	s := "engine: model is infeasible"
	for i, sf := range e.Shortfalls {
		if i == 3 {
			s += fmt.Sprintf("; and %d more", len(e.Shortfalls)-i)
			break
		}
		s += fmt.Sprintf("; %s year %d rp %d t %d: demand %g exceeds capacity %g",
			sf.Asset, sf.Year, sf.RepPeriod, sf.Timestep, sf.Demand, sf.Capacity)
	}
	return s
}

// profileKey identifies one profile series.
type profileKey struct {
	name     string
	year, rp int
}

type profileIndex map[profileKey][]float64

// value returns the profile value at timestep ts (1-based), or 1 when the
// profile is unknown, so that assets without a profile run flat.
func (p profileIndex) value(name string, year, rp, ts int) float64 {
	if name == "" {
		return 1
	}
	series, ok := p[profileKey{name, year, rp}]
	if !ok || ts < 1 || ts > len(series) {
		return 1
	}
	return series[ts-1]
}

func indexProfiles(t *obz.Table) (profileIndex, error) {
	idx := make(profileIndex)
	if t == nil {
		return idx, nil
	}
	for _, c := range []string{"profile_name", "year", "rep_period", "timestep", "value"} {
		if t.Col(c) < 0 {
			return nil, fmt.Errorf("engine: profile table has no column %q", c)
		}
	}
	for i := range t.Rows {
		k := profileKey{
			name: t.Value(i, "profile_name").Text(),
			year: t.Value(i, "year").Int(),
			rp:   t.Value(i, "rep_period").Int(),
		}
		ts := t.Value(i, "timestep").Int()
		series := idx[k]
		for len(series) < ts {
			series = append(series, 1)
		}
		series[ts-1] = t.Value(i, "value").Number()
		idx[k] = series
	}
	return idx, nil
}

type flowPartKey struct {
	from, to string
	year, rp int
}

// flowPartitions maps each flow to its time partition: the number of
// consecutive timesteps over which its dispatch is held to one value.
type flowPartitions map[flowPartKey]int

// value returns the partition of the flow from->to, or 1 (per-timestep
// dispatch) when the flow has none.
func (p flowPartitions) value(from, to string, year, rp int) int {
	if v, ok := p[flowPartKey{from, to, year, rp}]; ok && v > 1 {
		return v
	}
	return 1
}

func indexFlowPartitions(t *obz.Table) (flowPartitions, error) {
	idx := make(flowPartitions)
	if t == nil {
		return idx, nil
	}
	for _, c := range []string{"from_asset", "to_asset", "year", "rep_period", "partition"} {
		if t.Col(c) < 0 {
			return nil, fmt.Errorf("engine: flow partition table has no column %q", c)
		}
	}
	for i := range t.Rows {
		k := flowPartKey{
			from: t.Value(i, "from_asset").Text(),
			to:   t.Value(i, "to_asset").Text(),
			year: t.Value(i, "year").Int(),
			rp:   t.Value(i, "rep_period").Int(),
		}
		if v := t.Value(i, "partition"); !v.IsNull() {
			idx[k] = v.Int()
		}
	}
	return idx, nil
}

// repPeriod is one representative period's metadata.
type repPeriod struct {
	rp         int
	timesteps  int
	resolution float64
}

func repPeriods(t *obz.Table) ([]repPeriod, error) {
	if t == nil || t.Len() == 0 {
		return []repPeriod{{rp: 1, timesteps: 8760, resolution: 1}}, nil
	}
	for _, c := range []string{"rep_period", "num_timesteps", "resolution"} {
		if t.Col(c) < 0 {
			return nil, fmt.Errorf("engine: rep-period table has no column %q", c)
		}
	}
	var o []repPeriod
	for i := range t.Rows {
		res := t.Value(i, "resolution").Number()
		if res == 0 {
			res = 1
		}
		o = append(o, repPeriod{
			rp:         t.Value(i, "rep_period").Int(),
			timesteps:  t.Value(i, "num_timesteps").Int(),
			resolution: res,
		})
	}
	return o, nil
}

// Solve builds the dispatch model from the input tables and solves it. An
// infeasible model returns *InfeasibleError; the Solution is only valid
// when the error is nil.
func Solve(in *Inputs, p Params) (*Solution, error) {
	g, err := NewGraph(in.Assets, in.Flows)
	if err != nil {
		return nil, err
	}
	profiles, err := indexProfiles(in.Profiles)
	if err != nil {
		return nil, err
	}
	rps, err := repPeriods(in.RepPeriods)
	if err != nil {
		return nil, err
	}
	parts, err := indexFlowPartitions(in.FlowPartitions)
	if err != nil {
		return nil, err
	}

	// One model year per distinct asset year.
	seen := make(map[int]bool)
	var years []int
	for i := range in.Assets.Rows {
		y := in.Assets.Value(i, "year").Int()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Ints(years)

	sol := newSolution(g)
	for _, y := range years {
		for _, rp := range rps {
			d, err := solveDispatch(g, profiles, parts, y, rp, p.tol())
			if err != nil {
				return nil, err
			}
			sol.addDispatch(g, y, rp, d)
		}
	}
	sol.Status = Optimal
	return sol, nil
}
