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

package engine

import (
	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

// Status is the termination status of a solve.
type Status string

const (
	Optimal    Status = "optimal"
	Infeasible Status = "infeasible"
)

// Solution is the solved model the post-processing stages read. All of its
// tables are block-compressed: each row holds a value constant over
// [time_block_start, time_block_end], and per (entity, year, rep_period)
// the blocks partition the timeline starting at timestep 1, in
// chronological order. The post-processing stages never mutate it.
type Solution struct {
	Status    Status
	Objective float64
	Graph     *Graph

	flows  *obz.Table
	levels *obz.Table
	duals  *obz.Table
}

func newSolution(g *Graph) *Solution {
	return &Solution{
		Status: Infeasible,
		Graph:  g,
		flows: obz.NewTable("from_asset", "to_asset", "year", "rep_period",
			"time_block_start", "time_block_end", "solution"),
		levels: obz.NewTable("asset", "year", "rep_period",
			"time_block_start", "time_block_end", "level"),
		duals: obz.NewTable("asset", "year", "rep_period",
			"time_block_start", "time_block_end", "dual"),
	}
}

// Flows returns the solved flow quantities.
func (s *Solution) Flows() *obz.Table { return s.flows }

// StorageLevels returns the solved storage levels.
func (s *Solution) StorageLevels() *obz.Table { return s.levels }

// Duals returns the balance duals per hub, interpreted as price signals.
func (s *Solution) Duals() *obz.Table { return s.duals }

// Value returns the solved quantity of the flow from->to at one timestep.
func (s *Solution) Value(from, to string, year, rp, timestep int) (float64, bool) {
	for i := range s.flows.Rows {
		if s.flows.Value(i, "from_asset").Text() != from ||
			s.flows.Value(i, "to_asset").Text() != to ||
			s.flows.Value(i, "year").Int() != year ||
			s.flows.Value(i, "rep_period").Int() != rp {
			continue
		}
		if s.flows.Value(i, "time_block_start").Int() <= timestep &&
			timestep <= s.flows.Value(i, "time_block_end").Int() {
			return s.flows.Value(i, "solution").Float(), true
		}
	}
	return 0, false
}

// Dual returns the balance dual of the named hub at one timestep.
func (s *Solution) Dual(asset string, year, rp, timestep int) (float64, bool) {
	for i := range s.duals.Rows {
		if s.duals.Value(i, "asset").Text() != asset ||
			s.duals.Value(i, "year").Int() != year ||
			s.duals.Value(i, "rep_period").Int() != rp {
			continue
		}
		if s.duals.Value(i, "time_block_start").Int() <= timestep &&
			timestep <= s.duals.Value(i, "time_block_end").Int() {
			return s.duals.Value(i, "dual").Float(), true
		}
	}
	return 0, false
}

type block struct {
	start, end int
	value      float64
}

// compressBlocks merges consecutive equal values into maximal blocks. The
// blocks cover 1..len(series) without gaps or overlaps.
func compressBlocks(series []float64) []block {
	var o []block
	for t, v := range series {
		if len(o) > 0 && sameValue(o[len(o)-1].value, v) {
			o[len(o)-1].end = t + 1
			continue
		}
		o = append(o, block{start: t + 1, end: t + 1, value: v})
	}
	return o
}

func sameValue(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

func (s *Solution) addDispatch(g *Graph, year int, rp repPeriod, d *dispatch) {
	s.Objective += d.objective
	for f, fl := range g.Flows {
		for _, b := range compressBlocks(d.flows[f]) {
			s.flows.Append(obz.StringValue(fl.From.Name), obz.StringValue(fl.To.Name),
				obz.IntValue(year), obz.IntValue(rp.rp),
				obz.IntValue(b.start), obz.IntValue(b.end), obz.FloatValue(b.value))
		}
	}
	for _, a := range g.Assets {
		if series, ok := d.levels[a]; ok {
			for _, b := range compressBlocks(series) {
				s.levels.Append(obz.StringValue(a.Name),
					obz.IntValue(year), obz.IntValue(rp.rp),
					obz.IntValue(b.start), obz.IntValue(b.end), obz.FloatValue(b.value))
			}
		}
		if series, ok := d.duals[a]; ok {
			for _, b := range compressBlocks(series) {
				s.duals.Append(obz.StringValue(a.Name),
					obz.IntValue(year), obz.IntValue(rp.rp),
					obz.IntValue(b.start), obz.IntValue(b.end), obz.FloatValue(b.value))
			}
		}
	}
}
