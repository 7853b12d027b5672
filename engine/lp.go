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
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// dispatch holds one (year, representative period) solve.
type dispatch struct {
	objective float64
	flows     [][]float64           // per flow, per timestep
	levels    map[*Asset][]float64  // per storage asset
	duals     map[*Asset][]float64  // per hub
}

// solveDispatch builds and solves the least-cost dispatch LP for one year
// and representative period. Variables are one dispatch quantity per flow
// and timestep plus one level per storage asset and timestep.
//
// A flow capacity of zero means uncapped; hubs' internal links have no
// capacity of their own.
func solveDispatch(g *Graph, profiles profileIndex, parts flowPartitions, year int, rp repPeriod, tol float64) (*dispatch, error) {
	T := rp.timesteps
	F := len(g.Flows)
	var storages []*Asset
	for _, a := range g.Assets {
		if a.Type == "storage" {
			storages = append(storages, a)
		}
	}
	n := F*T + len(storages)*T
	if n == 0 {
		return &dispatch{
			flows:  make([][]float64, F),
			levels: make(map[*Asset][]float64),
			duals:  make(map[*Asset][]float64),
		}, nil
	}

	xIdx := func(f, t int) int { return f*T + t }
	lIdx := func(s, t int) int { return F*T + s*T + t }
	sIdx := make(map[*Asset]int, len(storages))
	for i, s := range storages {
		sIdx[s] = i
	}

	c := make([]float64, n)
	for f, fl := range g.Flows {
		for t := 0; t < T; t++ {
			c[xIdx(f, t)] = fl.VariableCost * rp.resolution
		}
	}

	var eqRows [][]float64
	var eqRHS []float64
	addEq := func(row []float64, rhs float64) {
		eqRows = append(eqRows, row)
		eqRHS = append(eqRHS, rhs)
	}

	for _, a := range g.Assets {
		switch a.Type {
		case "consumer", "hub", "conversion":
			for t := 0; t < T; t++ {
				row := make([]float64, n)
				for f, fl := range g.Flows {
					if fl.To == a {
						row[xIdx(f, t)] += fl.Efficiency
					}
					if fl.From == a {
						row[xIdx(f, t)] -= 1
					}
				}
				rhs := 0.0
				if a.Type == "consumer" {
					rhs = a.PeakDemand * profiles.value(a.ProfileName, year, rp.rp, t+1)
				}
				addEq(row, rhs)
			}
		case "storage":
			s := sIdx[a]
			for t := 0; t < T; t++ {
				row := make([]float64, n)
				row[lIdx(s, t)] = 1
				rhs := 0.0
				if t == 0 {
					rhs = a.InitialStorageLevel
				} else {
					row[lIdx(s, t-1)] = -1
				}
				for f, fl := range g.Flows {
					if fl.To == a {
						row[xIdx(f, t)] -= fl.Efficiency
					}
					if fl.From == a {
						row[xIdx(f, t)] += 1
					}
				}
				addEq(row, rhs)
			}
		}
	}

	// A partitioned flow dispatches one quantity per block of p
	// timesteps, so timesteps inside a block are tied to their
	// predecessor.
	for f, fl := range g.Flows {
		p := parts.value(fl.From.Name, fl.To.Name, year, rp.rp)
		if p <= 1 {
			continue
		}
		for t := 1; t < T; t++ {
			if t%p == 0 {
				continue
			}
			row := make([]float64, n)
			row[xIdx(f, t)] = 1
			row[xIdx(f, t-1)] = -1
			addEq(row, 0)
		}
	}

	var ineqRows [][]float64
	var ineqRHS []float64
	addIneq := func(row []float64, rhs float64) {
		ineqRows = append(ineqRows, row)
		ineqRHS = append(ineqRHS, rhs)
	}
	for i := 0; i < n; i++ {
		row := make([]float64, n)
		row[i] = -1
		addIneq(row, 0)
	}
	for f, fl := range g.Flows {
		for t := 0; t < T; t++ {
			ub := flowBound(fl, profiles, year, rp.rp, t+1)
			if math.IsInf(ub, 1) {
				continue
			}
			row := make([]float64, n)
			row[xIdx(f, t)] = 1
			addIneq(row, ub)
		}
	}
	for _, a := range storages {
		if a.InitialStorageCapacity <= 0 {
			continue
		}
		for t := 0; t < T; t++ {
			row := make([]float64, n)
			row[lIdx(sIdx[a], t)] = 1
			addIneq(row, a.InitialStorageCapacity)
		}
	}

	if len(eqRows) == 0 {
		// A model with no balance constraints still needs a nonempty
		// equality system for the standard-form conversion.
		addEq(make([]float64, n), 0)
	}

	G := mat.NewDense(len(ineqRows), n, nil)
	for i, row := range ineqRows {
		G.SetRow(i, row)
	}
	A := mat.NewDense(len(eqRows), n, nil)
	for i, row := range eqRows {
		A.SetRow(i, row)
	}

	cStd, aStd, bStd := lp.Convert(c, G, ineqRHS, A, eqRHS)
	opt, xStd, err := lp.Simplex(cStd, aStd, bStd, tol, nil)
	if err != nil {
		if errors.Is(err, lp.ErrInfeasible) {
			return nil, &InfeasibleError{Shortfalls: diagnose(g, profiles, year, rp)}
		}
		return nil, fmt.Errorf("engine: solving year %d rep period %d: %v", year, rp.rp, err)
	}

	// Convert recovers the original variables as the difference of their
	// positive and negative parts.
	x := make([]float64, n)
	for i := range x {
		x[i] = xStd[i] - xStd[n+i]
	}

	d := &dispatch{
		objective: opt,
		flows:     make([][]float64, F),
		levels:    make(map[*Asset][]float64),
		duals:     make(map[*Asset][]float64),
	}
	for f := range g.Flows {
		d.flows[f] = make([]float64, T)
		for t := 0; t < T; t++ {
			d.flows[f][t] = x[xIdx(f, t)]
		}
	}
	for _, a := range storages {
		series := make([]float64, T)
		for t := 0; t < T; t++ {
			series[t] = x[lIdx(sIdx[a], t)]
		}
		d.levels[a] = series
	}
	d.duals = hubDuals(g, d.flows, tol)
	return d, nil
}

// flowBound returns the dispatch upper bound of a flow at one timestep.
// Transport flows are bounded by export capacity, other flows by capacity
// scaled with the origin asset's availability profile. Zero capacity means
// no bound.
func flowBound(fl *Flow, profiles profileIndex, year, rp, ts int) float64 {
	cap := fl.Capacity
	if fl.IsTransport {
		cap = fl.ExportCapacity
	}
	if cap <= 0 {
		return math.Inf(1)
	}
	if fl.IsTransport {
		return cap
	}
	return cap * profiles.value(fl.From.ProfileName, year, rp, ts)
}

// hubDuals derives the balance dual of every hub and timestep as the
// marginal (most expensive dispatched) supply cost, with transport flows
// propagating the origin hub's price. The simplex solution does not carry
// exact LP duals, so this is the merit-order shadow price.
func hubDuals(g *Graph, flows [][]float64, tol float64) map[*Asset][]float64 {
	var hubs []*Asset
	for _, a := range g.Assets {
		if a.Type == "hub" {
			hubs = append(hubs, a)
		}
	}
	if len(hubs) == 0 {
		return nil
	}
	T := 0
	if len(flows) > 0 {
		T = len(flows[0])
	}
	price := make(map[*Asset][]float64, len(hubs))
	for _, h := range hubs {
		price[h] = make([]float64, T)
	}
	// Transport links chain hub prices, so repeat until the longest chain
	// has settled.
	for iter := 0; iter < len(hubs); iter++ {
		for _, h := range hubs {
			for t := 0; t < T; t++ {
				best := 0.0
				for f, fl := range g.Flows {
					if fl.To != h || flows[f][t] <= tol {
						continue
					}
					cand := fl.VariableCost
					if up, ok := price[fl.From]; ok {
						cand += up[t]
					}
					if cand > best {
						best = cand
					}
				}
				price[h][t] = best
			}
		}
	}
	return price
}

// diagnose identifies consumers whose demand cannot be met by the total
// capacity feeding them. It is a diagnostic for infeasible models, not a
// complete irreducible subsystem.
func diagnose(g *Graph, profiles profileIndex, year int, rp repPeriod) []Shortfall {
	var o []Shortfall
	for _, a := range g.Assets {
		if a.Type != "consumer" {
			continue
		}
		for t := 1; t <= rp.timesteps; t++ {
			demand := a.PeakDemand * profiles.value(a.ProfileName, year, rp.rp, t)
			capacity := 0.0
			for _, fl := range g.FlowsInto(a) {
				b := flowBound(fl, profiles, year, rp.rp, t)
				if math.IsInf(b, 1) {
					capacity = math.Inf(1)
					break
				}
				capacity += b * fl.Efficiency
			}
			if demand > capacity+1e-9 {
				o = append(o, Shortfall{
					Asset:     a.Name,
					Year:      year,
					RepPeriod: rp.rp,
					Timestep:  t,
					Demand:    demand,
					Capacity:  capacity,
				})
			}
		}
	}
	if o != nil {
		return o
	}

	// Consumers are usually fed through an uncapped hub link, so compare
	// total demand against total bounded supply per timestep instead.
	for t := 1; t <= rp.timesteps; t++ {
		demand := 0.0
		for _, a := range g.Assets {
			if a.Type == "consumer" {
				demand += a.PeakDemand * profiles.value(a.ProfileName, year, rp.rp, t)
			}
		}
		supply := 0.0
		for _, fl := range g.Flows {
			if fl.From.Type != "producer" && fl.From.Type != "storage" {
				continue
			}
			b := flowBound(fl, profiles, year, rp.rp, t)
			if math.IsInf(b, 1) {
				supply = math.Inf(1)
				break
			}
			supply += b * fl.Efficiency
		}
		if demand > supply+1e-9 {
			o = append(o, Shortfall{
				Asset:     "system",
				Year:      year,
				RepPeriod: rp.rp,
				Timestep:  t,
				Demand:    demand,
				Capacity:  supply,
			})
		}
	}
	return o
}
