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
	"fmt"

	obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"
)

// Asset is a node of the energy-system graph.
type Asset struct {
	Name                   string
	Type                   string
	Country                string
	Technology             string
	Capacity               float64
	PeakDemand             float64
	InitialStorageCapacity float64
	InitialStorageLevel    float64
	ProfileName            string
}

// Flow is a directed edge between two assets.
type Flow struct {
	From           *Asset
	To             *Asset
	IsTransport    bool
	Capacity       float64
	VariableCost   float64
	Efficiency     float64
	ExportCapacity float64
}

// Graph is the navigable asset/flow structure exposed by a solved model.
type Graph struct {
	Assets []*Asset
	Flows  []*Flow

	byName map[string]*Asset
}

// Asset returns the named asset, or nil.
func (g *Graph) Asset(name string) *Asset { return g.byName[name] }

// FlowsInto returns the flows whose destination is a.
func (g *Graph) FlowsInto(a *Asset) []*Flow {
	var o []*Flow
	for _, f := range g.Flows {
		if f.To == a {
			o = append(o, f)
		}
	}
	return o
}

// FlowsOutOf returns the flows whose origin is a.
func (g *Graph) FlowsOutOf(a *Asset) []*Flow {
	var o []*Flow
	for _, f := range g.Flows {
		if f.From == a {
			o = append(o, f)
		}
	}
	return o
}

// NewGraph builds the asset/flow graph from schema-conformant tables.
// Inactive assets and flows are left out; a flow referring to an unknown
// or inactive asset is an error.
func NewGraph(assets, flows *obz.Table) (*Graph, error) {
	for _, f := range AssetSchema() {
		if assets.Col(f.Name) < 0 {
			return nil, fmt.Errorf("engine: asset table has no column %q", f.Name)
		}
	}
	for _, f := range FlowSchema() {
		if flows.Col(f.Name) < 0 {
			return nil, fmt.Errorf("engine: flow table has no column %q", f.Name)
		}
	}
	g := &Graph{byName: make(map[string]*Asset)}
	for i := range assets.Rows {
		if v := assets.Value(i, "active"); !v.IsNull() && !v.Bool() {
			continue
		}
		a := &Asset{
			Name:                   assets.Value(i, "name").Text(),
			Type:                   assets.Value(i, "type").Text(),
			Country:                assets.Value(i, "country").Text(),
			Technology:             assets.Value(i, "technology").Text(),
			Capacity:               assets.Value(i, "capacity").Number(),
			PeakDemand:             assets.Value(i, "peak_demand").Number(),
			InitialStorageCapacity: assets.Value(i, "initial_storage_capacity").Number(),
			InitialStorageLevel:    assets.Value(i, "initial_storage_level").Number(),
			ProfileName:            assets.Value(i, "profile_name").Text(),
		}
		if a.Name == "" {
			return nil, fmt.Errorf("engine: asset row %d has no name", i)
		}
		if _, ok := g.byName[a.Name]; ok {
			return nil, fmt.Errorf("engine: duplicate asset %q", a.Name)
		}
		g.Assets = append(g.Assets, a)
		g.byName[a.Name] = a
	}
	for i := range flows.Rows {
		if v := flows.Value(i, "active"); !v.IsNull() && !v.Bool() {
			continue
		}
		fromName := flows.Value(i, "from_asset").Text()
		toName := flows.Value(i, "to_asset").Text()
		from, to := g.byName[fromName], g.byName[toName]
		if from == nil {
			return nil, fmt.Errorf("engine: flow %s->%s: unknown asset %q", fromName, toName, fromName)
		}
		if to == nil {
			return nil, fmt.Errorf("engine: flow %s->%s: unknown asset %q", fromName, toName, toName)
		}
		eff := flows.Value(i, "efficiency").Number()
		if eff == 0 {
			eff = 1
		}
		g.Flows = append(g.Flows, &Flow{
			From:           from,
			To:             to,
			IsTransport:    !flows.Value(i, "is_transport").IsNull() && flows.Value(i, "is_transport").Bool(),
			Capacity:       flows.Value(i, "capacity").Number(),
			VariableCost:   flows.Value(i, "variable_cost").Number(),
			Efficiency:     eff,
			ExportCapacity: flows.Value(i, "export_capacity").Number(),
		})
	}
	return g, nil
}
