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

package obz

import (
	"fmt"
	"strings"
)

// AssetInfo is the metadata the aggregator needs about one asset.
type AssetInfo struct {
	Type       string
	Country    string
	Technology string
}

// AssetIndex builds a name lookup from an asset metadata table. The table
// must have name, type, country and technology columns; anything else
// (coordinates, capacities) is ignored here.
func AssetIndex(assets *Table) (map[string]AssetInfo, error) {
	for _, c := range []string{"name", "type", "country", "technology"} {
		if assets.Col(c) < 0 {
			return nil, fmt.Errorf("obz: asset metadata table has no column %q", c)
		}
	}
	m := make(map[string]AssetInfo, assets.Len())
	for i := range assets.Rows {
		m[assets.Value(i, "name").Text()] = AssetInfo{
			Type:       assets.Value(i, "type").Text(),
			Country:    assets.Value(i, "country").Text(),
			Technology: assets.Value(i, "technology").Text(),
		}
	}
	return m, nil
}

// groupSum accumulates signed sums keyed by
// (country, technology, year, rep_period, time), keeping first-seen key
// order so output is deterministic.
type groupSum struct {
	t   *Table
	idx map[string]int
}

func newGroupSum() *groupSum {
	return &groupSum{
		t:   NewTable("country", "technology", "year", "rep_period", "time", "solution"),
		idx: make(map[string]int),
	}
}

func (g *groupSum) add(country, tech string, year, rp, time Value, v float64) {
	var key strings.Builder
	for _, s := range []string{country, tech, year.String(), rp.String(), time.String()} {
		key.WriteString(s)
		key.WriteByte('\x00')
	}
	k := key.String()
	if i, ok := g.idx[k]; ok {
		row := g.t.Rows[i]
		row[5] = FloatValue(row[5].Float() + v)
		return
	}
	g.idx[k] = g.t.Len()
	g.t.Append(StringValue(country), StringValue(tech), year, rp, time, FloatValue(v))
}

// BalancePerCountry reduces the solved flows to country-level energy
// balance series. Only flows touching at least one hub asset are
// considered; each is unrolled to per-timestep resolution, joined against
// the metadata of both endpoints and assigned to exactly one category:
//
//   - production into the hub (positive)
//   - hub outflow into conversion (negative)
//   - storage discharge (technology suffixed "_discharge", positive)
//   - storage charge (technology suffixed "_charge", negative)
//   - cross-border transport, reported twice: once against the origin as
//     "OutgoingTransportFlow" (negative) and once against the destination
//     as "IncomingTransportFlow" (positive)
//   - consumer demand, signed by direction
//
// Signs follow the flow direction relative to the country's hub: into the
// hub is positive, out of it negative. Hub-to-hub flows inside one country
// are dropped. The result has columns
// (country, technology, year, rep_period, time, solution), category tables
// stacked in the order above.
func BalancePerCountry(flows *Table, assets *Table) (*Table, error) {
	meta, err := AssetIndex(assets)
	if err != nil {
		return nil, err
	}
	for _, c := range []string{"from_asset", "to_asset", "year", "rep_period", "solution"} {
		if flows.Col(c) < 0 {
			return nil, fmt.Errorf("obz: flow solution table has no column %q", c)
		}
	}

	hub := NewTable(flows.Cols...)
	for i := range flows.Rows {
		f, okf := meta[flows.Value(i, "from_asset").Text()]
		t, okt := meta[flows.Value(i, "to_asset").Text()]
		if !okf {
			return nil, fmt.Errorf("obz: flow endpoint %q has no asset metadata", flows.Value(i, "from_asset").Text())
		}
		if !okt {
			return nil, fmt.Errorf("obz: flow endpoint %q has no asset metadata", flows.Value(i, "to_asset").Text())
		}
		if f.Type == "hub" || t.Type == "hub" {
			hub.Rows = append(hub.Rows, flows.Rows[i])
		}
	}

	d, err := BlockDurations(hub)
	if err != nil {
		return nil, err
	}
	u, err := Unroll(d, []string{"from_asset", "to_asset", "year", "rep_period"})
	if err != nil {
		return nil, err
	}

	production := newGroupSum()
	outflow := newGroupSum()
	discharge := newGroupSum()
	charge := newGroupSum()
	outgoing := newGroupSum()
	incoming := newGroupSum()
	demand := newGroupSum()

	from := u.Col("from_asset")
	to := u.Col("to_asset")
	year := u.Col("year")
	rp := u.Col("rep_period")
	ts := u.Col("timestep")
	sol := u.Col("solution")

	for _, row := range u.Rows {
		f := meta[row[from].Text()]
		t := meta[row[to].Text()]
		v := row[sol].Number()
		y, r, time := row[year], row[rp], row[ts]

		switch {
		case f.Country != t.Country:
			outgoing.add(f.Country, "OutgoingTransportFlow", y, r, time, -v)
			incoming.add(t.Country, "IncomingTransportFlow", y, r, time, v)
		case f.Type == "consumer":
			demand.add(f.Country, f.Technology, y, r, time, v)
		case t.Type == "consumer":
			demand.add(t.Country, t.Technology, y, r, time, -v)
		case f.Type == "storage":
			discharge.add(f.Country, f.Technology+"_discharge", y, r, time, v)
		case t.Type == "storage":
			charge.add(t.Country, t.Technology+"_charge", y, r, time, -v)
		case f.Type == "hub" && t.Type == "hub":
			// Intra-country hub-to-hub transfers carry no balance sign.
		case t.Type == "hub":
			production.add(f.Country, f.Technology, y, r, time, v)
		default: // f.Type == "hub"
			outflow.add(t.Country, t.Technology, y, r, time, -v)
		}
	}

	o := newGroupSum().t
	for _, g := range []*groupSum{production, outflow, discharge, charge, outgoing, incoming, demand} {
		o.Rows = append(o.Rows, g.t.Rows...)
	}
	return o, nil
}
