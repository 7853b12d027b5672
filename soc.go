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

import "fmt"

// StateOfCharge unrolls the block-compressed storage level solution and
// joins asset metadata onto it, producing columns
// (asset, country, technology, year, rep_period, time, level, soc) where
// soc is the level relative to the asset's storage energy capacity. soc is
// null for assets whose capacity is unset or zero, so a zero soc always
// means an empty storage.
//
// The levels table must have columns
// (asset, year, rep_period, time_block_start, time_block_end, level); the
// metadata table needs an initial_storage_capacity column in addition to
// the usual (name, type, country, technology).
func StateOfCharge(levels *Table, assets *Table) (*Table, error) {
	meta, err := AssetIndex(assets)
	if err != nil {
		return nil, err
	}
	capCol := assets.Col("initial_storage_capacity")
	if capCol < 0 {
		return nil, fmt.Errorf("obz: asset metadata table has no column %q", "initial_storage_capacity")
	}
	capacity := make(map[string]Value, assets.Len())
	for i := range assets.Rows {
		capacity[assets.Value(i, "name").Text()] = assets.Rows[i][capCol]
	}
	for _, c := range []string{"asset", "year", "rep_period", "level"} {
		if levels.Col(c) < 0 {
			return nil, fmt.Errorf("obz: storage level table has no column %q", c)
		}
	}

	d, err := BlockDurations(levels)
	if err != nil {
		return nil, err
	}
	u, err := Unroll(d, []string{"asset", "year", "rep_period"})
	if err != nil {
		return nil, err
	}

	asset := u.Col("asset")
	year := u.Col("year")
	rp := u.Col("rep_period")
	ts := u.Col("timestep")
	level := u.Col("level")

	o := NewTable("asset", "country", "technology", "year", "rep_period", "time", "level", "soc")
	for _, row := range u.Rows {
		name := row[asset].Text()
		info, ok := meta[name]
		if !ok {
			return nil, fmt.Errorf("obz: storage level for unknown asset %q", name)
		}
		soc := Null()
		if c := capacity[name]; !c.IsNull() && c.Number() != 0 {
			soc = FloatValue(row[level].Number() / c.Number())
		}
		o.Append(row[asset], StringValue(info.Country), StringValue(info.Technology),
			row[year], row[rp], row[ts], row[level], soc)
	}
	return o, nil
}
