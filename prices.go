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

// PricesPerCountry unrolls the block-compressed balance duals and joins
// each hub's country onto them, producing an electricity price series with
// columns (country, year, rep_period, time, price). Countries with more
// than one hub get the mean dual across their hubs.
//
// The duals table must have columns
// (asset, year, rep_period, time_block_start, time_block_end, dual).
func PricesPerCountry(duals *Table, assets *Table) (*Table, error) {
	meta, err := AssetIndex(assets)
	if err != nil {
		return nil, err
	}
	for _, c := range []string{"asset", "year", "rep_period", "dual"} {
		if duals.Col(c) < 0 {
			return nil, fmt.Errorf("obz: dual table has no column %q", c)
		}
	}
	d, err := BlockDurations(duals)
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
	dual := u.Col("dual")

	o := NewTable("country", "year", "rep_period", "time", "price")
	idx := make(map[string]int)
	count := make([]int, 0)
	var key strings.Builder
	for _, row := range u.Rows {
		info, ok := meta[row[asset].Text()]
		if !ok {
			return nil, fmt.Errorf("obz: dual for unknown asset %q", row[asset].Text())
		}
		key.Reset()
		for _, s := range []string{info.Country, row[year].String(), row[rp].String(), row[ts].String()} {
			key.WriteString(s)
			key.WriteByte('\x00')
		}
		k := key.String()
		if i, ok := idx[k]; ok {
			// Running mean over this country's hubs.
			n := float64(count[i])
			o.Rows[i][4] = FloatValue((o.Rows[i][4].Float()*n + row[dual].Number()) / (n + 1))
			count[i]++
			continue
		}
		idx[k] = o.Len()
		count = append(count, 1)
		o.Append(StringValue(info.Country), row[year], row[rp], row[ts], FloatValue(row[dual].Number()))
	}
	return o, nil
}
