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

// WideToLong reshapes a wide timeseries table, one column per named
// profile, into a long (profile_name, year, rep_period, timestep, value)
// table. Every column other than the id columns is treated as a profile
// name; rep_period is fixed at 1 since profiles are reshaped before
// clustering. idCols defaults to {"year", "timestep"} when nil.
//
// Output rows = input rows × (input columns − id columns).
func WideToLong(t *Table, idCols []string) (*Table, error) {
	if idCols == nil {
		idCols = []string{"year", "timestep"}
	}
	id := make(map[string]bool, len(idCols))
	for _, c := range idCols {
		if t.Col(c) < 0 {
			return nil, fmt.Errorf("obz: wide profile table has no id column %q", c)
		}
		id[c] = true
	}
	year := t.Col("year")
	ts := t.Col("timestep")
	if year < 0 || ts < 0 {
		return nil, fmt.Errorf("obz: wide profile table must have year and timestep columns")
	}

	o := NewTable("profile_name", "year", "rep_period", "timestep", "value")
	for j, c := range t.Cols {
		if id[c] {
			continue
		}
		for _, row := range t.Rows {
			o.Append(StringValue(c), row[year], IntValue(1), row[ts], row[j])
		}
	}
	return o, nil
}
