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

// BlockDurations converts block-keyed solution rows into duration-keyed
// ones: the time_block_start and time_block_end columns are replaced by a
// single duration column holding end-start+1.
func BlockDurations(t *Table) (*Table, error) {
	start := t.Col("time_block_start")
	end := t.Col("time_block_end")
	if start < 0 || end < 0 {
		return nil, fmt.Errorf("obz: block table must have time_block_start and time_block_end columns")
	}
	var cols []string
	for _, c := range t.Cols {
		if c == "time_block_end" {
			continue
		}
		if c == "time_block_start" {
			cols = append(cols, "duration")
			continue
		}
		cols = append(cols, c)
	}
	o := NewTable(cols...)
	for _, row := range t.Rows {
		out := make([]Value, 0, len(cols))
		for j := range t.Cols {
			switch j {
			case end:
			case start:
				d := row[end].Int() - row[start].Int() + 1
				if d < 1 {
					return nil, fmt.Errorf("obz: block [%d,%d] has nonpositive duration", row[start].Int(), row[end].Int())
				}
				out = append(out, IntValue(d))
			default:
				out = append(out, row[j])
			}
		}
		o.Rows = append(o.Rows, out)
	}
	return o, nil
}

// Unroll expands rows holding a value constant over a block of timesteps
// into one row per timestep. Rows are grouped by groupCols; within each
// group the timestep counter starts at 1 and advances by one per unit of
// the duration column, so a group's output timesteps are exactly
// 1..sum(durations).
//
// Rows of a group must already be ordered by block start: Unroll keeps
// input order and does not sort, so unsorted blocks would be numbered out
// of chronological order.
//
// The duration column is replaced by a timestep column in the output.
func Unroll(t *Table, groupCols []string) (*Table, error) {
	dur := t.Col("duration")
	if dur < 0 {
		return nil, fmt.Errorf("obz: unroll input must have a duration column")
	}
	group := make([]int, len(groupCols))
	for i, c := range groupCols {
		j := t.Col(c)
		if j < 0 {
			return nil, fmt.Errorf("obz: unroll input has no group column %q", c)
		}
		group[i] = j
	}

	cols := make([]string, len(t.Cols))
	copy(cols, t.Cols)
	cols[dur] = "timestep"
	o := NewTable(cols...)

	next := make(map[string]int)
	var key strings.Builder
	for _, row := range t.Rows {
		key.Reset()
		for _, j := range group {
			key.WriteString(row[j].String())
			key.WriteByte('\x00')
		}
		k := key.String()
		ts, ok := next[k]
		if !ok {
			ts = 1
		}
		d := row[dur].Int()
		if d < 1 {
			return nil, fmt.Errorf("obz: row with nonpositive duration %d", d)
		}
		for n := 0; n < d; n++ {
			out := append([]Value{}, row...)
			out[dur] = IntValue(ts + n)
			o.Rows = append(o.Rows, out)
		}
		next[k] = ts + d
	}
	return o, nil
}
