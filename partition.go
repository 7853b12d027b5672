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

// ReconcilePartitions resolves the effective time partition of every flow
// record from the partitions assigned to its endpoint assets. A flow's
// resolution cannot be finer than the coarser of its two endpoints', so
// when both endpoints are known the effective partition is their maximum;
// when only one is known that one is used; when neither is known the
// partition keeps its defaulted value. The last case is intentionally not
// an error: the returned unmatched count lets callers report it.
//
// Missing fields elsewhere in the flow records are filled from defaults
// before resolution, and the output is restricted to the schema's columns.
func ReconcilePartitions(assetPartitions map[string]int, flows *Table, schema Schema, defaults map[string]Value) (*Table, int, error) {
	if err := schema.CheckDefaults(defaults); err != nil {
		return nil, 0, err
	}
	from := flows.Col("from_asset")
	to := flows.Col("to_asset")
	if from < 0 || to < 0 {
		return nil, 0, fmt.Errorf("obz: flow table must have from_asset and to_asset columns")
	}

	t := flows.Select(schema.Columns()...)
	for i, f := range schema {
		d, ok := defaults[f.Name]
		if !ok || d.IsNull() {
			continue
		}
		for _, row := range t.Rows {
			if row[i].IsNull() {
				row[i] = d
			}
		}
	}

	part := t.Col("partition")
	if part < 0 {
		return nil, 0, fmt.Errorf("obz: partition schema has no partition column")
	}
	unmatched := 0
	for i, row := range t.Rows {
		pf, okf := assetPartitions[flows.Rows[i][from].Text()]
		pt, okt := assetPartitions[flows.Rows[i][to].Text()]
		switch {
		case okf && okt:
			row[part] = IntValue(max(pf, pt))
		case okf:
			row[part] = IntValue(pf)
		case okt:
			row[part] = IntValue(pt)
		default:
			unmatched++
		}
	}
	return t, unmatched, nil
}
