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
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BuildOptions modify BuildTable.
type BuildOptions struct {
	// Rename maps source column names to schema field names. Columns not
	// in the map pass through unchanged.
	Rename map[string]string

	// Replicate, when greater than 1, duplicates the whole table that many
	// times, overwriting rep_period with 1..Replicate on each copy. Used to
	// materialize a partition schedule specified once across all
	// representative periods.
	Replicate int
}

// BuildTable reads every file in folder whose name starts with prefix and
// ends with suffix, reconciles the concatenated rows against schema, and
// returns one schema-conformant table: exactly the schema's columns in
// schema order, with defaults filling cells the user left out. Defaults
// never override supplied data.
//
// Matched filenames are sorted before reading so that output row order
// does not depend on directory-listing order.
//
// A nil opts is equivalent to the zero BuildOptions.
func BuildTable(folder string, schema Schema, prefix, suffix string, defaults map[string]Value, opts *BuildOptions) (*Table, error) {
	if opts == nil {
		opts = &BuildOptions{}
	}
	if err := schema.CheckDefaults(defaults); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(folder)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: folder}
		}
		return nil, fmt.Errorf("obz: listing %s: %v", folder, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), suffix) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	cols := schema.Columns()
	t := NewTable(cols...)
	for _, name := range names {
		header, rows, err := readUserCSV(filepath.Join(folder, name))
		if err != nil {
			return nil, err
		}
		for i, c := range header {
			if to, ok := opts.Rename[c]; ok {
				header[i] = to
			}
		}
		// Map each schema column to its position in this file, if any.
		// Schema columns absent from the file are all-null for its rows;
		// extra file columns are dropped.
		src := make([]int, len(schema))
		for i, f := range schema {
			src[i] = -1
			for j, c := range header {
				if c == f.Name {
					src[i] = j
					break
				}
			}
		}
		for _, rec := range rows {
			row := make([]Value, len(schema))
			for i, f := range schema {
				if src[i] < 0 {
					continue
				}
				v, err := ParseValue(f.Kind, rec[src[i]])
				if err != nil {
					return nil, fmt.Errorf("obz: %s: column %q: %v", name, f.Name, err)
				}
				row[i] = v
			}
			t.Rows = append(t.Rows, row)
		}
	}

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

	if opts.Replicate > 1 {
		return Replicate(t, opts.Replicate)
	}
	return t, nil
}

// Replicate duplicates every row of t once per representative period,
// overwriting rep_period with 1..n on each copy. Used to materialize a
// schedule specified once across all representative periods.
func Replicate(t *Table, n int) (*Table, error) {
	rp := t.Col("rep_period")
	if rp < 0 {
		return nil, fmt.Errorf("obz: replication requested but table has no rep_period column")
	}
	o := NewTable(t.Cols...)
	o.Rows = make([][]Value, 0, len(t.Rows)*n)
	for k := 1; k <= n; k++ {
		for _, row := range t.Rows {
			out := append([]Value{}, row...)
			out[rp] = IntValue(k)
			o.Rows = append(o.Rows, out)
		}
	}
	return o, nil
}
