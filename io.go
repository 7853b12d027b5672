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
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// Input and output CSV files both carry a units/comment row on line 1;
// the real header is on line 2.

// readUserCSV reads the header and data rows of a user CSV file,
// discarding the units row. Data rows shorter than the header are padded
// with empty cells.
func readUserCSV(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &NotFoundError{Path: path}
		}
		return nil, nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	if _, err := r.Read(); err != nil { // units row
		if err == io.EOF {
			return nil, nil, fmt.Errorf("obz: %s: missing units row", path)
		}
		return nil, nil, fmt.Errorf("obz: reading %s: %v", path, err)
	}
	header, err = r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, fmt.Errorf("obz: %s: missing header row", path)
		}
		return nil, nil, fmt.Errorf("obz: reading %s: %v", path, err)
	}

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("obz: reading %s: %v", path, err)
		}
		for len(rec) < len(header) {
			rec = append(rec, "")
		}
		rows = append(rows, rec[:len(header)])
	}
	return header, rows, nil
}

// ReadTable reads a CSV file written with the units-row convention,
// parsing each cell according to the schema field of the same name.
// Columns the schema does not declare are kept as strings.
func ReadTable(path string, schema Schema) (*Table, error) {
	header, rows, err := readUserCSV(path)
	if err != nil {
		return nil, err
	}
	kinds := make([]Kind, len(header))
	for i, c := range header {
		kinds[i] = String
		if f, ok := schema.Field(c); ok {
			kinds[i] = f.Kind
		}
	}
	t := NewTable(header...)
	for _, rec := range rows {
		row := make([]Value, len(header))
		for i, s := range rec {
			v, err := ParseValue(kinds[i], s)
			if err != nil {
				return nil, fmt.Errorf("obz: %s: column %q: %v", path, header[i], err)
			}
			row[i] = v
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// ReadRawTable reads a CSV file written with the units-row convention
// without a schema, inferring each cell's kind: empty cells become null,
// "true"/"false" become bools, then int, then float, then string.
func ReadRawTable(path string) (*Table, error) {
	header, rows, err := readUserCSV(path)
	if err != nil {
		return nil, err
	}
	t := NewTable(header...)
	for _, rec := range rows {
		row := make([]Value, len(header))
		for i, s := range rec {
			row[i] = inferValue(s)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func inferValue(s string) Value {
	switch s {
	case "":
		return Null()
	case "true", "false":
		return BoolValue(s == "true")
	}
	if v, err := ParseValue(Int, s); err == nil {
		return v
	}
	if v, err := ParseValue(Float, s); err == nil {
		return v
	}
	return StringValue(s)
}

// WriteTable writes t to w with a leading units row of len(t.Cols)-1
// commas, then the header and data rows.
func WriteTable(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	units := make([]string, len(t.Cols))
	if err := cw.Write(units); err != nil {
		return fmt.Errorf("obz: writing units row: %v", err)
	}
	if err := cw.Write(t.Cols); err != nil {
		return fmt.Errorf("obz: writing header: %v", err)
	}
	rec := make([]string, len(t.Cols))
	for _, row := range t.Rows {
		for i, v := range row {
			rec[i] = v.String()
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("obz: writing row: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTableFile writes t to the named file, creating or truncating it.
func WriteTableFile(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("obz: creating %s: %v", path, err)
	}
	defer f.Close()
	if err := WriteTable(f, t); err != nil {
		return fmt.Errorf("obz: writing %s: %v", path, err)
	}
	return f.Close()
}
