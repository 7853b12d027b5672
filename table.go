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
	"strconv"
)

// Kind is the declared type of a schema field.
type Kind int

const (
	Bool Kind = iota
	Int
	Float
	String
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is a single table cell. The zero Value is null, which is distinct
// from false, zero and the empty string: callers can tell a field that was
// defaulted to zero apart from one that was left unset.
type Value struct {
	kind  Kind
	valid bool
	b     bool
	i     int
	f     float64
	s     string
}

// Null returns the missing-value sentinel.
func Null() Value { return Value{} }

// BoolValue returns a boolean cell.
func BoolValue(b bool) Value { return Value{kind: Bool, valid: true, b: b} }

// IntValue returns an integer cell.
func IntValue(i int) Value { return Value{kind: Int, valid: true, i: i} }

// FloatValue returns a floating-point cell.
func FloatValue(f float64) Value { return Value{kind: Float, valid: true, f: f} }

// StringValue returns a text cell.
func StringValue(s string) Value { return Value{kind: String, valid: true, s: s} }

// IsNull reports whether v is the missing-value sentinel.
func (v Value) IsNull() bool { return !v.valid }

// Kind returns the kind of v. It is only meaningful for non-null values.
func (v Value) Kind() Kind { return v.kind }

func (v Value) Bool() bool { return v.b }

func (v Value) Int() int { return v.i }

func (v Value) Float() float64 { return v.f }

// Number returns the cell as a float64, converting integer cells.
// Null cells count as zero.
func (v Value) Number() float64 {
	if !v.valid {
		return 0
	}
	if v.kind == Int {
		return float64(v.i)
	}
	return v.f
}

// Text returns the content of a string cell.
func (v Value) Text() string { return v.s }

// String formats v the way it is written to CSV; null formats as the
// empty string.
func (v Value) String() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case Bool:
		return strconv.FormatBool(v.b)
	case Int:
		return strconv.Itoa(v.i)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	return v.s
}

// ParseValue parses the CSV cell s as a value of the given kind. The empty
// string parses as null.
func ParseValue(kind Kind, s string) (Value, error) {
	if s == "" {
		return Null(), nil
	}
	switch kind {
	case Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Null(), fmt.Errorf("obz: parsing %q as bool: %v", s, err)
		}
		return BoolValue(b), nil
	case Int:
		i, err := strconv.Atoi(s)
		if err != nil {
			return Null(), fmt.Errorf("obz: parsing %q as int: %v", s, err)
		}
		return IntValue(i), nil
	case Float:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Null(), fmt.Errorf("obz: parsing %q as float: %v", s, err)
		}
		return FloatValue(f), nil
	}
	return StringValue(s), nil
}

// Table is an in-memory table with ordered columns. Every stage of the
// pipeline fully materializes its Table before the next stage begins.
type Table struct {
	Cols []string
	Rows [][]Value
}

// NewTable returns an empty table with the given columns.
func NewTable(cols ...string) *Table {
	return &Table{Cols: append([]string{}, cols...)}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Col returns the index of the named column, or -1 if there is no
// such column.
func (t *Table) Col(name string) int {
	for i, c := range t.Cols {
		if c == name {
			return i
		}
	}
	return -1
}

// Append adds a row. The row must have one cell per column.
func (t *Table) Append(row ...Value) {
	if len(row) != len(t.Cols) {
		panic(fmt.Errorf("obz: appending row with %d cells to table with %d columns", len(row), len(t.Cols)))
	}
	t.Rows = append(t.Rows, row)
}

// Value returns the cell at row i in the named column.
func (t *Table) Value(i int, name string) Value {
	c := t.Col(name)
	if c < 0 {
		panic(fmt.Errorf("obz: table has no column %q", name))
	}
	return t.Rows[i][c]
}

// Select returns a new table holding the given columns in the given order.
// Columns not present in t come back all-null.
func (t *Table) Select(cols ...string) *Table {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.Col(c)
	}
	o := NewTable(cols...)
	for _, row := range t.Rows {
		out := make([]Value, len(cols))
		for i, j := range idx {
			if j >= 0 {
				out[i] = row[j]
			}
		}
		o.Rows = append(o.Rows, out)
	}
	return o
}
