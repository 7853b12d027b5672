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

// Field is one column of a schema.
type Field struct {
	Name string
	Kind Kind
}

// Schema is the ordered column contract of a table. Schemas are supplied by
// the optimization engine and are treated as opaque: tables produced here
// must match a schema's column set and order exactly.
type Schema []Field

// Columns returns the schema's column names in schema order.
func (s Schema) Columns() []string {
	cols := make([]string, len(s))
	for i, f := range s {
		cols[i] = f.Name
	}
	return cols
}

// Field returns the named field and whether the schema declares it.
func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CheckDefaults verifies that every default applying to a schema column has
// the column's declared kind. A mismatch is an error rather than a silent
// coercion.
func (s Schema) CheckDefaults(defaults map[string]Value) error {
	for _, f := range s {
		d, ok := defaults[f.Name]
		if !ok || d.IsNull() {
			continue
		}
		if d.Kind() != f.Kind {
			return &SchemaMismatchError{Column: f.Name, Want: f.Kind, Got: d.Kind()}
		}
	}
	return nil
}
