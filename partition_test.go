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

import "testing"

func TestReconcilePartitions(t *testing.T) {
	schema := Schema{
		{Name: "from_asset", Kind: String},
		{Name: "to_asset", Kind: String},
		{Name: "year", Kind: Int},
		{Name: "rep_period", Kind: Int},
		{Name: "specification", Kind: String},
		{Name: "partition", Kind: Int},
	}
	defaults := map[string]Value{
		"year":          IntValue(2030),
		"rep_period":    IntValue(1),
		"specification": StringValue("uniform"),
		"partition":     IntValue(1),
	}
	parts := map[string]int{"A": 2, "B": 5}

	flows := NewTable("from_asset", "to_asset", "year", "rep_period", "specification", "partition")
	null := Null()
	flows.Append(StringValue("A"), StringValue("B"), null, null, null, null)
	flows.Append(StringValue("A"), StringValue("C"), null, null, null, null)
	flows.Append(StringValue("D"), StringValue("C"), null, null, null, null)

	got, unmatched, err := ReconcilePartitions(parts, flows, schema, defaults)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("both endpoints known takes the max", func(t *testing.T) {
		if got.Value(0, "partition") != IntValue(5) {
			t.Errorf("A->B partition = %v, want 5", got.Value(0, "partition"))
		}
	})
	t.Run("one endpoint known uses it", func(t *testing.T) {
		if got.Value(1, "partition") != IntValue(2) {
			t.Errorf("A->C partition = %v, want 2", got.Value(1, "partition"))
		}
	})
	t.Run("neither endpoint known keeps the default", func(t *testing.T) {
		if got.Value(2, "partition") != IntValue(1) {
			t.Errorf("D->C partition = %v, want defaulted 1", got.Value(2, "partition"))
		}
		if unmatched != 1 {
			t.Errorf("unmatched = %d, want 1", unmatched)
		}
	})
	t.Run("other fields are defaulted before resolution", func(t *testing.T) {
		if got.Value(0, "specification") != StringValue("uniform") {
			t.Errorf("specification = %v, want uniform", got.Value(0, "specification"))
		}
		if got.Value(0, "year") != IntValue(2030) {
			t.Errorf("year = %v, want 2030", got.Value(0, "year"))
		}
	})
}
