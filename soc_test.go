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

func TestStateOfCharge(t *testing.T) {
	assets := NewTable("name", "type", "country", "technology", "initial_storage_capacity")
	assets.Append(StringValue("NL_Batt"), StringValue("storage"), StringValue("NL"), StringValue("Battery"), FloatValue(8))
	assets.Append(StringValue("NL_H2"), StringValue("storage"), StringValue("NL"), StringValue("Hydrogen"), Null())

	levels := NewTable("asset", "year", "rep_period", "time_block_start", "time_block_end", "level")
	levels.Append(StringValue("NL_Batt"), IntValue(2030), IntValue(1), IntValue(1), IntValue(2), FloatValue(4))
	levels.Append(StringValue("NL_Batt"), IntValue(2030), IntValue(1), IntValue(3), IntValue(3), FloatValue(6))
	levels.Append(StringValue("NL_H2"), IntValue(2030), IntValue(1), IntValue(1), IntValue(3), FloatValue(2))

	got, err := StateOfCharge(levels, assets)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 6 {
		t.Fatalf("rows = %d, want 6", got.Len())
	}

	t.Run("soc is level over capacity", func(t *testing.T) {
		for i, want := range []float64{0.5, 0.5, 0.75} {
			if got.Value(i, "soc") != FloatValue(want) {
				t.Errorf("row %d: soc = %v, want %g", i, got.Value(i, "soc"), want)
			}
		}
	})

	t.Run("soc is null without a capacity", func(t *testing.T) {
		for i := 3; i < 6; i++ {
			if !got.Value(i, "soc").IsNull() {
				t.Errorf("row %d: soc = %v, want null", i, got.Value(i, "soc"))
			}
			if got.Value(i, "level") != FloatValue(2) {
				t.Errorf("row %d: level = %v, want 2", i, got.Value(i, "level"))
			}
		}
	})
}
