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
	"math"
	"testing"
)

func TestPricesPerCountry(t *testing.T) {
	assets := NewTable("name", "type", "country", "technology")
	assets.Append(StringValue("NL_Hub"), StringValue("hub"), StringValue("NL"), StringValue("HUB"))
	assets.Append(StringValue("NL_Hub2"), StringValue("hub"), StringValue("NL"), StringValue("HUB"))

	duals := NewTable("asset", "year", "rep_period", "time_block_start", "time_block_end", "dual")
	duals.Append(StringValue("NL_Hub"), IntValue(2030), IntValue(1), IntValue(1), IntValue(2), FloatValue(30))
	duals.Append(StringValue("NL_Hub"), IntValue(2030), IntValue(1), IntValue(3), IntValue(3), FloatValue(80))
	duals.Append(StringValue("NL_Hub2"), IntValue(2030), IntValue(1), IntValue(1), IntValue(3), FloatValue(50))

	got, err := PricesPerCountry(duals, assets)
	if err != nil {
		t.Fatal(err)
	}
	if got.Len() != 3 {
		t.Fatalf("rows = %d, want 3", got.Len())
	}
	// Two hubs in NL: their duals average per timestep.
	for i, want := range []float64{40, 40, 65} {
		if got.Value(i, "country") != StringValue("NL") {
			t.Errorf("row %d: country = %v", i, got.Value(i, "country"))
		}
		if got.Value(i, "time") != IntValue(i+1) {
			t.Errorf("row %d: time = %v, want %d", i, got.Value(i, "time"), i+1)
		}
		if p := got.Value(i, "price").Float(); math.Abs(p-want) > 1e-12 {
			t.Errorf("row %d: price = %g, want %g", i, p, want)
		}
	}
}
